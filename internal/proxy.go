package internal

import (
	"reflect"
)

// Proxy is the capability common to every reactive container shape.
type Proxy interface {
	flagged

	// Raw returns the current raw value behind the proxy.
	Raw() any

	// Len reports the container's size, tracked.
	Len() int

	base() *proxyBase
}

// shapeKind enumerates the closed set of container shapes the factory can
// build. The dynamic per-class proxy generation of a dynamic runtime becomes
// a kind dispatch cached per concrete type.
type shapeKind int

const (
	shapeNone shapeKind = iota
	shapeMap
	shapeSet
	shapeSlice
	shapeBytes
	shapeObject
)

var shapeNames = map[shapeKind]string{
	shapeMap:    "Map",
	shapeSet:    "Set",
	shapeSlice:  "Slice",
	shapeBytes:  "Bytes",
	shapeObject: "Object",
}

// shapeOf resolves and caches the shape for a concrete raw type.
func (r *Runtime) shapeOf(t reflect.Type) shapeKind {
	if kind, ok := r.shapes[t]; ok {
		return kind
	}

	kind := shapeNone
	switch t.Kind() {
	case reflect.Map:
		if t.Elem() == emptyStructType {
			kind = shapeSet
		} else {
			kind = shapeMap
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			kind = shapeBytes
		} else {
			kind = shapeSlice
		}
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			kind = shapeObject
		}
	}

	r.shapes[t] = kind
	return kind
}

// proxyBase carries what every shape needs: the runtime that built it, the
// evolving raw value, and the per-proxy subscriber store.
type proxyBase struct {
	rt   *Runtime
	raw  reflect.Value
	deps *depStore
}

func (p *proxyBase) base() *proxyBase { return p }

func (p *proxyBase) ReactiveFlags() Flags {
	return FlagReactive
}

func (p *proxyBase) Raw() any {
	return p.raw.Interface()
}

func (p *proxyBase) track() {
	p.rt.track(p.deps, ValueKey)
}

func (p *proxyBase) trackKey(k any) {
	p.rt.track(p.deps, k)
}

func (p *proxyBase) trigger() {
	p.rt.trigger(p.deps, ValueKey)
}

func (p *proxyBase) triggerKey(k any) {
	p.rt.trigger(p.deps, k)
}

// normalize strips the reactive wrapper off a value before it is stored, so
// the raw backing store never contains proxies. Refs are kept; they are
// legitimate slot values.
func normalize(v any) any {
	return ToRaw(v)
}

// wrap re-wraps a value read out of a container: refs auto-unwrap (the read
// goes through the ref so it is tracked too), everything else goes through
// Reactive.
func (p *proxyBase) wrap(v any) any {
	if rf, ok := v.(*Ref); ok {
		return rf.Value()
	}
	if c, ok := v.(*Computed); ok {
		return c.Value()
	}
	return p.rt.Reactive(v)
}

// wrapKeep is the sequence variant: refs stay visible, mutables still wrap.
func (p *proxyBase) wrapKeep(v any) any {
	return p.rt.Reactive(v)
}
