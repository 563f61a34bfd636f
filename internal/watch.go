package internal

import (
	"errors"
	"fmt"
	"reflect"
)

// StopHandle stops a watcher. Stopping flips a flag: an already-subscribed
// wrapper keeps firing as a no-op rather than being torn out of the graph.
type StopHandle func()

// OnCleanup registers a callback to run before the next invocation and once
// on stop.
type OnCleanup func(func())

var (
	ErrInvalidSource   = errors.New("invalid watch source type")
	ErrInvalidCallback = errors.New("invalid watch callback type")
)

// WatchOptions configures Watch. The zero value is lazy and shallow.
type WatchOptions struct {
	Deep      bool
	Immediate bool
}

// WatchEffect runs fn immediately and re-runs it whenever its dependencies
// change. fn is either func() or func(OnCleanup); options do not apply and
// are deliberately absent from the signature.
func (r *Runtime) WatchEffect(update any) (StopHandle, error) {
	var fn func(OnCleanup)
	switch u := update.(type) {
	case func():
		fn = func(OnCleanup) { u() }
	case func(OnCleanup):
		fn = u
	default:
		return nil, fmt.Errorf("%w: %T for WatchEffect", ErrInvalidCallback, update)
	}

	stopped := false
	var cleanup func()

	stop := func() {
		stopped = true
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}

	wrapper := func() any {
		if stopped {
			return nil
		}

		if cleanup != nil {
			cleanup()
		}

		fn(func(cb func()) { cleanup = cb })
		return nil
	}

	r.NewEffect(wrapper)

	return stop, nil
}

// Watch observes one source or a []any of sources and invokes the callback
// when any of them changes. Sources are refs, computeds, reactive proxies,
// or nullary getter functions. Callback shapes, single-source mode:
//
//	func()
//	func(new any)
//	func(new, old any)
//	func(new, old any, onCleanup OnCleanup)
//
// and the same with []any parameters in multi-source mode.
func (r *Runtime) Watch(source any, callback any, opts WatchOptions) (StopHandle, error) {
	sources, single := normalizeSources(source)

	accessors := make([]func() any, len(sources))
	for i, src := range sources {
		accessor, err := sourceAccessor(src, opts.Deep)
		if err != nil {
			return nil, err
		}
		accessors[i] = accessor
	}

	dispatchCb, err := callbackDispatcher(callback, single)
	if err != nil {
		return nil, err
	}

	n := len(sources)
	oldValues := make([]any, n)
	firstRun := true

	stopped := false
	var cleanup func()

	stop := func() {
		stopped = true
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}

	onCleanup := OnCleanup(func(cb func()) { cleanup = cb })

	wrapper := func() any {
		if stopped {
			return nil
		}

		if cleanup != nil {
			cleanup()
		}

		defer func() { firstRun = false }()

		newValues := make([]any, n)
		for i, accessor := range accessors {
			newValues[i] = accessor()
		}

		skip := true
		for i := 0; i < n; i++ {
			if changed(newValues[i], oldValues[i]) {
				skip = false
				break
			}
		}

		if firstRun && !opts.Immediate {
			copy(oldValues, newValues)
			skip = true
		}
		if skip {
			return nil
		}

		oldSnapshot := make([]any, n)
		copy(oldSnapshot, oldValues)

		dispatchCb(newValues, oldSnapshot, onCleanup)

		copy(oldValues, newValues)
		return nil
	}

	r.NewEffect(wrapper)

	return stop, nil
}

// normalizeSources splits single- from multi-source mode: a []any that is
// not itself reactive means multi.
func normalizeSources(source any) (sources []any, single bool) {
	if list, ok := source.([]any); ok && !IsReactive(source) {
		return list, false
	}
	return []any{source}, true
}

// sourceAccessor builds the read closure for one source. Reactive sources
// force a deep walk regardless of the option.
func sourceAccessor(src any, deep bool) (func() any, error) {
	walk := deep

	switch {
	case IsRef(src):
		vr := src.(interface{ Value() any })
		return func() any {
			v := vr.Value()
			if walk {
				deepWalk(v)
			}
			return v
		}, nil

	case IsReactive(src):
		walk = true
		return func() any {
			deepWalk(src)
			return src
		}, nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return func() any {
			v := rv.Call(nil)[0].Interface()
			if walk {
				deepWalk(v)
			}
			return v
		}, nil
	}

	return nil, fmt.Errorf("%w: %T for Watch", ErrInvalidSource, src)
}

// deepWalk touches every nested slot through the tracked read paths so
// nested changes register as dependencies. Refs are read through; byte
// buffers and views are leaves.
func deepWalk(v any) {
	if IsRef(v) {
		if vr, ok := v.(interface{ Value() any }); ok {
			v = vr.Value()
		}
	}
	if !IsReactive(v) {
		return
	}

	switch p := v.(type) {
	case *Map:
		for _, k := range p.Keys() {
			deepWalk(p.Get(k))
		}
	case *Slice:
		for _, e := range p.All() {
			deepWalk(e)
		}
	case *Set:
		for e := range p.All() {
			deepWalk(e)
		}
	case *Object:
		for name := range p.Fields() {
			deepWalk(p.Field(name))
		}
	}
}

// changed implements the watch change gate: inequality first, then identity
// of mutables (which may mutate in place without changing equality).
func changed(newValue, oldValue any) bool {
	if !equalValues(newValue, oldValue) {
		return true
	}
	if !isImmutableValue(newValue) && identicalValue(newValue, oldValue) {
		return true
	}
	return false
}

func identicalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	// non-reference values: identity collapses to equality
	return equalValues(a, b)
}

// callbackDispatcher resolves the callback's shape once, at construction.
func callbackDispatcher(callback any, single bool) (func(newValues, oldValues []any, onCleanup OnCleanup), error) {
	if single {
		switch cb := callback.(type) {
		case func():
			return func(_, _ []any, _ OnCleanup) { cb() }, nil
		case func(any):
			return func(newValues, _ []any, _ OnCleanup) { cb(newValues[0]) }, nil
		case func(any, any):
			return func(newValues, oldValues []any, _ OnCleanup) { cb(newValues[0], oldValues[0]) }, nil
		case func(any, any, OnCleanup):
			return func(newValues, oldValues []any, onCleanup OnCleanup) { cb(newValues[0], oldValues[0], onCleanup) }, nil
		}
		return nil, fmt.Errorf("%w: %T for Watch", ErrInvalidCallback, callback)
	}

	switch cb := callback.(type) {
	case func():
		return func(_, _ []any, _ OnCleanup) { cb() }, nil
	case func([]any):
		return func(newValues, _ []any, _ OnCleanup) { cb(newValues) }, nil
	case func([]any, []any):
		return func(newValues, oldValues []any, _ OnCleanup) { cb(newValues, oldValues) }, nil
	case func([]any, []any, OnCleanup):
		return func(newValues, oldValues []any, onCleanup OnCleanup) { cb(newValues, oldValues, onCleanup) }, nil
	}
	return nil, fmt.Errorf("%w: %T for Watch", ErrInvalidCallback, callback)
}
