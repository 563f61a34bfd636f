package internal

import "reflect"

// Reactive wraps a raw mutable value in its container shape proxy. The
// passthrough pipeline is ordered: nil, refs, Skipper values, already
// reactive, immutables, funcs, MarkRaw-registered values, then memoized or
// freshly built proxies. Anything the
// shape set cannot express comes back unchanged.
func (r *Runtime) Reactive(v any) any {
	if v == nil {
		return v
	}

	if IsRef(v) {
		return v
	}

	if s, ok := v.(Skipper); ok && s.ReactiveSkip() {
		return v
	}

	if IsReactive(v) {
		return v
	}

	if isImmutableValue(v) {
		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		return v
	}

	if r.isMarkedRaw(rv) {
		return v
	}

	key, identifiable := rawKeyFor(rv)
	if !identifiable {
		return v
	}
	if p, ok := r.rawToProxy[key]; ok {
		return p
	}

	var p Proxy
	switch r.shapeOf(rv.Type()) {
	case shapeMap:
		p = r.newMap(rv)
	case shapeSet:
		p = r.newSet(rv)
	case shapeSlice:
		p = r.newSlice(rv)
	case shapeBytes:
		p = r.newBytes(rv)
	case shapeObject:
		p = r.newObject(rv)
	default:
		return v
	}

	r.rawToProxy[key] = p
	r.tracef("create proxy: %s over %s", shapeNames[r.shapeOf(rv.Type())], rv.Type())

	return p
}
