package internal

import "reflect"

// rawKey identifies a raw mutable value. Go has no object identity hash, so
// the key is derived from the value's data pointer: the map pointer, the
// slice data pointer plus its length at proxy creation, or the struct
// pointer itself. The concrete type is part of the key because zero-capacity
// slices of every type share one data pointer.
type rawKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// rawKeyFor reports whether v has an identity at all. Values without one
// (scalars, struct values, nil) can never be proxied or marked raw.
func rawKeyFor(rv reflect.Value) (rawKey, bool) {
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return rawKey{}, false
		}
		return rawKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() {
			return rawKey{}, false
		}
		return rawKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	case reflect.Pointer:
		if rv.IsNil() {
			return rawKey{}, false
		}
		return rawKey{typ: rv.Type(), ptr: rv.Pointer()}, true
	}
	return rawKey{}, false
}

// MarkRaw registers the value's identity so Reactive passes it through
// unchanged. Values without an identity pass through anyway.
func (r *Runtime) MarkRaw(v any) any {
	if v == nil {
		return v
	}
	if key, ok := rawKeyFor(reflect.ValueOf(v)); ok {
		r.markedRaw[key] = struct{}{}
		r.tracef("markRaw: %T key=%v", v, key)
	}
	return v
}

func (r *Runtime) isMarkedRaw(rv reflect.Value) bool {
	key, ok := rawKeyFor(rv)
	if !ok {
		return false
	}
	_, marked := r.markedRaw[key]
	return marked
}

// ToRaw recovers the raw value behind a proxy. Non-proxies are returned
// unchanged.
func ToRaw(v any) any {
	if p, ok := v.(Proxy); ok {
		return p.Raw()
	}
	return v
}

// DeepToRaw converts v and every nested container value to its raw form,
// rebuilding maps and slices structurally. Refs are left in place; use
// DeepUnref to remove them.
func DeepToRaw(v any) any {
	v = ToRaw(v)
	if v == nil {
		return nil
	}
	if IsRef(v) {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), conformTo(rv.Type().Elem(), DeepToRaw(it.Value().Interface())))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(conformTo(rv.Type().Elem(), DeepToRaw(rv.Index(i).Interface())))
		}
		return out.Interface()
	}
	return v
}

// equalValues is the write-path equality gate: skip triggering when the
// normalized new value equals the old one.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// isImmutableValue mirrors the immutable-builtin passthrough set: values
// that cannot change in place.
func isImmutableValue(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}
	return false
}

// rememberProxy (re)registers the proxy under its current raw identity.
// Mutators that replace a slice header call it so the grown raw still
// resolves to the same proxy.
func (r *Runtime) rememberProxy(rv reflect.Value, p Proxy) {
	if key, ok := rawKeyFor(rv); ok {
		r.rawToProxy[key] = p
	}
}

// liveValue resolves a raw value to its proxy's current raw, if it has a
// proxy. A sequence that grew through its proxy has a newer header than the
// one still stored in its parent container.
func (r *Runtime) liveValue(v any) any {
	if v == nil {
		return v
	}
	if key, ok := rawKeyFor(reflect.ValueOf(v)); ok {
		if p, ok := r.rawToProxy[key]; ok {
			return p.Raw()
		}
	}
	return v
}

// liveSnapshot rebuilds nested containers through liveValue so serializers
// see current contents. Refs are kept in place; they serialize themselves.
func (r *Runtime) liveSnapshot(v any) any {
	v = r.liveValue(ToRaw(v))
	if v == nil || IsRef(v) {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Elem() == emptyStructType {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), conformTo(rv.Type().Elem(), r.liveSnapshot(it.Value().Interface())))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(conformTo(rv.Type().Elem(), r.liveSnapshot(rv.Index(i).Interface())))
		}
		return out.Interface()
	}
	return v
}

// conformTo adapts v to the given container slot type, so heterogeneous
// values can be stored back into typed maps and slices.
func conformTo(t reflect.Type, v any) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t)
	}
	panic("reactivity: cannot store " + rv.Type().String() + " in " + t.String())
}
