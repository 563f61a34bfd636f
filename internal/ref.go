package internal

import (
	"fmt"
	"reflect"
)

// Ref is a single-slot observable. The slot always holds the raw form of the
// value; reads wrap it reactively on the way out.
type Ref struct {
	value any
	deps  *depStore
}

func (r *Runtime) NewRef(v any) *Ref {
	if rf, ok := v.(*Ref); ok {
		return rf
	}

	return &Ref{
		value: ToRaw(Unref(v)),
		deps:  r.newDepStore("Ref"),
	}
}

func (rf *Ref) ReactiveFlags() Flags {
	return FlagRef
}

// Value reads the cell, tracking the dependency if within a running effect.
// Mutable values come back wrapped so ref(map).Value() behaves reactively.
func (rf *Ref) Value() any {
	r := GetRuntime()
	r.track(rf.deps, refValue)
	return r.Reactive(rf.value)
}

// SetValue writes the cell. The new value is normalized to its raw, unref'd
// form first; writing an equal value does not trigger.
func (rf *Ref) SetValue(v any) {
	r := GetRuntime()

	newValue := ToRaw(Unref(v))
	if equalValues(newValue, rf.value) {
		return
	}

	rf.value = newValue
	r.trigger(rf.deps, refValue)
}

func (rf *Ref) String() string {
	return fmt.Sprintf("<Ref[%s] value=%v>", typeName(rf.value), rf.value)
}

func (rf *Ref) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(GetRuntime().liveSnapshot(rf.value))
}

// Unref returns the raw value of a ref (or computed), or v itself when it is
// not a ref. The read is tracked like any other.
func Unref(v any) any {
	if !IsRef(v) {
		return v
	}
	if vr, ok := v.(interface{ Value() any }); ok {
		return ToRaw(vr.Value())
	}
	return v
}

// DeepUnref descends into maps, slices, and sets, unref'ing at every level,
// producing a structure with no refs in it. Byte slices and arrays are not
// descended into.
func DeepUnref(v any) any {
	v = ToRaw(Unref(v))
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Elem() == emptyStructType {
			// a set of hashable values cannot hold refs
			return v
		}
		out := make(map[any]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out[it.Key().Interface()] = DeepUnref(it.Value().Interface())
		}
		if rv.Type().Key().Kind() == reflect.String {
			strOut := make(map[string]any, len(out))
			for k, val := range out {
				strOut[k.(string)] = val
			}
			return strOut
		}
		return out
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = DeepUnref(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

var emptyStructType = reflect.TypeOf(struct{}{})

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
