package internal

import (
	"fmt"
	"iter"
	"reflect"
)

// Object is the shape for user structs, reached through a struct pointer.
// Field reads are tracked per field name; field writes go through refs when
// the slot holds one. Only exported fields are reachable, which is the
// visibility the reflect layer gives us anyway.
type Object struct {
	proxyBase
}

func (r *Runtime) newObject(raw reflect.Value) *Object {
	o := &Object{}
	o.rt = r
	o.raw = raw
	o.deps = r.newDepStore("Object")
	return o
}

func (o *Object) elem() reflect.Value {
	return o.raw.Elem()
}

// Field reads one exported field by name, tracked under that name. Refs
// auto-unwrap; mutable values come back reactive. A missing field yields
// nil.
func (o *Object) Field(name string) any {
	v, _ := o.LookupField(name)
	return v
}

// LookupField is Field plus a presence report.
func (o *Object) LookupField(name string) (any, bool) {
	o.trackKey(name)

	fv := o.elem().FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	return o.wrap(fv.Interface()), true
}

// SetField writes one exported field. If the field holds a ref and the
// incoming value is not one, the write goes into the ref instead of
// replacing it. Writing an equal value does not trigger.
func (o *Object) SetField(name string, v any) {
	fv := o.elem().FieldByName(name)
	if !fv.IsValid() || !fv.CanSet() {
		panic("reactivity: no settable field " + name + " on " + o.raw.Type().String())
	}

	v = normalize(v)

	old := fv.Interface()
	if rf, ok := old.(*Ref); ok && !IsRef(v) {
		rf.SetValue(v)
		return
	}
	if equalValues(old, v) {
		return
	}

	fv.Set(conformTo(fv.Type(), v))
	o.triggerKey(name)
}

// Has reports whether the struct has an exported field with that name,
// tracked.
func (o *Object) Has(name string) bool {
	o.track()
	fv := o.elem().FieldByName(name)
	return fv.IsValid() && fv.CanInterface()
}

// Fields iterates the exported fields with the same wrapping as Field.
func (o *Object) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		o.track()
		t := o.elem().Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if !yield(f.Name, o.wrap(o.elem().Field(i).Interface())) {
				return
			}
		}
	}
}

// Method returns the named method bound to the raw pointer, tracked.
// Mutations performed inside the method body bypass the proxy and are not
// tracked.
func (o *Object) Method(name string) any {
	o.track()
	mv := o.raw.MethodByName(name)
	if !mv.IsValid() {
		return nil
	}
	return mv.Interface()
}

// Len reports the number of exported fields, tracked.
func (o *Object) Len() int {
	o.track()
	n := 0
	t := o.elem().Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			n++
		}
	}
	return n
}

// Equal compares against another object (raw pointer or reactive) by deep
// equality of the pointed-to structs, tracked.
func (o *Object) Equal(other any) bool {
	o.track()
	ov := reflect.ValueOf(ToRaw(other))
	if ov.Kind() != reflect.Pointer || ov.IsNil() {
		return false
	}
	return equalValues(o.elem().Interface(), ov.Elem().Interface())
}

func (o *Object) String() string {
	o.track()
	return fmt.Sprintf("<Object[%s]>", o.elem().Type())
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(o.Raw())
}
