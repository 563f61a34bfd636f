package internal

import (
	"fmt"
	"iter"
	"reflect"
)

// Set is the set shape, over map-to-empty-struct raws. Elements are hashable
// values, so reads pass through unwrapped; mutators delegate to the raw
// store and trigger the whole-container key.
type Set struct {
	proxyBase
}

func (r *Runtime) newSet(raw reflect.Value) *Set {
	s := &Set{}
	s.rt = r
	s.raw = raw
	s.deps = r.newDepStore("Set")
	return s
}

func (s *Set) key(v any) reflect.Value {
	return conformTo(s.raw.Type().Key(), normalize(v))
}

func (s *Set) member() reflect.Value {
	return reflect.Zero(s.raw.Type().Elem())
}

// Add inserts an element.
func (s *Set) Add(v any) {
	s.raw.SetMapIndex(s.key(v), s.member())
	s.trigger()
}

// Discard removes an element if present; absent elements are ignored.
func (s *Set) Discard(v any) {
	s.raw.SetMapIndex(s.key(v), reflect.Value{})
	s.trigger()
}

// Remove deletes an element, reporting whether it was present. Removing an
// absent element does not trigger.
func (s *Set) Remove(v any) bool {
	kv := s.key(v)
	if !s.raw.MapIndex(kv).IsValid() {
		return false
	}

	s.raw.SetMapIndex(kv, reflect.Value{})
	s.trigger()
	return true
}

// Pop removes and returns an arbitrary element.
func (s *Set) Pop() (any, bool) {
	it := s.raw.MapRange()
	if !it.Next() {
		return nil, false
	}

	v := it.Key().Interface()
	s.raw.SetMapIndex(it.Key(), reflect.Value{})
	s.trigger()
	return v, true
}

// Clear removes every element.
func (s *Set) Clear() {
	for _, kv := range s.raw.MapKeys() {
		s.raw.SetMapIndex(kv, reflect.Value{})
	}
	s.trigger()
}

// Update inserts every element of another set, then triggers once.
func (s *Set) Update(other any) {
	ov := s.rawOf(other)
	for _, kv := range ov.MapKeys() {
		s.raw.SetMapIndex(s.key(kv.Interface()), s.member())
	}
	s.trigger()
}

// Has reports membership, tracked.
func (s *Set) Has(v any) bool {
	s.track()
	return s.raw.MapIndex(s.key(v)).IsValid()
}

func (s *Set) Len() int {
	s.track()
	return s.raw.Len()
}

// All iterates the elements, tracked. Order is unspecified.
func (s *Set) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		s.track()
		it := s.raw.MapRange()
		for it.Next() {
			if !yield(it.Key().Interface()) {
				return
			}
		}
	}
}

// Union returns a new plain set holding the elements of both sets.
func (s *Set) Union(other any) any {
	s.track()
	ov := s.rawOf(other)
	out := reflect.MakeMapWithSize(s.raw.Type(), s.raw.Len()+ov.Len())
	for _, kv := range s.raw.MapKeys() {
		out.SetMapIndex(kv, s.member())
	}
	for _, kv := range ov.MapKeys() {
		out.SetMapIndex(s.key(kv.Interface()), s.member())
	}
	return out.Interface()
}

// Intersection returns a new plain set holding the common elements.
func (s *Set) Intersection(other any) any {
	s.track()
	ov := s.rawOf(other)
	out := reflect.MakeMap(s.raw.Type())
	for _, kv := range s.raw.MapKeys() {
		if ov.MapIndex(conformTo(ov.Type().Key(), kv.Interface())).IsValid() {
			out.SetMapIndex(kv, s.member())
		}
	}
	return out.Interface()
}

// Difference returns a new plain set holding the elements not in other.
func (s *Set) Difference(other any) any {
	s.track()
	ov := s.rawOf(other)
	out := reflect.MakeMap(s.raw.Type())
	for _, kv := range s.raw.MapKeys() {
		if !ov.MapIndex(conformTo(ov.Type().Key(), kv.Interface())).IsValid() {
			out.SetMapIndex(kv, s.member())
		}
	}
	return out.Interface()
}

// SymmetricDifference returns a new plain set holding the elements in
// exactly one of the two sets.
func (s *Set) SymmetricDifference(other any) any {
	s.track()
	ov := s.rawOf(other)
	out := reflect.MakeMap(s.raw.Type())
	for _, kv := range s.raw.MapKeys() {
		if !ov.MapIndex(conformTo(ov.Type().Key(), kv.Interface())).IsValid() {
			out.SetMapIndex(kv, s.member())
		}
	}
	for _, kv := range ov.MapKeys() {
		if !s.raw.MapIndex(s.key(kv.Interface())).IsValid() {
			out.SetMapIndex(s.key(kv.Interface()), s.member())
		}
	}
	return out.Interface()
}

// IsSubset reports whether every element is in other, tracked.
func (s *Set) IsSubset(other any) bool {
	s.track()
	ov := s.rawOf(other)
	for _, kv := range s.raw.MapKeys() {
		if !ov.MapIndex(conformTo(ov.Type().Key(), kv.Interface())).IsValid() {
			return false
		}
	}
	return true
}

// IsSuperset reports whether other's elements are all present, tracked.
func (s *Set) IsSuperset(other any) bool {
	s.track()
	ov := s.rawOf(other)
	for _, kv := range ov.MapKeys() {
		if !s.raw.MapIndex(s.key(kv.Interface())).IsValid() {
			return false
		}
	}
	return true
}

// IsDisjoint reports whether the sets share no element, tracked.
func (s *Set) IsDisjoint(other any) bool {
	s.track()
	ov := s.rawOf(other)
	for _, kv := range ov.MapKeys() {
		if s.raw.MapIndex(s.key(kv.Interface())).IsValid() {
			return false
		}
	}
	return true
}

// Copy returns a plain shallow copy of the raw set.
func (s *Set) Copy() any {
	s.track()
	out := reflect.MakeMapWithSize(s.raw.Type(), s.raw.Len())
	for _, kv := range s.raw.MapKeys() {
		out.SetMapIndex(kv, s.member())
	}
	return out.Interface()
}

// Equal compares against another set by deep equality, tracked.
func (s *Set) Equal(other any) bool {
	s.track()
	return equalValues(s.Raw(), ToRaw(other))
}

func (s *Set) String() string {
	s.track()
	return fmt.Sprintf("<Set[%s] len=%d>", s.raw.Type(), s.raw.Len())
}

// MarshalJSON writes the set as an array. Element order is unspecified, as
// on the raw map.
func (s *Set) MarshalJSON() ([]byte, error) {
	elems := make([]any, 0, s.raw.Len())
	it := s.raw.MapRange()
	for it.Next() {
		elems = append(elems, it.Key().Interface())
	}
	return jsonAPI.Marshal(elems)
}

func (s *Set) rawOf(other any) reflect.Value {
	ov := reflect.ValueOf(ToRaw(other))
	if ov.Kind() != reflect.Map || ov.Type().Elem() != emptyStructType {
		panic("reactivity: expected a set, got " + typeName(other))
	}
	return ov
}
