package internal

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
)

// Slice is the sequence shape. Unlike Map, element reads do NOT auto-unwrap
// refs: a slice of refs keeps its refs visible. The proxy owns the evolving
// slice header, so growth stays inside the proxy while the original backing
// array is shared as long as capacity lasts.
type Slice struct {
	proxyBase
}

func (r *Runtime) newSlice(raw reflect.Value) *Slice {
	s := &Slice{}
	s.rt = r
	s.raw = raw
	s.deps = r.newDepStore("Slice")
	return s
}

func (s *Slice) elem(v any) reflect.Value {
	return conformTo(s.raw.Type().Elem(), v)
}

// Index reads one element, tracked. Refs are returned as-is.
func (s *Slice) Index(i int) any {
	s.track()
	return s.wrapKeep(s.raw.Index(i).Interface())
}

// SetIndex writes one element, skipping the trigger when the normalized
// value equals the current one.
func (s *Slice) SetIndex(i int, v any) {
	v = normalize(v)

	if equalValues(s.raw.Index(i).Interface(), v) {
		return
	}

	s.raw.Index(i).Set(s.elem(v))
	s.trigger()
}

// Append adds elements at the end.
func (s *Slice) Append(vs ...any) {
	for _, v := range vs {
		s.raw = reflect.Append(s.raw, s.elem(normalize(v)))
	}
	s.rt.rememberProxy(s.raw, s)
	s.trigger()
}

// Insert places a value at index i, shifting the tail.
func (s *Slice) Insert(i int, v any) {
	s.raw = reflect.Append(s.raw, reflect.Zero(s.raw.Type().Elem()))
	reflect.Copy(s.raw.Slice(i+1, s.raw.Len()), s.raw.Slice(i, s.raw.Len()-1))
	s.raw.Index(i).Set(s.elem(normalize(v)))
	s.rt.rememberProxy(s.raw, s)
	s.trigger()
}

// Pop removes and returns the last element.
func (s *Slice) Pop() any {
	return s.RemoveAt(s.raw.Len() - 1)
}

// RemoveAt removes and returns the element at index i. Out-of-range indexes
// panic with the usual slice bounds error.
func (s *Slice) RemoveAt(i int) any {
	v := s.raw.Index(i).Interface()
	reflect.Copy(s.raw.Slice(i, s.raw.Len()-1), s.raw.Slice(i+1, s.raw.Len()))
	s.raw = s.raw.Slice(0, s.raw.Len()-1)
	s.rt.rememberProxy(s.raw, s)
	s.trigger()
	return v
}

// Remove deletes the first occurrence of v, reporting whether it was found.
// Removing an absent value does not trigger.
func (s *Slice) Remove(v any) bool {
	v = normalize(v)
	for i := 0; i < s.raw.Len(); i++ {
		if equalValues(s.raw.Index(i).Interface(), v) {
			s.RemoveAt(i)
			return true
		}
	}
	return false
}

// Clear empties the sequence.
func (s *Slice) Clear() {
	s.raw = s.raw.Slice(0, 0)
	s.rt.rememberProxy(s.raw, s)
	s.trigger()
}

// Extend appends every element of another sequence (raw or reactive).
func (s *Slice) Extend(other any) {
	ov := reflect.ValueOf(ToRaw(other))
	if ov.Kind() != reflect.Slice {
		panic("reactivity: Slice.Extend expects a slice, got " + typeName(other))
	}

	for i := 0; i < ov.Len(); i++ {
		s.raw = reflect.Append(s.raw, s.elem(normalize(ov.Index(i).Interface())))
	}
	s.rt.rememberProxy(s.raw, s)
	s.trigger()
}

// Reverse flips the sequence in place.
func (s *Slice) Reverse() {
	n := s.raw.Len()
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a, b := s.raw.Index(i).Interface(), s.raw.Index(j).Interface()
		s.raw.Index(i).Set(s.elem(b))
		s.raw.Index(j).Set(s.elem(a))
	}
	s.trigger()
}

// Sort orders comparable scalar elements ascending.
func (s *Slice) Sort() {
	s.SortFunc(func(a, b any) bool {
		return lessScalar(a, b)
	})
}

// SortFunc orders the sequence with the given less function.
func (s *Slice) SortFunc(less func(a, b any) bool) {
	n := s.raw.Len()
	tmp := make([]any, n)
	for i := 0; i < n; i++ {
		tmp[i] = s.raw.Index(i).Interface()
	}
	sort.SliceStable(tmp, func(i, j int) bool { return less(tmp[i], tmp[j]) })
	for i := 0; i < n; i++ {
		s.raw.Index(i).Set(s.elem(tmp[i]))
	}
	s.trigger()
}

func (s *Slice) Len() int {
	s.track()
	return s.raw.Len()
}

// IndexOf returns the index of the first occurrence of v, or -1.
func (s *Slice) IndexOf(v any) int {
	s.track()
	v = normalize(v)
	for i := 0; i < s.raw.Len(); i++ {
		if equalValues(s.raw.Index(i).Interface(), v) {
			return i
		}
	}
	return -1
}

// Count returns the number of occurrences of v.
func (s *Slice) Count(v any) int {
	s.track()
	v = normalize(v)
	n := 0
	for i := 0; i < s.raw.Len(); i++ {
		if equalValues(s.raw.Index(i).Interface(), v) {
			n++
		}
	}
	return n
}

// Has reports whether v occurs in the sequence, tracked.
func (s *Slice) Has(v any) bool {
	return s.IndexOf(v) >= 0
}

// All iterates elements with the same wrapping as Index.
func (s *Slice) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		s.track()
		for i := 0; i < s.raw.Len(); i++ {
			if !yield(i, s.wrapKeep(s.raw.Index(i).Interface())) {
				return
			}
		}
	}
}

// Copy returns a plain shallow copy of the raw slice.
func (s *Slice) Copy() any {
	s.track()
	out := reflect.MakeSlice(s.raw.Type(), s.raw.Len(), s.raw.Len())
	reflect.Copy(out, s.raw)
	return out.Interface()
}

// Equal compares against another sequence (raw or reactive) by deep
// equality, tracked.
func (s *Slice) Equal(other any) bool {
	s.track()
	return equalValues(s.Raw(), ToRaw(other))
}

func (s *Slice) String() string {
	s.track()
	return fmt.Sprintf("<Slice[%s] len=%d>", s.raw.Type(), s.raw.Len())
}

func (s *Slice) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(s.rt.liveSnapshot(s.Raw()))
}

func lessScalar(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return av.Int() < bv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return av.Uint() < bv.Uint()
	case reflect.Float32, reflect.Float64:
		return av.Float() < bv.Float()
	case reflect.String:
		return av.String() < bv.String()
	}
	panic("reactivity: Slice.Sort needs scalar elements, got " + typeName(a))
}
