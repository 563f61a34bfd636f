package internal

import (
	"fmt"
	"iter"
	"reflect"
)

// Map is the mapping shape. Reads track the whole-container key and re-wrap
// what they return; writes normalize to raw, write through refs, and skip
// triggering when nothing changed.
type Map struct {
	proxyBase
}

func (r *Runtime) newMap(raw reflect.Value) *Map {
	m := &Map{}
	m.rt = r
	m.raw = raw
	m.deps = r.newDepStore("Map")
	return m
}

func (m *Map) key(k any) reflect.Value {
	return conformTo(m.raw.Type().Key(), k)
}

func (m *Map) elem(v any) reflect.Value {
	return conformTo(m.raw.Type().Elem(), v)
}

// Get reads one entry. Refs stored in the map come back auto-unwrapped;
// mutable values come back reactive. A missing key yields nil.
func (m *Map) Get(k any) any {
	v, _ := m.Lookup(k)
	return v
}

// Lookup is Get plus a presence report.
func (m *Map) Lookup(k any) (any, bool) {
	m.track()
	mv := m.raw.MapIndex(m.key(k))
	if !mv.IsValid() {
		return nil, false
	}
	return m.wrap(mv.Interface()), true
}

// GetOr reads an entry, falling back to def when the key is absent.
func (m *Map) GetOr(k, def any) any {
	m.track()
	mv := m.raw.MapIndex(m.key(k))
	if !mv.IsValid() {
		return m.wrap(def)
	}
	return m.wrap(mv.Interface())
}

// Set writes one entry. If the slot currently holds a ref and the incoming
// value is not one, the write goes into the ref instead of replacing it.
func (m *Map) Set(k, v any) {
	v = normalize(v)

	kv := m.key(k)
	old := m.raw.MapIndex(kv)
	if old.IsValid() {
		if rf, ok := old.Interface().(*Ref); ok && !IsRef(v) {
			rf.SetValue(v)
			return
		}
		if equalValues(old.Interface(), v) {
			return
		}
	}

	m.raw.SetMapIndex(kv, m.elem(v))
	m.trigger()
}

// SetDefault inserts the value only when the key is absent and returns the
// entry either way.
func (m *Map) SetDefault(k, def any) any {
	kv := m.key(k)
	if mv := m.raw.MapIndex(kv); mv.IsValid() {
		m.track()
		return m.wrap(mv.Interface())
	}

	def = normalize(def)
	m.raw.SetMapIndex(kv, m.elem(def))
	m.trigger()
	return m.wrap(def)
}

// Delete removes an entry, reporting whether it existed. Removing a missing
// key does not trigger.
func (m *Map) Delete(k any) bool {
	kv := m.key(k)
	if !m.raw.MapIndex(kv).IsValid() {
		return false
	}

	m.raw.SetMapIndex(kv, reflect.Value{})
	m.trigger()
	return true
}

// Pop removes and returns an entry.
func (m *Map) Pop(k any) (any, bool) {
	kv := m.key(k)
	mv := m.raw.MapIndex(kv)
	if !mv.IsValid() {
		return nil, false
	}

	v := mv.Interface()
	m.raw.SetMapIndex(kv, reflect.Value{})
	m.trigger()
	return v, true
}

// Update merges entries from another map (raw or reactive), then triggers
// once.
func (m *Map) Update(other any) {
	ov := reflect.ValueOf(ToRaw(other))
	if ov.Kind() != reflect.Map {
		panic("reactivity: Map.Update expects a map, got " + typeName(other))
	}

	it := ov.MapRange()
	for it.Next() {
		m.raw.SetMapIndex(m.key(it.Key().Interface()), m.elem(normalize(it.Value().Interface())))
	}
	m.trigger()
}

// Clear removes every entry.
func (m *Map) Clear() {
	for _, kv := range m.raw.MapKeys() {
		m.raw.SetMapIndex(kv, reflect.Value{})
	}
	m.trigger()
}

// Has reports key membership, tracked.
func (m *Map) Has(k any) bool {
	m.track()
	return m.raw.MapIndex(m.key(k)).IsValid()
}

func (m *Map) Len() int {
	m.track()
	return m.raw.Len()
}

// Keys returns the raw keys, tracked. Order is unspecified, as on the raw
// map.
func (m *Map) Keys() []any {
	m.track()
	keys := make([]any, 0, m.raw.Len())
	for _, kv := range m.raw.MapKeys() {
		keys = append(keys, kv.Interface())
	}
	return keys
}

// Values returns the entry values with the same wrapping as Get. A bare view
// of the raw map would expose stored refs, so the view materializes through
// the proxy.
func (m *Map) Values() []any {
	m.track()
	vals := make([]any, 0, m.raw.Len())
	it := m.raw.MapRange()
	for it.Next() {
		vals = append(vals, m.wrap(it.Value().Interface()))
	}
	return vals
}

// All iterates entries with wrapped values, the items() view.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		m.track()
		it := m.raw.MapRange()
		for it.Next() {
			if !yield(it.Key().Interface(), m.wrap(it.Value().Interface())) {
				return
			}
		}
	}
}

// Copy returns a plain shallow copy of the raw map.
func (m *Map) Copy() any {
	m.track()
	out := reflect.MakeMapWithSize(m.raw.Type(), m.raw.Len())
	it := m.raw.MapRange()
	for it.Next() {
		out.SetMapIndex(it.Key(), it.Value())
	}
	return out.Interface()
}

// Equal compares against another map (raw or reactive) by deep equality,
// tracked.
func (m *Map) Equal(other any) bool {
	m.track()
	return equalValues(m.Raw(), ToRaw(other))
}

func (m *Map) String() string {
	m.track()
	return fmt.Sprintf("<Map[%s] len=%d>", m.raw.Type(), m.raw.Len())
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(m.rt.liveSnapshot(m.Raw()))
}
