package reactivity

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type skipped struct{}

func (*skipped) ReactiveSkip() bool { return true }

func TestReactive(t *testing.T) {
	t.Run("returns the same proxy for the same raw value", func(t *testing.T) {
		m := map[string]any{"a": 1}

		p1 := Reactive(m)
		p2 := Reactive(m)

		assert.Same(t, p1, p2)
		assert.Same(t, p1, Reactive(p1))
		assert.True(t, IsReactive(p1))
	})

	t.Run("recovers the raw value with ToRaw", func(t *testing.T) {
		m := map[string]any{"a": 1}

		p := Reactive(m).(*Map)
		raw := ToRaw(p).(map[string]any)

		assert.Equal(t, reflect.ValueOf(m).Pointer(), reflect.ValueOf(raw).Pointer())

		p.Set("b", 2)
		assert.Equal(t, 2, m["b"])
	})

	t.Run("passes immutable values through unchanged", func(t *testing.T) {
		assert.Equal(t, 5, Reactive(5))
		assert.Equal(t, "hi", Reactive("hi"))
		assert.Equal(t, true, Reactive(true))
		assert.Equal(t, 1.5, Reactive(1.5))
		assert.Nil(t, Reactive(nil))

		fn := func() int { return 1 }
		assert.Equal(t, reflect.ValueOf(fn).Pointer(), reflect.ValueOf(Reactive(fn)).Pointer())

		r := NewRef(0)
		assert.Same(t, r, Reactive(r))
	})

	t.Run("passes marked raw values through unchanged", func(t *testing.T) {
		m := map[string]any{"a": 1}
		MarkRaw(m)

		p := Reactive(m)
		assert.Equal(t, reflect.ValueOf(m).Pointer(), reflect.ValueOf(p).Pointer())
		assert.False(t, IsReactive(p))
	})

	t.Run("passes skip-marked values through unchanged", func(t *testing.T) {
		v := &skipped{}

		p := Reactive(v)
		assert.Same(t, v, p)
		assert.False(t, IsReactive(p))
	})

	t.Run("wraps nested containers on read", func(t *testing.T) {
		o := Reactive(map[string]any{"nested": map[string]any{"foo": 1}}).(*Map)

		nested := o.Get("nested")
		assert.True(t, IsReactive(nested))

		dummy := 0
		NewEffect(func() {
			dummy = As[int](o.Get("nested").(*Map).Get("foo"))
		})

		assert.Equal(t, 1, dummy)
		nested.(*Map).Set("foo", 2)
		assert.Equal(t, 2, dummy)
	})

	t.Run("keeps the raw backing store free of proxies", func(t *testing.T) {
		inner := map[string]any{"x": 1}
		outer := map[string]any{}

		p := Reactive(outer).(*Map)
		p.Set("inner", Reactive(inner))

		assert.Equal(t, reflect.ValueOf(inner).Pointer(), reflect.ValueOf(outer["inner"]).Pointer())
		assert.True(t, IsReactive(p.Get("inner")))
	})

	t.Run("observes has operations", func(t *testing.T) {
		obj := Reactive(map[string]any{"prop": "value"}).(*Map)

		dummy := false
		NewEffect(func() {
			dummy = obj.Has("prop")
		})

		assert.True(t, dummy)
		obj.Delete("prop")
		assert.False(t, dummy)
		obj.Set("prop", "new_value")
		assert.True(t, dummy)
	})

	t.Run("does not re-run effects when writing an equal value", func(t *testing.T) {
		counter := Reactive(map[string]any{"num": 0}).(*Map)

		runs := 0
		NewEffect(func() {
			runs++
			counter.Get("num")
		})

		assert.Equal(t, 1, runs)
		counter.Set("num", 0)
		assert.Equal(t, 1, runs)
		counter.Set("num", 1)
		assert.Equal(t, 2, runs)
	})

	t.Run("map operations", func(t *testing.T) {
		m := Reactive(map[string]any{"a": 1, "b": 2}).(*Map)

		assert.Equal(t, 2, m.Len())
		assert.ElementsMatch(t, []any{"a", "b"}, m.Keys())
		assert.Equal(t, 1, m.Get("a"))
		assert.Equal(t, 9, m.GetOr("missing", 9))

		v, ok := m.Lookup("b")
		assert.True(t, ok)
		assert.Equal(t, 2, v)

		assert.Equal(t, 2, m.SetDefault("b", 99))
		assert.Equal(t, 3, m.SetDefault("c", 3))

		popped, ok := m.Pop("c")
		assert.True(t, ok)
		assert.Equal(t, 3, popped)

		assert.False(t, m.Delete("missing"))

		m.Update(map[string]any{"d": 4})
		assert.Equal(t, 4, m.Get("d"))

		cp := m.Copy().(map[string]any)
		assert.Equal(t, ToRaw(m), cp)

		m.Clear()
		assert.Equal(t, 0, m.Len())
	})

	t.Run("slice operations", func(t *testing.T) {
		s := Reactive([]any{3, 1, 2}).(*Slice)

		dummy := 0
		NewEffect(func() {
			dummy = s.Len()
		})

		assert.Equal(t, 3, dummy)
		s.Append(4)
		assert.Equal(t, 4, dummy)

		s.Insert(0, 0)
		assert.Equal(t, 0, s.Index(0))
		assert.Equal(t, 5, dummy)

		assert.Equal(t, 4, s.Pop())
		assert.True(t, s.Remove(0))
		assert.False(t, s.Remove(42))

		s.Sort()
		assert.Equal(t, []any{1, 2, 3}, ToRaw(s))

		s.Reverse()
		assert.Equal(t, []any{3, 2, 1}, ToRaw(s))

		s.Extend([]any{9})
		assert.Equal(t, 1, s.Count(9))
		assert.Equal(t, 3, s.IndexOf(9))
		assert.True(t, s.Has(9))

		s.Clear()
		assert.Equal(t, 0, dummy)
	})

	t.Run("slice elements keep refs visible", func(t *testing.T) {
		r := NewRef(1)
		s := Reactive([]any{r}).(*Slice)

		assert.True(t, IsRef(s.Index(0)))
		assert.Same(t, r, s.Index(0))
	})

	t.Run("set operations", func(t *testing.T) {
		s := Reactive(map[int]struct{}{1: {}, 2: {}, 3: {}}).(*Set)

		dummy := false
		NewEffect(func() {
			dummy = s.Has(4)
		})

		assert.False(t, dummy)
		s.Add(4)
		assert.True(t, dummy)

		assert.True(t, s.Remove(4))
		assert.False(t, s.Remove(4))
		s.Discard(42)

		other := map[int]struct{}{3: {}, 4: {}}
		assert.Equal(t, map[int]struct{}{3: {}}, s.Intersection(other))
		assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, s.Difference(other))
		assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}}, s.Union(other))
		assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 4: {}}, s.SymmetricDifference(other))

		assert.True(t, s.IsSuperset(map[int]struct{}{1: {}}))
		assert.True(t, s.IsSubset(map[int]struct{}{1: {}, 2: {}, 3: {}, 9: {}}))
		assert.True(t, s.IsDisjoint(map[int]struct{}{7: {}}))

		s.Update(map[int]struct{}{8: {}})
		assert.True(t, s.Has(8))

		_, ok := s.Pop()
		assert.True(t, ok)

		s.Clear()
		assert.Equal(t, 0, s.Len())
	})

	t.Run("byte buffer operations", func(t *testing.T) {
		b := Reactive([]byte("abc")).(*Bytes)

		dummy := 0
		NewEffect(func() {
			dummy = b.Len()
		})

		assert.Equal(t, 3, dummy)
		b.Append('d')
		assert.Equal(t, 4, dummy)

		assert.Equal(t, byte('a'), b.At(0))
		b.SetAt(0, 'z')
		assert.Equal(t, "zbcd", b.String())

		assert.True(t, b.HasPrefix([]byte("zb")))
		assert.True(t, b.HasSuffix([]byte("cd")))
		assert.Equal(t, 1, b.Count([]byte("bc")))
		assert.Equal(t, 1, b.IndexOf([]byte("bc")))
		assert.Equal(t, "7a626364", b.Hex())

		b.Extend([]byte("!"))
		assert.Equal(t, 5, dummy)
	})

	t.Run("views are read-only windows", func(t *testing.T) {
		b := Reactive([]byte("abc")).(*Bytes)
		v := b.View()

		assert.Equal(t, 3, v.Len())
		assert.Equal(t, []byte("abc"), v.ToBytes())
		assert.Equal(t, "616263", v.Hex())
		assert.True(t, v.ReadOnly())

		released := false
		NewEffect(func() {
			if !released {
				v.At(0)
			}
		})

		released = true
		v.Release()
		assert.True(t, v.Released())
		v.Release() // idempotent

		assert.Panics(t, func() { v.ToBytes() })
	})

	t.Run("object fields are tracked per name", func(t *testing.T) {
		type profile struct {
			Name  string
			Score any
			Tags  map[string]any
		}

		p := Reactive(&profile{Name: "ana", Tags: map[string]any{"x": 1}}).(*Object)

		dummy := ""
		NewEffect(func() {
			dummy = As[string](p.Field("Name"))
		})

		assert.Equal(t, "ana", dummy)
		p.SetField("Name", "bob")
		assert.Equal(t, "bob", dummy)

		assert.True(t, IsReactive(p.Field("Tags")))
		assert.True(t, p.Has("Score"))
		assert.False(t, p.Has("missing"))

		names := []string{}
		for name := range p.Fields() {
			names = append(names, name)
		}
		assert.Equal(t, []string{"Name", "Score", "Tags"}, names)
	})

	t.Run("object fields write through refs", func(t *testing.T) {
		type counter struct {
			Count any
		}

		score := NewRef(10)
		p := Reactive(&counter{Count: score}).(*Object)

		assert.Equal(t, 10, p.Field("Count"))

		p.SetField("Count", 11)
		assert.Equal(t, 11, score.Value())
	})
}
