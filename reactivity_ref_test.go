package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		r := NewRef(1)

		assert.True(t, IsRef(r))
		assert.Equal(t, 1, r.Value())

		r.SetValue(2)
		assert.Equal(t, 2, r.Value())
	})

	t.Run("ref of a ref is the same ref", func(t *testing.T) {
		r := NewRef(1)
		assert.Same(t, r, NewRef(r))
	})

	t.Run("unref", func(t *testing.T) {
		r := NewRef(1)

		assert.Equal(t, 1, Unref(r))
		assert.Equal(t, 5, Unref(5))
		assert.Nil(t, Unref(nil))
	})

	t.Run("does not trigger when writing an equal value", func(t *testing.T) {
		r := NewRef(1)

		runs := 0
		NewEffect(func() {
			runs++
			r.Value()
		})

		assert.Equal(t, 1, runs)
		r.SetValue(1)
		assert.Equal(t, 1, runs)
		r.SetValue(2)
		assert.Equal(t, 2, runs)
	})

	t.Run("stores raw and wraps on read", func(t *testing.T) {
		m := map[string]any{"count": 0}
		r := NewRef(m)

		wrapped := r.Value()
		assert.True(t, IsReactive(wrapped))

		dummy := 0
		NewEffect(func() {
			dummy = As[int](r.Value().(*Map).Get("count"))
		})

		wrapped.(*Map).Set("count", 7)
		assert.Equal(t, 7, dummy)
	})

	t.Run("normalizes wrapped values on write", func(t *testing.T) {
		m := map[string]any{"a": 1}
		r := NewRef(0)

		r.SetValue(Reactive(m))
		assert.Equal(t, m, Unref(r))
	})

	t.Run("auto-unwraps inside reactive mappings", func(t *testing.T) {
		r := NewRef(0)
		s := Reactive(map[string]any{"a": r}).(*Map)

		assert.Equal(t, 0, s.Get("a"))

		s.Set("a", 1)
		assert.Equal(t, 1, r.Value())
		assert.Equal(t, 1, s.Get("a"))
	})

	t.Run("replacing a ref with a ref swaps the slot", func(t *testing.T) {
		r1 := NewRef(1)
		r2 := NewRef(2)
		s := Reactive(map[string]any{"a": r1}).(*Map)

		s.Set("a", r2)

		assert.Equal(t, 2, s.Get("a"))
		assert.Equal(t, 1, r1.Value())
	})

	t.Run("deep unref flattens nested refs", func(t *testing.T) {
		v := map[string]any{
			"foo": NewRef(map[string]any{"bar": []any{NewRef(1), 2, 3}}),
			"baz": NewRef(1),
		}

		assert.Equal(t, map[string]any{
			"foo": map[string]any{"bar": []any{1, 2, 3}},
			"baz": 1,
		}, DeepUnref(v))
	})

	t.Run("deep to raw rebuilds nested containers", func(t *testing.T) {
		inner := map[string]any{"x": 1}
		v := []any{Reactive(inner), 2}

		raw := DeepToRaw(v).([]any)
		assert.Equal(t, inner, raw[0])
		assert.False(t, IsReactive(raw[0]))
	})

	t.Run("stringer names the held type", func(t *testing.T) {
		assert.Equal(t, "<Ref[int] value=1>", NewRef(1).String())
	})
}
