package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Run("refs serialize as their value", func(t *testing.T) {
		got, err := Marshal(NewRef(1))
		require.NoError(t, err)
		assert.JSONEq(t, `1`, string(got))

		got, err = Marshal(NewRef("hi"))
		require.NoError(t, err)
		assert.JSONEq(t, `"hi"`, string(got))
	})

	t.Run("nested refs serialize transparently", func(t *testing.T) {
		wrapped := NewRef(map[string]any{
			"foo": NewRef(map[string]any{"bar": []any{NewRef(1), 2, 3}}),
			"baz": NewRef(1),
		})
		plain := map[string]any{
			"foo": map[string]any{"bar": []any{1, 2, 3}},
			"baz": 1,
		}

		gotWrapped, err := Marshal(wrapped)
		require.NoError(t, err)
		gotPlain, err := Marshal(plain)
		require.NoError(t, err)

		assert.Equal(t, string(gotPlain), string(gotWrapped))
	})

	t.Run("reactive proxies serialize like their raw value", func(t *testing.T) {
		m := map[string]any{"a": 1, "b": []any{1, 2}}

		gotProxy, err := Marshal(Reactive(m))
		require.NoError(t, err)
		gotRaw, err := Marshal(m)
		require.NoError(t, err)

		assert.Equal(t, string(gotRaw), string(gotProxy))
	})

	t.Run("computeds serialize as their current value", func(t *testing.T) {
		count := NewRef(2)
		double := NewComputed(func() any { return As[int](count.Value()) * 2 })

		got, err := Marshal(map[string]any{"double": double})
		require.NoError(t, err)
		assert.JSONEq(t, `{"double": 4}`, string(got))
	})

	t.Run("refs inside marshaled structs unwrap", func(t *testing.T) {
		type payload struct {
			Count *Ref `json:"count"`
		}

		got, err := Marshal(payload{Count: NewRef(7)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"count": 7}`, string(got))
	})

	t.Run("marshal indent matches the std shape", func(t *testing.T) {
		got, err := MarshalIndent(map[string]any{"a": NewRef(1)}, "", "  ")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 1\n}", string(got))
	})

	t.Run("marshal reflects sequence growth", func(t *testing.T) {
		state := Reactive(map[string]any{"todos": []any{}}).(*Map)

		state.Get("todos").(*Slice).Append("a", "b")

		got, err := Marshal(state)
		require.NoError(t, err)
		assert.JSONEq(t, `{"todos": ["a", "b"]}`, string(got))
	})

	t.Run("unmarshal round-trips marshaled state", func(t *testing.T) {
		state := Reactive(map[string]any{"count": NewRef(3), "tags": []any{"a"}}).(*Map)

		data, err := Marshal(state)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, Unmarshal(data, &decoded))
		assert.Equal(t, map[string]any{"count": float64(3), "tags": []any{"a"}}, decoded)
	})

	t.Run("fallback unwraps refs before the user hook", func(t *testing.T) {
		fallback := Fallback(func(v any) (any, error) {
			return "user", nil
		})

		v, err := fallback(NewRef(map[string]any{"a": NewRef(1)}))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1}, v)

		v, err = fallback(struct{}{})
		require.NoError(t, err)
		assert.Equal(t, "user", v)
	})

	t.Run("fallback without a user hook rejects non-refs", func(t *testing.T) {
		fallback := Fallback(nil)

		v, err := fallback(NewRef(1))
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		_, err = fallback(struct{}{})
		assert.ErrorIs(t, err, ErrNotSerializable)
	})
}
