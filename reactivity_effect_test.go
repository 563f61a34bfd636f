package reactivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs the passed function once", func(t *testing.T) {
		calls := 0

		NewEffect(func() {
			calls++
		})

		assert.Equal(t, 1, calls)
	})

	t.Run("observes basic properties", func(t *testing.T) {
		counter := Reactive(map[string]any{"num": 0}).(*Map)

		dummy := 0
		NewEffect(func() {
			dummy = As[int](counter.Get("num"))
		})

		assert.Equal(t, 0, dummy)
		counter.Set("num", 7)
		assert.Equal(t, 7, dummy)
	})

	t.Run("observes multiple properties", func(t *testing.T) {
		counter := Reactive(map[string]any{"num1": 0, "num2": 0}).(*Map)

		dummy := 0
		NewEffect(func() {
			dummy = As[int](counter.Get("num1")) + As[int](counter.Get("num1")) + As[int](counter.Get("num2"))
		})

		assert.Equal(t, 0, dummy)
		counter.Set("num1", 7)
		counter.Set("num2", 7)
		assert.Equal(t, 21, dummy)
	})

	t.Run("handles multiple effects", func(t *testing.T) {
		counter := Reactive(map[string]any{"num": 0}).(*Map)

		dummy1, dummy2 := 0, 0
		NewEffect(func() {
			dummy1 = As[int](counter.Get("num"))
		})
		NewEffect(func() {
			dummy2 = As[int](counter.Get("num"))
		})

		assert.Equal(t, 0, dummy1)
		assert.Equal(t, 0, dummy2)
		counter.Set("num", 1)
		assert.Equal(t, 1, dummy1)
		assert.Equal(t, 1, dummy2)
	})

	t.Run("observes nested properties", func(t *testing.T) {
		counter := Reactive(map[string]any{"nested": map[string]any{"num": 0}}).(*Map)

		dummy := 0
		NewEffect(func() {
			dummy = As[int](counter.Get("nested").(*Map).Get("num"))
		})

		assert.Equal(t, 0, dummy)
		counter.Get("nested").(*Map).Set("num", 8)
		assert.Equal(t, 8, dummy)
	})

	t.Run("observes sequences held in struct fields", func(t *testing.T) {
		type box struct {
			Items []any
		}

		b := Reactive(&box{Items: []any{1}}).(*Object)

		dummy := 0
		NewEffect(func() {
			dummy = b.Field("Items").(*Slice).Len()
		})

		assert.Equal(t, 1, dummy)
		b.Field("Items").(*Slice).Append(2)
		assert.Equal(t, 2, dummy)
	})

	t.Run("stopped effects no longer re-run", func(t *testing.T) {
		counter := Reactive(map[string]any{"num": 0}).(*Map)

		dummy := 0
		e := NewEffect(func() {
			dummy = As[int](counter.Get("num"))
		})

		counter.Set("num", 1)
		assert.Equal(t, 1, dummy)

		e.Stop()
		counter.Set("num", 2)
		assert.Equal(t, 1, dummy)

		e.Stop() // idempotent
		assert.False(t, e.Active())
	})

	t.Run("a stopped effect still evaluates when run manually", func(t *testing.T) {
		counter := Reactive(map[string]any{"num": 5}).(*Map)

		dummy := 0
		e := NewEffect(func() {
			dummy = As[int](counter.Get("num"))
		})
		e.Stop()

		counter.Set("num", 6)
		assert.Equal(t, 5, dummy)

		e.Run()
		assert.Equal(t, 6, dummy)

		// the manual run did not resubscribe
		counter.Set("num", 7)
		assert.Equal(t, 6, dummy)
	})

	t.Run("unwinds the tracker stack when the function panics", func(t *testing.T) {
		broken := Reactive(map[string]any{"num": 0}).(*Map)

		assert.Panics(t, func() {
			NewEffect(func() {
				broken.Get("num")
				panic("boom")
			})
		})

		// tracking is back to normal: a fresh effect on a fresh observable
		// subscribes and re-runs as usual
		counter := Reactive(map[string]any{"num": 0}).(*Map)
		dummy := 0
		NewEffect(func() {
			dummy = As[int](counter.Get("num"))
		})
		counter.Set("num", 3)
		assert.Equal(t, 3, dummy)
	})

	t.Run("nested effects restore the outer subscriber", func(t *testing.T) {
		outer := Reactive(map[string]any{"num": 0}).(*Map)
		inner := Reactive(map[string]any{"num": 0}).(*Map)

		outerRuns, innerRuns := 0, 0
		NewEffect(func() {
			outerRuns++
			NewEffect(func() {
				innerRuns++
				inner.Get("num")
			})
			outer.Get("num")
		})

		assert.Equal(t, 1, outerRuns)
		assert.Equal(t, 1, innerRuns)

		// the read after the nested effect still belongs to the outer one
		outer.Set("num", 1)
		assert.Equal(t, 2, outerRuns)
	})
}
