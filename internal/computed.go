package internal

import "fmt"

// Computed is a lazy ref backed by a getter. Its inner effect subscribes to
// everything the getter reads; the scheduler only flips the dirty bit and
// notifies, it never recomputes. Recomputation happens on the next read.
type Computed struct {
	value     any
	dirty     bool
	cacheable bool

	deps   *depStore
	effect *Effect
}

func (r *Runtime) NewComputed(getter func() any) *Computed {
	c := &Computed{
		dirty:     true,
		cacheable: true,
		deps:      r.newDepStore("ComputedRef"),
	}

	c.effect = r.newEffectLazy(getter, func() {
		if !c.dirty {
			c.dirty = true
			GetRuntime().trigger(c.deps, refValue)
		}
	})
	c.effect.computed = c
	c.effect.active = c.cacheable

	return c
}

func (c *Computed) ReactiveFlags() Flags {
	return FlagRef | FlagComputed | FlagReadonly
}

// Value reads the memo, recomputing only when dirty. A clean read is an O(1)
// cache hit, which is what makes chained computeds cheap.
func (c *Computed) Value() any {
	r := GetRuntime()
	r.track(c.deps, refValue)

	if c.dirty {
		c.dirty = false
		c.value = c.effect.Run()
	}

	return c.value
}

// Dispose stops the inner effect. Subsequent reads still return the last
// cached value but no longer track or recompute.
func (c *Computed) Dispose() {
	c.effect.Stop()
	c.dirty = false
}

// Effect exposes the inner effect, mainly for tests and diagnostics.
func (c *Computed) Effect() *Effect {
	return c.effect
}

func (c *Computed) String() string {
	return fmt.Sprintf("<ComputedRef[%s] value=%v>", typeName(c.value), c.value)
}

func (c *Computed) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(GetRuntime().liveSnapshot(c.Value()))
}
