// Package reactivity is a fine-grained reactivity runtime: observable
// values (refs), observable containers (reactive proxies), lazily memoized
// derivations (computeds), and subscribers (effects and watchers) that
// re-run automatically when their dependencies change.
//
// The runtime is synchronous and single-threaded cooperative: every write
// runs its subscribers before returning, and all state belongs to the
// goroutine that created it.
package reactivity

import "github.com/AnatoleLucet/reactivity/internal"

// As reads an any-typed value as T, treating nil as the zero value.
func As[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Ref is a single-slot observable with a tracked Value/SetValue pair.
type Ref = internal.Ref

// Computed is a lazy, memoized, read-only ref derived from other
// observables.
type Computed = internal.Computed

// Effect is a re-runnable subscriber.
type Effect = internal.Effect

// Map, Slice, Set, Bytes, View, and Object are the reactive container
// shapes produced by Reactive.
type (
	Map    = internal.Map
	Slice  = internal.Slice
	Set    = internal.Set
	Bytes  = internal.Bytes
	View   = internal.View
	Object = internal.Object
)

// StopHandle stops a watcher; OnCleanup registers a per-run cleanup.
type (
	StopHandle = internal.StopHandle
	OnCleanup  = internal.OnCleanup
)

// Skipper marks values Reactive must pass through unchanged.
type Skipper = internal.Skipper

var (
	ErrInvalidSource   = internal.ErrInvalidSource
	ErrInvalidCallback = internal.ErrInvalidCallback
)

// Reactive wraps a mutable value (map, slice, set-shaped map, byte buffer,
// or struct pointer) in a tracked proxy. Wrapping is idempotent and
// identity-preserving: the same raw value always yields the same proxy, and
// immutable values come back unchanged.
func Reactive(v any) any {
	return internal.GetRuntime().Reactive(v)
}

// NewRef creates a ref holding the given value. Passing a ref returns it
// unchanged.
func NewRef(v any) *Ref {
	return internal.GetRuntime().NewRef(v)
}

// NewComputed creates a lazy computed backed by the getter. The getter does
// not run until the first read.
func NewComputed(getter func() any) *Computed {
	return internal.GetRuntime().NewComputed(getter)
}

// NewEffect creates an effect that runs the given function immediately and
// re-runs it whenever one of the observables it read changes.
func NewEffect(fn func()) *Effect {
	return internal.GetRuntime().NewEffect(func() any {
		fn()
		return nil
	})
}

// WatchOption configures Watch.
type WatchOption func(*internal.WatchOptions)

// WithDeep makes Watch traverse the watched value recursively so nested
// changes register as dependencies. Reactive sources are always deep.
func WithDeep() WatchOption {
	return func(o *internal.WatchOptions) { o.Deep = true }
}

// WithImmediate invokes the callback on the first run, with nil previous
// values.
func WithImmediate() WatchOption {
	return func(o *internal.WatchOptions) { o.Immediate = true }
}

// Watch observes a source (a ref, a computed, a reactive proxy, a nullary
// getter, or a []any of those) and invokes callback when it changes. See
// internal.Runtime.Watch for the accepted callback shapes.
func Watch(source any, callback any, opts ...WatchOption) (StopHandle, error) {
	options := internal.WatchOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return internal.GetRuntime().Watch(source, callback, options)
}

// WatchEffect runs fn immediately and re-runs it whenever its dependencies
// change. fn is either func() or func(OnCleanup). Unlike Watch it accepts
// no options.
func WatchEffect(fn any) (StopHandle, error) {
	return internal.GetRuntime().WatchEffect(fn)
}

// IsRef reports whether v is a ref (computeds included).
func IsRef(v any) bool { return internal.IsRef(v) }

// IsReactive reports whether v is a reactive proxy.
func IsReactive(v any) bool { return internal.IsReactive(v) }

// IsComputedRef reports whether v is a computed.
func IsComputedRef(v any) bool { return internal.IsComputedRef(v) }

// IsReadonly reports whether v rejects writes.
func IsReadonly(v any) bool { return internal.IsReadonly(v) }

// Unref returns the raw value behind a ref, or v itself otherwise.
func Unref(v any) any { return internal.Unref(v) }

// DeepUnref unrefs recursively through maps, slices, and sets, producing a
// structure with no refs in it.
func DeepUnref(v any) any { return internal.DeepUnref(v) }

// ToRaw recovers the raw value behind a reactive proxy.
func ToRaw(v any) any { return internal.ToRaw(v) }

// DeepToRaw recovers raw values recursively, rebuilding nested containers.
func DeepToRaw(v any) any { return internal.DeepToRaw(v) }

// MarkRaw registers the value's identity so Reactive passes it through
// unchanged.
func MarkRaw(v any) any {
	return internal.GetRuntime().MarkRaw(v)
}
