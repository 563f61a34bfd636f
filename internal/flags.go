package internal

// Flags identify the kind of an observable with O(1) bit tests instead of
// type assertions scattered through the hot paths.
type Flags int

const (
	FlagNone     Flags = 0
	FlagRef      Flags = 1 << 0
	FlagComputed Flags = 1 << 1
	FlagReadonly Flags = 1 << 2
	FlagReactive Flags = 1 << 3
)

// flagged is implemented by every observable (refs, computeds, proxies).
type flagged interface {
	ReactiveFlags() Flags
}

// Skipper marks a value that Reactive must pass through unchanged, without
// the caller having to register it with MarkRaw first.
type Skipper interface {
	ReactiveSkip() bool
}

func flagsOf(v any) Flags {
	if f, ok := v.(flagged); ok {
		return f.ReactiveFlags()
	}
	return FlagNone
}

// HasFlag checks if the given flag is set on v.
func HasFlag(v any, flag Flags) bool {
	return flagsOf(v)&flag != 0
}

func IsRef(v any) bool         { return HasFlag(v, FlagRef) }
func IsComputedRef(v any) bool { return HasFlag(v, FlagComputed) }
func IsReadonly(v any) bool    { return HasFlag(v, FlagReadonly) }
func IsReactive(v any) bool    { return HasFlag(v, FlagReactive) }

// ValueKey stands for a whole-container change when the operation cannot be
// attributed to a single member (append, clear, len, iteration, item access).
const ValueKey = "__reactivity_value__"

// refValue is the key under which a ref's single cell is tracked.
const refValue = "value"
