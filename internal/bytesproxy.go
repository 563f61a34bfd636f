package internal

import (
	"bytes"
	"encoding/hex"
	"iter"
	"reflect"
)

// Bytes is the mutable byte-buffer shape.
type Bytes struct {
	proxyBase
}

func (r *Runtime) newBytes(raw reflect.Value) *Bytes {
	b := &Bytes{}
	b.rt = r
	b.raw = raw
	b.deps = r.newDepStore("Bytes")
	return b
}

func (b *Bytes) buf() []byte {
	return b.raw.Bytes()
}

// At reads one byte, tracked.
func (b *Bytes) At(i int) byte {
	b.track()
	return b.buf()[i]
}

// SetAt writes one byte, skipping the trigger when unchanged.
func (b *Bytes) SetAt(i int, v byte) {
	if b.buf()[i] == v {
		return
	}
	b.buf()[i] = v
	b.trigger()
}

// Append adds bytes at the end.
func (b *Bytes) Append(vs ...byte) {
	b.raw = reflect.ValueOf(append(b.buf(), vs...)).Convert(b.raw.Type())
	b.rt.rememberProxy(b.raw, b)
	b.trigger()
}

// Extend appends another buffer (raw or reactive).
func (b *Bytes) Extend(other any) {
	o, ok := ToRaw(other).([]byte)
	if !ok {
		panic("reactivity: Bytes.Extend expects []byte, got " + typeName(other))
	}
	b.raw = reflect.ValueOf(append(b.buf(), o...)).Convert(b.raw.Type())
	b.rt.rememberProxy(b.raw, b)
	b.trigger()
}

// Clear empties the buffer.
func (b *Bytes) Clear() {
	b.raw = reflect.ValueOf(b.buf()[:0]).Convert(b.raw.Type())
	b.rt.rememberProxy(b.raw, b)
	b.trigger()
}

func (b *Bytes) Len() int {
	b.track()
	return b.raw.Len()
}

// Count reports non-overlapping occurrences of sub, tracked.
func (b *Bytes) Count(sub []byte) int {
	b.track()
	return bytes.Count(b.buf(), sub)
}

// IndexOf reports the index of the first occurrence of sub, or -1, tracked.
func (b *Bytes) IndexOf(sub []byte) int {
	b.track()
	return bytes.Index(b.buf(), sub)
}

// Has reports whether sub occurs in the buffer, tracked.
func (b *Bytes) Has(sub []byte) bool {
	return b.IndexOf(sub) >= 0
}

// HasPrefix reports whether the buffer starts with prefix, tracked.
func (b *Bytes) HasPrefix(prefix []byte) bool {
	b.track()
	return bytes.HasPrefix(b.buf(), prefix)
}

// HasSuffix reports whether the buffer ends with suffix, tracked.
func (b *Bytes) HasSuffix(suffix []byte) bool {
	b.track()
	return bytes.HasSuffix(b.buf(), suffix)
}

// Hex returns the buffer as a hex string, tracked.
func (b *Bytes) Hex() string {
	b.track()
	return hex.EncodeToString(b.buf())
}

// All iterates the bytes, tracked.
func (b *Bytes) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		b.track()
		for i, v := range b.buf() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// View returns a read-only view over the current buffer.
func (b *Bytes) View() *View {
	return b.rt.newView(b)
}

// Copy returns a plain copy of the raw buffer.
func (b *Bytes) Copy() []byte {
	b.track()
	return bytes.Clone(b.buf())
}

// Equal compares against another buffer by content, tracked.
func (b *Bytes) Equal(other any) bool {
	b.track()
	o, ok := ToRaw(other).([]byte)
	return ok && bytes.Equal(b.buf(), o)
}

func (b *Bytes) String() string {
	b.track()
	return string(b.buf())
}

func (b *Bytes) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(b.buf())
}
