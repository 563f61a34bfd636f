package internal

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// View is a read-only window over a Bytes buffer. Reads track both the view
// and the underlying buffer; Release invalidates the view and triggers its
// subscribers. Len, At, ToBytes, Hex and MarshalJSON panic on a released
// view; ReadOnly, Released, String and Release do not.
type View struct {
	parent   *Bytes
	deps     *depStore
	released bool
}

func (r *Runtime) newView(parent *Bytes) *View {
	return &View{
		parent: parent,
		deps:   r.newDepStore("View"),
	}
}

func (v *View) ReactiveFlags() Flags {
	return FlagReactive | FlagReadonly
}

func (v *View) check() {
	if v.released {
		panic("reactivity: operation on released view")
	}
}

func (v *View) track() {
	r := GetRuntime()
	r.track(v.deps, ValueKey)
	v.parent.track()
}

func (v *View) Len() int {
	v.check()
	v.track()
	return len(v.parent.buf())
}

// At reads one byte through the view.
func (v *View) At(i int) byte {
	v.check()
	v.track()
	return v.parent.buf()[i]
}

// ToBytes copies the viewed bytes out.
func (v *View) ToBytes() []byte {
	v.check()
	v.track()
	return bytes.Clone(v.parent.buf())
}

// Hex returns the viewed bytes as a hex string.
func (v *View) Hex() string {
	v.check()
	v.track()
	return hex.EncodeToString(v.parent.buf())
}

// ReadOnly always reports true; views never expose writes.
func (v *View) ReadOnly() bool {
	v.track()
	return true
}

// Released reports whether the view has been released.
func (v *View) Released() bool {
	return v.released
}

// Release invalidates the view and notifies its subscribers. Idempotent.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true
	GetRuntime().trigger(v.deps, ValueKey)
}

func (v *View) String() string {
	if v.released {
		return "<View released>"
	}
	v.track()
	return fmt.Sprintf("<View len=%d>", len(v.parent.buf()))
}

func (v *View) MarshalJSON() ([]byte, error) {
	v.check()
	return jsonAPI.Marshal(v.parent.buf())
}
