package internal

// Tracker maintains the stack of currently executing effects. A stack, not a
// single slot, so an effect reading a computed (which runs its own getter)
// sees the outer effect restored on return.
type Tracker struct {
	stack []*Effect

	// to prevent cross-goroutine tracking issues
	executingGID int64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Current returns the innermost running effect, or nil.
func (t *Tracker) Current() *Effect {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// RunWithEffect pushes the effect for the duration of fn. The pop happens on
// both success and failure.
func (t *Tracker) RunWithEffect(e *Effect, fn func() any) any {
	t.stack = append(t.stack, e)
	prevGID := t.executingGID
	t.executingGID = getGID()

	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
		t.executingGID = prevGID
	}()

	return fn()
}

func (t *Tracker) shouldTrack() bool {
	// make sure we're currently in the same goroutine as the effect
	// to avoid cross-goroutine tracking issues
	return len(t.stack) > 0 && getGID() == t.executingGID
}
