package internal

// Effect is a re-runnable unit of computation registered against
// observables. It owns back-pointers to every dep set it appears in so Stop
// can tear the subscriptions down without scanning the graph.
type Effect struct {
	active    bool
	fn        func() any
	scheduler func()

	// set when this effect backs a computed; trigger runs computed-backed
	// effects before plain ones
	computed *Computed

	backDeps []*depSet
}

// NewEffect constructs an effect and runs it immediately.
func (r *Runtime) NewEffect(fn func() any) *Effect {
	e := &Effect{active: true, fn: fn}
	e.Run()
	return e
}

func (r *Runtime) newEffectLazy(fn func() any, scheduler func()) *Effect {
	return &Effect{active: true, fn: fn, scheduler: scheduler}
}

// Run evaluates fn with this effect on the tracker stack. A stopped effect
// still evaluates fn, just without subscribing. An effect that writes one of
// its own dependencies during Run re-enters through the trigger snapshot;
// nothing defends against the recursion.
func (e *Effect) Run() any {
	r := GetRuntime()

	if !e.active {
		return e.fn()
	}

	return r.tracker.RunWithEffect(e, e.fn)
}

// Stop removes the effect from every dep set it belongs to and deactivates
// it. Idempotent.
func (e *Effect) Stop() {
	for _, set := range e.backDeps {
		set.remove(e)
	}
	e.backDeps = nil
	e.active = false
}

// Active reports whether the effect still subscribes when run.
func (e *Effect) Active() bool {
	return e.active
}
