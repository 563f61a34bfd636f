package internal

// depSet is an insertion-ordered set of effects subscribed to one
// (observable, key) pair.
type depSet struct {
	members map[*Effect]struct{}
	order   []*Effect
}

func newDepSet() *depSet {
	return &depSet{members: make(map[*Effect]struct{})}
}

// add returns false if the effect was already a member.
func (s *depSet) add(e *Effect) bool {
	if _, ok := s.members[e]; ok {
		return false
	}
	s.members[e] = struct{}{}
	s.order = append(s.order, e)
	return true
}

func (s *depSet) remove(e *Effect) {
	if _, ok := s.members[e]; !ok {
		return
	}
	delete(s.members, e)
	for i, m := range s.order {
		if m == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the member list so trigger can iterate while subscribers
// re-subscribe underneath it.
func (s *depSet) snapshot() []*Effect {
	out := make([]*Effect, len(s.order))
	copy(out, s.order)
	return out
}

// depStore holds the per-key subscriber sets of one observable.
type depStore struct {
	id    uint64
	label string
	deps  map[any]*depSet
}

func (r *Runtime) newDepStore(label string) *depStore {
	r.ids++
	return &depStore{
		id:    r.ids,
		label: label,
		deps:  make(map[any]*depSet),
	}
}

// track records the current effect as a subscriber of (store, key), keeping
// the back-pointer invariant: e is in set iff set is in e.backDeps.
func (r *Runtime) track(store *depStore, k any) {
	if !r.tracker.shouldTrack() {
		return
	}

	e := r.tracker.Current()

	set, ok := store.deps[k]
	if !ok {
		set = newDepSet()
		store.deps[k] = set
	}

	if set.add(e) {
		e.backDeps = append(e.backDeps, set)
	}

	r.tracef("[%s#%d] track key=%v", store.label, store.id, k)
}

// trigger runs every subscriber of (store, key). Computed-backed subscribers
// run first so plain effects never observe a stale memo.
func (r *Runtime) trigger(store *depStore, k any) {
	set, ok := store.deps[k]
	if !ok {
		return
	}

	r.tracef("[%s#%d] trigger key=%v subs=%d", store.label, store.id, k, len(set.order))

	effects := set.snapshot()
	for _, e := range effects {
		if e.computed != nil {
			dispatch(e)
		}
	}
	for _, e := range effects {
		if e.computed == nil {
			dispatch(e)
		}
	}
}

func dispatch(e *Effect) {
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}
