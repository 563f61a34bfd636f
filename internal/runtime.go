package internal

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// Runtime owns all the process-wide mutable state of the reactivity graph:
// the tracker stack, the identity tables, and the shape cache. One runtime
// per goroutine; callers must not share observables across OS threads.
type Runtime struct {
	config Config
	log    *logrus.Logger

	tracker *Tracker

	ids uint64

	rawToProxy map[rawKey]Proxy
	markedRaw  map[rawKey]struct{}

	shapes map[reflect.Type]shapeKind
}

func NewRuntime() *Runtime {
	cfg := LoadConfig()

	return &Runtime{
		config:     cfg,
		log:        newTraceLogger(cfg),
		tracker:    NewTracker(),
		rawToProxy: make(map[rawKey]Proxy),
		markedRaw:  make(map[rawKey]struct{}),
		shapes:     make(map[reflect.Type]shapeKind),
	}
}
