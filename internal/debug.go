package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newTraceLogger builds the logger behind REACTIVITY_DEBUG. When the switch
// is off the logger writes to io.Discard so trace call sites stay cheap.
func newTraceLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Debug {
		logger.SetLevel(logrus.TraceLevel)
	} else {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.PanicLevel)
	}
	return logger
}

func (r *Runtime) tracef(format string, args ...any) {
	if !r.config.Debug {
		return
	}
	r.log.Tracef(format, args...)
}
