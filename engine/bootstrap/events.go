package bootstrap

import (
	"time"

	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

// EventKind identifies the stage of a connection attempt.
type EventKind string

const (
	EventAttemptStarted   EventKind = "started"
	EventAttemptSucceeded EventKind = "succeeded"
	EventAttemptFailed    EventKind = "failed"
)

// Event describes one stage of one connection attempt.
type Event struct {
	Kind    EventKind
	TraceID string
	Chain   string
	// Endpoint is the redacted endpoint URL, scheme and host only.
	Endpoint string
	Attempt  uint
	// ChainID is set on EventAttemptSucceeded.
	ChainID uint64
	// Elapsed is the duration of the attempt, zero on EventAttemptStarted.
	Elapsed time.Duration
	// Err is set on EventAttemptFailed.
	Err error
}

// EventSink receives connection attempt events. Emit may be called from multiple goroutines when
// chains are bootstrapped concurrently.
type EventSink interface {
	Emit(e Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(e Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

// NewLogSink returns an EventSink that writes every event as a structured log entry.
func NewLogSink(lggr logger.Logger) EventSink {
	return &logSink{lggr: lggr}
}

type logSink struct {
	lggr logger.Logger
}

func (s *logSink) Emit(e Event) {
	kv := []any{
		"traceID", e.TraceID,
		"chain", e.Chain,
		"endpoint", e.Endpoint,
		"attempt", e.Attempt,
	}

	switch e.Kind {
	case EventAttemptStarted:
		s.lggr.Infow("Connecting to chain", kv...)
	case EventAttemptSucceeded:
		s.lggr.Infow("Connected to chain", append(kv, "chainID", e.ChainID, "elapsed", e.Elapsed)...)
	case EventAttemptFailed:
		s.lggr.Warnw("Failed to connect to chain", append(kv, "elapsed", e.Elapsed, "error", e.Err)...)
	}
}
