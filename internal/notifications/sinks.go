package notifications

import (
	"log/slog"
	"sync"
)

// LogSink writes events to a structured logger. Download content is never
// logged, only its filename and size.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink backed by logger (slog.Default when nil).
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Notify implements Sink.
func (s *LogSink) Notify(e Event) {
	attrs := []any{"run_id", e.RunID, "kind", string(e.Kind)}
	switch e.Kind {
	case KindWarning:
		s.logger.Warn(e.Text, attrs...)
	case KindError:
		s.logger.Error(e.Text, attrs...)
	case KindDownload:
		s.logger.Info(e.Text, append(attrs, "filename", e.Filename, "bytes", len(e.Content))...)
	default:
		s.logger.Info(e.Text, attrs...)
	}
}

// Recorder keeps every event in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify implements Sink.
func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Texts returns the text of every recorded event of the given kinds, or of
// all events when no kind is given.
func (r *Recorder) Texts(kinds ...Kind) []string {
	var out []string
	for _, e := range r.Events() {
		if len(kinds) == 0 || hasKind(kinds, e.Kind) {
			out = append(out, e.Text)
		}
	}
	return out
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
