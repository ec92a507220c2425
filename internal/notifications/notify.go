// Package notifications carries status, warning, error and download events
// from a generation run to whoever is watching it.
//
// Producers call Sink.Notify synchronously and never wait for delivery.
// Consumers are a Broker (fan-out to Server-Sent Events subscribers), a
// LogSink (slog), and a Recorder (tests and the CLI).
package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Kind distinguishes events so a presentation layer can style them.
type Kind string

const (
	KindStatus   Kind = "status"
	KindWarning  Kind = "warning"
	KindError    Kind = "error"
	KindDownload Kind = "download"
)

// Event is one fire-and-forget notification.
type Event struct {
	ID       string    `json:"id"`
	RunID    string    `json:"run_id,omitempty"`
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text"`
	Filename string    `json:"filename,omitempty"`
	Content  string    `json:"content,omitempty"`
	Time     time.Time `json:"time"`
}

// Sink receives events. Implementations must not block the caller.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

func newEvent(runID string, kind Kind, text string) Event {
	return Event{
		ID:    uuid.NewString(),
		RunID: runID,
		Kind:  kind,
		Text:  text,
		Time:  time.Now().UTC(),
	}
}

// Status builds a progress event.
func Status(runID, text string) Event { return newEvent(runID, KindStatus, text) }

// Warning builds a non-fatal per-item event.
func Warning(runID, text string) Event { return newEvent(runID, KindWarning, text) }

// Error builds a terminal failure event.
func Error(runID, text string) Event { return newEvent(runID, KindError, text) }

// Download builds the event that carries a finished artifact.
func Download(runID, filename, content string) Event {
	e := newEvent(runID, KindDownload, "Download ready: "+filename)
	e.Filename = filename
	e.Content = content
	return e
}

// NewRunID returns a fresh correlation id for one generation run.
func NewRunID() string { return uuid.NewString() }

type runIDKey struct{}

// WithRunID attaches a run id to ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFrom returns the run id attached to ctx, or "".
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// --------------------------------------------------------------------------
// Composition
// --------------------------------------------------------------------------

// Multi delivers each event to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var out []Sink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return SinkFunc(func(e Event) {
		for _, s := range out {
			s.Notify(e)
		}
	})
}
