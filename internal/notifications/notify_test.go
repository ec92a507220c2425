package notifications

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	e := Status("run-1", "Fetching ID for A...")
	assert.Equal(t, KindStatus, e.Kind)
	assert.Equal(t, "run-1", e.RunID)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Time.IsZero())

	assert.Equal(t, KindWarning, Warning("", "w").Kind)
	assert.Equal(t, KindError, Error("", "e").Kind)

	d := Download("run-1", "streamfinder_config_2024-05-01.txt", "{}")
	assert.Equal(t, KindDownload, d.Kind)
	assert.Equal(t, "streamfinder_config_2024-05-01.txt", d.Filename)
	assert.Equal(t, "{}", d.Content)

	assert.NotEqual(t, Status("", "a").ID, Status("", "a").ID)
}

func TestRunIDContext(t *testing.T) {
	assert.Empty(t, RunIDFrom(context.Background()))
	ctx := WithRunID(context.Background(), "abc")
	assert.Equal(t, "abc", RunIDFrom(ctx))
}

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker(4, nil)
	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()
	assert.Equal(t, 2, b.Subscribers())

	b.Notify(Status("r", "hello"))
	assert.Equal(t, "hello", (<-ch1).Text)
	assert.Equal(t, "hello", (<-ch2).Text)

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, b.Subscribers())
}

func TestBroker_DropsWhenSubscriberFull(t *testing.T) {
	b := NewBroker(1, nil)
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Notify(Status("r", "first"))
	b.Notify(Status("r", "second"))

	assert.Equal(t, "first", (<-ch).Text)
	assert.Equal(t, int64(1), b.Dropped())
}

func TestBroker_NoSubscribers(t *testing.T) {
	b := NewBroker(0, nil)
	assert.NotPanics(t, func() { b.Notify(Error("r", "nobody listening")) })
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Status("", "a"))
	r.Notify(Warning("", "b"))
	r.Notify(Error("", "c"))

	assert.Equal(t, []string{"a", "b", "c"}, r.Texts())
	assert.Equal(t, []string{"b"}, r.Texts(KindWarning))
	assert.Equal(t, []string{"b", "c"}, r.Texts(KindWarning, KindError))

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestMulti_SkipsNilAndPreservesOrder(t *testing.T) {
	var a, b Recorder
	s := Multi(&a, nil, &b)
	s.Notify(Status("", "x"))

	require.Len(t, a.Events(), 1)
	require.Len(t, b.Events(), 1)
	assert.Equal(t, a.Events()[0].ID, b.Events()[0].ID)
}

func TestLogSink_LevelsByKind(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	s.Notify(Warning("r1", "Warning: Could not find MLB ID for X. Skipping."))
	s.Notify(Download("r1", "f.txt", "secret-content"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "run_id=r1")
	assert.Contains(t, out, "filename=f.txt")
	assert.NotContains(t, out, "secret-content")
}
