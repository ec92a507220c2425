package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
)

const heartbeatInterval = 15 * time.Second

// Events streams workflow notifications as server-sent events.
// @Summary Stream notifications
// @Description Server-sent events for status, warning, error and download notifications. Pass run_id to follow one run.
// @Tags events
// @Produce text/event-stream
// @Param run_id query string false "Only deliver events of this run"
// @Success 200 {string} string "event stream"
// @Router /events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	runID := r.URL.Query().Get("run_id")
	ch, cancel := h.broker.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Warn("Event stream not flushable", "error", err)
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case e, ok := <-ch:
			if !ok {
				return
			}
			if runID != "" && e.RunID != runID {
				continue
			}
			if err := writeEvent(w, e); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, e notifications.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Kind, data)
	return err
}
