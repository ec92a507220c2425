package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api/respond"
	"github.com/alex-monroe/six-picks-stream-finder/internal/cache"
	"github.com/alex-monroe/six-picks-stream-finder/internal/provider"
)

// LookupResponse is the result of one identifier lookup.
type LookupResponse struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
	ID      string `json:"id,omitempty"`
}

// Lookup resolves a single player name to an MLB id.
// @Summary Look up an MLB player id
// @Description Resolves a display name through the MLB people search. The first match wins. Found and not-found answers are cached.
// @Tags lookup
// @Produce json
// @Param name query string true "Player display name"
// @Success 200 {object} LookupResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /lookup [get]
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "name query parameter is required")
		return
	}

	key := cache.LookupKey(name)
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLLookup, true)
		return
	}

	res := h.resolver.Resolve(r.Context(), name)
	if res.Outcome == provider.LookupFailed {
		h.logger.Warn("Lookup failed", "name", name, "error", res.Err)
		msg := "lookup failed"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		respond.WriteError(w, http.StatusBadGateway, "LOOKUP_FAILED", msg)
		return
	}

	data, err := json.Marshal(LookupResponse{Name: name, Outcome: res.Outcome.String(), ID: res.ID})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
		return
	}
	etag := h.cache.Set(key, data, cache.TTLLookup)
	respond.WriteJSON(w, data, etag, cache.TTLLookup, false)
}
