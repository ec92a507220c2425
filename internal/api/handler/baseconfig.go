package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api/respond"
	"github.com/alex-monroe/six-picks-stream-finder/internal/baseconfig"
	"github.com/alex-monroe/six-picks-stream-finder/internal/cache"
)

// GetBaseConfig returns the saved base config document.
// @Summary Get saved base config
// @Description Returns the saved base config exactly as uploaded. Supports If-None-Match.
// @Tags base-config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 304 "Not Modified"
// @Failure 404 {object} respond.ErrorResponse
// @Router /base-config [get]
func (h *Handler) GetBaseConfig(w http.ResponseWriter, r *http.Request) {
	saved, err := h.saved.Load(r.Context())
	if err != nil {
		if errors.Is(err, baseconfig.ErrNotSaved) {
			respond.WriteError(w, http.StatusNotFound, "NOT_SAVED", "No custom base config saved")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	data := []byte(saved.Content)
	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	if !saved.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", saved.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	respond.WritePrivateJSON(w, data, etag)
}

// PutBaseConfig saves the request body as the base config.
// @Summary Save base config
// @Description Stores the request body as the custom base config. The body must be valid JSON.
// @Tags base-config
// @Accept json
// @Produce json
// @Param body body object true "Base config document"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /base-config [put]
func (h *Handler) PutBaseConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "could not read request body")
		return
	}
	if err := h.saved.Save(r.Context(), string(body)); err != nil {
		if errors.Is(err, baseconfig.ErrInvalidJSON) {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Error: File is not valid JSON.")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":   "Custom base config saved!",
		"etag":     cache.ComputeETag(body),
		"saved_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// DeleteBaseConfig removes the saved base config.
// @Summary Delete base config
// @Description Removes the saved base config. Succeeds when nothing is saved.
// @Tags base-config
// @Success 204 "No Content"
// @Router /base-config [delete]
func (h *Handler) DeleteBaseConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.saved.Delete(r.Context()); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
