package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api/respond"
	"github.com/alex-monroe/six-picks-stream-finder/internal/baseconfig"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/roster"
	"github.com/alex-monroe/six-picks-stream-finder/internal/session"
	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
	"github.com/alex-monroe/six-picks-stream-finder/internal/workflow"
)

// ContextRequest parks a base config for the next players request.
// baseConfig may be the JSON text as a string or the JSON document itself.
type ContextRequest struct {
	BaseConfig json.RawMessage `json:"baseConfig" swaggertype:"string"`
}

// PlayersRequest carries a scraped roster.
type PlayersRequest struct {
	Players []streamfinder.PlayerPick `json:"players" validate:"dive"`
}

// ExtractionFailedRequest reports a scrape failure.
type ExtractionFailedRequest struct {
	Error string `json:"error" validate:"required"`
}

// GenerateRequest asks for a config built from a roster page and the saved
// base config.
type GenerateRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// StatusResponse is a plain acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}

// configText accepts the base config either as a JSON string holding the
// document or as the document itself.
func configText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}

// runContext tags the request context with a run id, honouring a client
// supplied X-Run-ID so it can filter the event stream up front.
func runContext(r *http.Request) *http.Request {
	if id := r.Header.Get("X-Run-ID"); id != "" {
		return r.WithContext(notifications.WithRunID(r.Context(), id))
	}
	return r.WithContext(notifications.WithRunID(r.Context(), notifications.NewRunID()))
}

// SetContext parks the base config for the next players request.
// @Summary Set base config context
// @Description Stores the operator's base config as the single pending context. Replaces any pending value.
// @Tags workflow
// @Accept json
// @Produce json
// @Param body body ContextRequest true "Base config"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /context [post]
func (h *Handler) SetContext(w http.ResponseWriter, r *http.Request) {
	var req ContextRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if err := h.coord.SetBaseConfigContext(r.Context(), configText(req.BaseConfig)); err != nil {
		if errors.Is(err, session.ErrInvalidInput) {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ProcessPlayers consumes the pending context and generates a config.
// @Summary Process scraped players
// @Description Takes and clears the pending base config, resolves every player's MLB id concurrently and returns the generated config file.
// @Tags workflow
// @Accept json
// @Produce json
// @Param X-Run-ID header string false "Run id to tag notifications with"
// @Param body body PlayersRequest true "Scraped players"
// @Success 200 {object} streamfinder.Artifact
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /players [post]
func (h *Handler) ProcessPlayers(w http.ResponseWriter, r *http.Request) {
	r = runContext(r)

	var req PlayersRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		_ = h.coord.ExtractionFailed(r.Context(), "Invalid player data: "+err.Error())
		respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	art, err := h.coord.ProcessPlayers(r.Context(), req.Players)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, art)
}

// ExtractionFailed forwards a scrape failure and clears the pending context.
// @Summary Report extraction failure
// @Description Emits an "Extraction Error" notification and clears any pending base config.
// @Tags workflow
// @Accept json
// @Produce json
// @Param body body ExtractionFailedRequest true "Failure reason"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /extraction-failed [post]
func (h *Handler) ExtractionFailed(w http.ResponseWriter, r *http.Request) {
	r = runContext(r)

	var req ExtractionFailedRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if err := h.coord.ExtractionFailed(r.Context(), req.Error); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, StatusResponse{Status: "Extraction error forwarded"})
}

// Generate runs the full workflow for a roster page with the saved base config.
// @Summary Generate config from a roster page
// @Description Checks the page URL, parks the saved base config, scrapes the Six Picks table and returns the generated config file.
// @Tags workflow
// @Accept json
// @Produce json
// @Param X-Run-ID header string false "Run id to tag notifications with"
// @Param body body GenerateRequest true "Roster page"
// @Success 200 {object} streamfinder.Artifact
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r = runContext(r)

	var req GenerateRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	saved, err := h.saved.Load(r.Context())
	if err != nil {
		if errors.Is(err, baseconfig.ErrNotSaved) {
			h.broker.Notify(notifications.Error(notifications.RunIDFrom(r.Context()),
				"Error: No base config saved. Please upload and save one first."))
			respond.WriteError(w, http.StatusConflict, "NO_BASE_CONFIG", "No base config saved. Please upload and save one first.")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	art, err := h.coord.GenerateFromPage(r.Context(), req.URL, saved.Content)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, art)
}

// writeWorkflowError maps coordinator and generator errors to responses.
func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrMissingContext):
		respond.WriteError(w, http.StatusConflict, "MISSING_CONTEXT", "Base config context missing")
	case errors.Is(err, roster.ErrPageNotAllowed):
		respond.WriteError(w, http.StatusBadRequest, "PAGE_NOT_ALLOWED", err.Error())
	case errors.Is(err, session.ErrInvalidInput):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INVALID_BASE_CONFIG", err.Error())
	case errors.Is(err, roster.ErrTableNotFound), errors.Is(err, roster.ErrNoPlayers):
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", roster.ExtractionFailedReason, err.Error())
	case errors.Is(err, workflow.ErrExtractionFailed):
		respond.WriteError(w, http.StatusBadGateway, "FETCH_FAILED", err.Error())
	case errors.Is(err, streamfinder.ErrEmptyInput):
		respond.WriteError(w, http.StatusUnprocessableEntity, "EMPTY_INPUT", err.Error())
	case errors.Is(err, streamfinder.ErrInvalidBaseConfig):
		respond.WriteError(w, http.StatusUnprocessableEntity, "INVALID_BASE_CONFIG", err.Error())
	case errors.Is(err, streamfinder.ErrNoPlayersResolved):
		respond.WriteError(w, http.StatusUnprocessableEntity, "NO_PLAYERS_RESOLVED", err.Error())
	default:
		respond.WriteError(w, http.StatusInternalServerError, "GENERATION_FAILED", err.Error())
	}
}
