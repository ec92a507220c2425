// Package handler provides HTTP handlers for all API endpoints.
// Handlers translate requests into workflow calls and map the workflow's
// sentinel errors onto status codes; there is no other service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api/respond"
	"github.com/alex-monroe/six-picks-stream-finder/internal/baseconfig"
	"github.com/alex-monroe/six-picks-stream-finder/internal/cache"
	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/provider"
	"github.com/alex-monroe/six-picks-stream-finder/internal/workflow"
)

const maxBodyBytes = 1 << 20

// Pinger reports database reachability.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators a Handler needs. DB may be nil when the server
// runs on the in-memory store.
type Deps struct {
	Coordinator *workflow.Coordinator
	Saved       *baseconfig.Repository
	Resolver    provider.Resolver
	Broker      *notifications.Broker
	Cache       *cache.Cache
	DB          Pinger
	Config      *config.Config
	Logger      *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	coord    *workflow.Coordinator
	saved    *baseconfig.Repository
	resolver provider.Resolver
	broker   *notifications.Broker
	cache    *cache.Cache
	db       Pinger
	cfg      *config.Config
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := d.Cache
	if c == nil {
		c = cache.New(false)
	}
	b := d.Broker
	if b == nil {
		b = notifications.NewBroker(0, logger)
	}
	return &Handler{
		coord:    d.Coordinator,
		saved:    d.Saved,
		resolver: d.Resolver,
		broker:   b,
		cache:    c,
		db:       d.DB,
		cfg:      d.Config,
		validate: newValidator(),
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and the store backend in use.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	backend := "memory"
	if h.db != nil {
		backend = "postgres"
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Six Picks Stream Finder API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"store":   backend,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status, live event stream subscribers and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"event_subscribers": h.broker.Subscribers(),
		"events_dropped":    h.broker.Dropped(),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports "not_configured" when the in-memory store is used.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a size-limited JSON body into v and runs struct
// validation on it.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := h.validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError flattens validator errors into one readable message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "url":
			msgs = append(msgs, field+" must be a URL")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
