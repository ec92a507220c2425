// Package mlb provides the HTTP client for the MLB Stats API people search.
//
// The search endpoint is keyed by display name and returns every matching
// person. The first match wins; there is no disambiguation between players
// who share a name.
package mlb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/alex-monroe/six-picks-stream-finder/internal/provider"
)

const maxBodyBytes = 4 << 20

// Client is the HTTP client for the MLB people search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an MLB Stats API client. timeout bounds a single request
// at the transport level; zero means no timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// LookupError is a per-player network or service failure.
type LookupError struct {
	Name       string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API request failed for %s with status %d", e.Name, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch ID for %s: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// searchResponse is the subset of /people/search the lookup needs.
type searchResponse struct {
	People []struct {
		ID       interface{} `json:"id"`
		FullName string      `json:"fullName"`
	} `json:"people"`
}

// Lookup returns the identifier of the first person matching name,
// provider.ErrNotFound when the search matched nobody, or a *LookupError.
func (c *Client) Lookup(ctx context.Context, name string) (string, error) {
	u := c.baseURL + "/people/search?" + url.Values{"names": {name}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &LookupError{Name: name, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &LookupError{Name: name, Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &LookupError{
			Name:       name,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("people search returned %d", resp.StatusCode),
		}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	var result searchResponse
	if err := dec.Decode(&result); err != nil {
		return "", &LookupError{Name: name, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(result.People) == 0 {
		c.logger.Warn("Player ID not found", "player", name)
		return "", provider.ErrNotFound
	}

	id, ok := provider.IdentifierString(result.People[0].ID)
	if !ok {
		return "", &LookupError{Name: name, Err: errors.New("first match has no usable id")}
	}
	c.logger.Info("Found player ID", "player", name, "id", id, "matches", len(result.People))
	return id, nil
}

// Resolve implements provider.Resolver.
func (c *Client) Resolve(ctx context.Context, name string) provider.Resolution {
	return provider.ResolveFrom(c.Lookup(ctx, name))
}
