package roster

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
)

const defaultUserAgent = "six-picks-stream-finder/1.0"

// Fetcher downloads a Six Picks page and extracts its picks.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFetcher creates a fetcher. An empty userAgent uses the default.
func NewFetcher(userAgent string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{userAgent: userAgent, timeout: timeout, logger: logger}
}

// Fetch visits pageURL once, staying on its host, and extracts the picks
// table from the response.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]streamfinder.PlayerPick, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid page url %q", pageURL)
	}

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowedDomains(u.Hostname()),
		colly.MaxDepth(1),
		colly.StdlibContext(ctx),
	)
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	var (
		players []streamfinder.PlayerPick
		extErr  = ErrTableNotFound
	)
	c.OnHTML("html", func(h *colly.HTMLElement) {
		players, extErr = extractFrom(h.DOM)
	})

	c.OnRequest(func(r *colly.Request) {
		f.logger.Debug("Fetching roster page", "url", r.URL.String())
	})

	c.OnError(func(r *colly.Response, err error) {
		f.logger.Warn("Roster page request failed",
			"url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})

	if err := c.Visit(u.String()); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	c.Wait()

	if extErr != nil {
		return nil, extErr
	}
	f.logger.Info("Extracted roster", "url", pageURL, "players", len(players))
	return players, nil
}
