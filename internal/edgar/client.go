// Package edgar is a small SEC EDGAR client: company submissions, 13F
// information tables, the current Form-4 Atom feed and the CIK to ticker map.
//
// No API key required. Must include a User-Agent header per SEC policy.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
// Rate limit: 10 requests/second per user-agent.
package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/infra"
)

// ErrNoFiling is returned when a filer has no filing of the requested form.
var ErrNoFiling = errors.New("no matching filing")

// Client talks to EDGAR. It is safe for concurrent use.
type Client struct {
	cfg     config.SECConfig
	http    *http.Client
	limiter *infra.RateLimiter
	tickers *infra.Cache[TickerIndex]
	parser  *gofeed.Parser
}

// New creates a client for the configured endpoints.
func New(cfg config.SECConfig) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: infra.PerSecond(cfg.RateLimit),
		tickers: infra.NewCache[TickerIndex](cfg.TickerCacheTTL),
		parser:  gofeed.NewParser(),
	}
}

func (c *Client) headers(accept string) map[string]string {
	return map[string]string{
		"User-Agent": c.cfg.UserAgent,
		"Accept":     accept,
	}
}

// get waits for a rate-limit token and performs the request.
func (c *Client) get(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := infra.DoGet(ctx, c.http, url, c.headers(accept))
	return body, err
}

// getJSON performs a GET request and decodes the JSON body into dest.
func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return fmt.Errorf("parse SEC JSON from %s: %w", url, err)
	}
	return nil
}

// getRaw performs a GET request and returns the body bytes.
func (c *Client) getRaw(ctx context.Context, url, accept string) ([]byte, error) {
	body, err := c.get(ctx, url, accept)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// IsNotFound reports whether err is an HTTP 404 from EDGAR.
func IsNotFound(err error) bool {
	var httpErr *infra.ErrHTTP
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// flexInt decodes integers that EDGAR sometimes quotes and sometimes writes
// with thousands separators.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}
