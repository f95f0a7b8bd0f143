// Package culler checks bookmark URLs for dead links.
package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/bmdeck/internal/search"
)

// Status represents the health of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	search.Entry
	Status     Status
	StatusCode int    // 0 if the connection failed
	Reason     string // readable cause for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options tunes a Checker.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains treats 404s on these hosts as possibly private.
	ExcludeDomains []string
	Logger         *zap.Logger
}

// Checker checks URLs with a bounded worker pool.
type Checker struct {
	client      *http.Client
	concurrency int
	exclude     map[string]bool
	logger      *zap.Logger
}

// New creates a Checker.
func New(opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	exclude := make(map[string]bool, len(opts.ExcludeDomains))
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	return &Checker{
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		concurrency: opts.Concurrency,
		exclude:     exclude,
		logger:      opts.Logger,
	}
}

// Check checks every entry and returns results in input order. At most
// Concurrency requests are in flight at once.
func (c *Checker) Check(ctx context.Context, entries []search.Entry, onProgress ProgressFunc) []Result {
	if len(entries) == 0 {
		return nil
	}

	results := make([]Result, len(entries))
	var (
		mu   sync.Mutex
		done int
	)
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			results[i] = c.checkOne(ctx, e)
			if onProgress != nil {
				mu.Lock()
				done++
				onProgress(done, len(entries))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	c.logger.Debug("link check finished", zap.Int("checked", len(entries)))
	return results
}

func (c *Checker) checkOne(ctx context.Context, e search.Entry) Result {
	resp, err := c.probe(ctx, e.Bookmark.URL)
	if err != nil {
		c.logger.Debug("url unreachable", zap.String("url", e.Bookmark.URL), zap.Error(err))
		return Result{Entry: e, Status: Unreachable, Reason: normalizeError(err.Error())}
	}
	defer resp.Body.Close()

	r := Result{Entry: e, StatusCode: resp.StatusCode}
	switch code := resp.StatusCode; {
	case code >= 200 && code < 400:
		r.Status = Healthy
	case code == http.StatusNotFound, code == http.StatusGone:
		r.Status = Dead
		if c.isExcluded(e.Bookmark.URL) {
			r.Status, r.Reason = Unreachable, "Possibly private (auth required)"
		}
	default:
		// 403 and 5xx may be temporary or need auth.
		r.Status, r.Reason = Unreachable, http.StatusText(code)
	}
	return r
}

// probe tries HEAD and falls back to GET for servers that reject HEAD.
func (c *Checker) probe(ctx context.Context, rawURL string) (*http.Response, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL)
	if err == nil {
		return resp, nil
	}
	return c.do(ctx, http.MethodGet, rawURL)
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// isExcluded matches the URL's host and its parent domains.
func (c *Checker) isExcluded(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for domain := range c.exclude {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError turns verbose transport errors into short categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "Unsupported URL"
	default:
		return errStr
	}
}

// Summary counts results by status.
func Summary(results []Result) map[Status]int {
	out := map[Status]int{}
	for _, r := range results {
		out[r.Status]++
	}
	return out
}
