package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"

	"github.com/reactorwatch/psrscan/internal/model"
)

// Fetcher retrieves daily report pages, consulting the cache first and
// falling back to the network with bounded retries.
//
// Fetcher is not safe for concurrent use; the pipeline is strictly
// sequential and a single Fetcher serves the whole run.
type Fetcher struct {
	// client is the HTTP client used for network fetches.
	client *http.Client

	// baseURL is the archive URL prefix for the daily pages.
	baseURL string

	// cache is the on-disk HTML cache. Nil disables caching.
	cache *Cache

	// retries is the maximum number of attempts per network fetch.
	retries int

	// backoff is the base of the linear backoff between attempts:
	// the wait before attempt n is backoff * (n-1).
	backoff time.Duration

	// delay is the politeness delay between network fetches.
	// Cache hits are not delayed.
	delay time.Duration

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the response body size to read.
	maxBodySize int64

	// robots is the robots.txt group for our user agent, if one was
	// loaded. Nil means no restrictions apply.
	robots *robotstxt.Group

	// logger for structured logging.
	logger *slog.Logger

	// fetchedOnce tracks whether a network fetch has happened yet,
	// so the politeness delay is skipped before the first request.
	fetchedOnce bool
}

// Result is the outcome of a successful fetch.
type Result struct {
	// Body is the page HTML decoded to UTF-8.
	Body string

	// FromCache indicates the body came from the on-disk cache.
	FromCache bool

	// StatusCode is the HTTP status of the network response.
	// Zero for cache hits.
	StatusCode int

	// Attempts is the number of network requests issued.
	// Zero for cache hits.
	Attempts int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache sets the on-disk HTML cache. Without this option every fetch
// goes to the network and nothing is persisted.
func WithCache(c *Cache) Option {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithRetries sets the maximum number of attempts per network fetch.
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.retries = n
		}
	}
}

// WithBackoff sets the base of the linear retry backoff.
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoff = d
	}
}

// WithDelay sets the politeness delay between network fetches.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithRobots sets the robots.txt group consulted before network fetches.
func WithRobots(g *robotstxt.Group) Option {
	return func(f *Fetcher) {
		f.robots = g
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher for the given archive base URL.
// The client should be built with NewHTTPClient so a timeout is in place.
func NewFetcher(client *http.Client, baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		retries:     5,
		backoff:     1250 * time.Millisecond,
		userAgent:   "psrscan/1.0",
		maxBodySize: 5 * 1024 * 1024,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// URLFor returns the report page URL for a date.
// The 1999 archive names each day's page YYYYMMDDps.html.
func (f *Fetcher) URLFor(date time.Time) string {
	return f.baseURL + "/" + model.DateKey(date) + "ps.html"
}

// Fetch returns the HTML for a date's report page.
// The cache is consulted first; on a miss the page is fetched with retries
// and stored. All failures are reported as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, date time.Time) (*Result, error) {
	pageURL := f.URLFor(date)

	if f.cache != nil {
		body, ok, err := f.cache.Get(date)
		if err != nil {
			return nil, &FetchError{Date: date, URL: pageURL, Err: err}
		}
		if ok {
			f.logger.Debug("cache hit", "date", date.Format("2006-01-02"))
			return &Result{Body: body, FromCache: true}, nil
		}
	}

	if f.robots != nil && !f.robots.Test(urlPath(pageURL)) {
		return nil, &FetchError{Date: date, URL: pageURL, Err: ErrRobotsDisallowed}
	}

	res, err := f.fetchNetwork(ctx, date, pageURL)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Put(date, res.Body); err != nil {
			// A cache write failure is not worth failing the day over;
			// the record data is already in hand.
			f.logger.Warn("failed to cache page", "date", date.Format("2006-01-02"), "error", err)
		}
	}

	return res, nil
}

// fetchNetwork performs the network fetch with linear-backoff retries.
// Transient failures (connection errors and 5xx responses) are retried;
// any other non-200 status fails immediately.
func (f *Fetcher) fetchNetwork(ctx context.Context, date time.Time, pageURL string) (*Result, error) {
	if err := f.politeWait(ctx); err != nil {
		return nil, &FetchError{Date: date, URL: pageURL, Err: err}
	}

	var lastErr error
	var lastStatus int

	for attempt := 1; attempt <= f.retries; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, f.backoff*time.Duration(attempt-1)); err != nil {
				return nil, &FetchError{Date: date, URL: pageURL, Attempts: attempt - 1, Err: err}
			}
		}

		body, status, err := f.doRequest(ctx, pageURL)
		switch {
		case err == nil && status == http.StatusOK:
			f.logger.Debug("fetched page",
				"date", date.Format("2006-01-02"),
				"attempts", attempt,
			)
			return &Result{Body: body, StatusCode: status, Attempts: attempt}, nil

		case err == nil && status >= 500:
			// Server-side trouble is worth retrying.
			lastErr = fmt.Errorf("HTTP %d", status)
			lastStatus = status

		case err == nil:
			// 3xx leaks through only if the redirect cap was hit; 4xx
			// means the page does not exist and never will. Fail fast.
			return nil, &FetchError{
				Date: date, URL: pageURL, Attempts: attempt, StatusCode: status,
				Err: fmt.Errorf("HTTP %d", status),
			}

		case ctx.Err() != nil:
			return nil, &FetchError{Date: date, URL: pageURL, Attempts: attempt, Err: ctx.Err()}

		default:
			lastErr = err
			lastStatus = 0
		}

		f.logger.Debug("fetch attempt failed",
			"date", date.Format("2006-01-02"),
			"attempt", attempt,
			"error", lastErr,
		)
	}

	return nil, &FetchError{
		Date: date, URL: pageURL, Attempts: f.retries, StatusCode: lastStatus, Err: lastErr,
	}
}

// doRequest issues a single GET and returns the decoded body and status.
func (f *Fetcher) doRequest(ctx context.Context, pageURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused, then report.
		_, _ = io.CopyN(io.Discard, resp.Body, 512) //nolint:errcheck // Best effort drain
		return "", resp.StatusCode, nil
	}

	// Decode to UTF-8. Pages from this era are frequently windows-1252
	// with no charset declaration; the sniffer handles both cases.
	limited := io.LimitReader(resp.Body, f.maxBodySize)
	reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", resp.StatusCode, err
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", resp.StatusCode, err
	}

	return string(body), resp.StatusCode, nil
}

// politeWait applies the between-fetch delay, except before the first
// network fetch of the run.
func (f *Fetcher) politeWait(ctx context.Context) error {
	if !f.fetchedOnce {
		f.fetchedOnce = true
		return nil
	}
	if f.delay <= 0 {
		return nil
	}
	return sleepCtx(ctx, f.delay)
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
