// Package fetch retrieves a single web page for extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultUserAgent identifies pagescan to the sites it fetches.
	DefaultUserAgent = "ParserBot/1.0"

	// DefaultMaxBodySize caps how many body bytes are kept.
	DefaultMaxBodySize int64 = 2_000_000

	// DefaultTimeout bounds a whole fetch, redirects included.
	DefaultTimeout = 15 * time.Second

	// maxRedirects matches net/http's default policy.
	maxRedirects = 10
)

// Response is a fetched page.
type Response struct {
	// URL is the final URL after redirects.
	URL string
	// StatusCode is the status of the final response. Non-2xx responses are
	// returned, not treated as errors.
	StatusCode int
	// ContentType is the raw Content-Type header.
	ContentType string
	// Headers holds one comma-joined value per header name.
	Headers map[string]string
	// Body is at most MaxBodySize bytes of the response body.
	Body []byte
}

// Fetcher performs single-page GET requests.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	timeout     time.Duration
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the client used for requests, for example one that
// dials through Tor.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets how many body bytes are kept.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher with defaults for everything not set by opts.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{CheckRedirect: limitRedirects}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// Fetch GETs rawURL, following redirects.
//
// It fails with ErrInvalidURL for anything but http:// and https:// URLs,
// ErrRequest when the request fails or times out, and ErrNotHTML when the
// response is not text/html.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, ErrInvalidURL
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	f.logger.Debug("page fetched",
		"url", final,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return &Response{
		URL:         final,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Headers:     flattenHeaders(resp.Header),
		Body:        body,
	}, nil
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[name] = strings.Join(values, ", ")
	}
	return out
}
