package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultMaxBytes  = 5 << 20
)

var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// HTTPClient abstracts the transport so tests can swap it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Page is the raw markup returned for a target URL.
type Page struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        []byte
}

// FetchError collapses every retrieval failure (invalid URL, DNS, timeout, reset,
// non-2xx status) into one kind that carries the offending URL and cause.
type FetchError struct {
	URL        string
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Config holds the tunables of a Fetcher.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Fetcher performs a single bounded GET per call. It keeps no state between calls.
type Fetcher struct {
	client    HTTPClient
	userAgent string
	maxBytes  int64
}

// Option configures optional dependencies.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// New builds a Fetcher, applying defaults for zero config values.
func New(cfg Config, opts ...Option) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 4,
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NormalizeURL turns user input into an absolute http(s) URL, defaulting the scheme to https.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("url is empty")
	}
	if !schemePrefix.MatchString(trimmed) {
		trimmed = "https://" + strings.TrimPrefix(trimmed, "//")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: parse url")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", eris.New("fetcher: url has no host")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), nil
}

// Fetch retrieves raw markup for target. Every failure is returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	normalized, err := NormalizeURL(target)
	if err != nil {
		return nil, &FetchError{URL: strings.TrimSpace(target), Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, &FetchError{URL: normalized, Cause: eris.Wrap(err, "fetcher: build request")}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: normalized, Timeout: isTimeout(err), Cause: eris.Wrap(err, "fetcher: request")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{
			URL:        normalized,
			StatusCode: resp.StatusCode,
			Cause:      eris.Errorf("fetcher: unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &FetchError{URL: normalized, Timeout: isTimeout(err), Cause: eris.Wrap(err, "fetcher: read body")}
	}

	final := normalized
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &Page{
		URL:         normalized,
		FinalURL:    final,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
