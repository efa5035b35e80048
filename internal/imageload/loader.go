// Package imageload fetches remote images with a bounded wait and falls back
// to a placeholder on any failure. Load never returns an error: failures are
// reported as a warning carried by the returned Image.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
)

// Defaults.
const (
	DefaultTimeout        = 5 * time.Second
	DefaultPlaceholderURL = "https://via.placeholder.com/150"
	DefaultWidth          = 150
	DefaultMaxBytes       = 5 << 20
	DefaultCacheSize      = 256
)

// Image is the outcome of a load: either the fetched bytes or a placeholder.
type Image struct {
	URL         string `json:"url"`
	Bytes       []byte `json:"-"`
	ContentType string `json:"content_type,omitempty"`
	Width       int    `json:"width"`
	Placeholder bool   `json:"placeholder"`
	// Warning explains why the placeholder is shown; nil on success.
	Warning error `json:"-"`
}

// Config controls fetching.
type Config struct {
	Timeout        time.Duration
	PlaceholderURL string
	Width          int
	MaxBytes       int64
	CacheSize      int
}

// DefaultConfig returns the default loader configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        DefaultTimeout,
		PlaceholderURL: DefaultPlaceholderURL,
		Width:          DefaultWidth,
		MaxBytes:       DefaultMaxBytes,
		CacheSize:      DefaultCacheSize,
	}
}

// outcome is what the cache remembers per source URL.
type outcome struct {
	bytes       []byte
	contentType string
	err         error
}

// Loader fetches images. Safe for concurrent use.
type Loader struct {
	client *http.Client
	config Config
	cache  *lru.Cache[string, outcome]
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader. Zero config values fall back to the defaults; a
// negative CacheSize disables memoization.
func New(cfg Config, opts ...Option) *Loader {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = def.PlaceholderURL
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = def.MaxBytes
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = def.CacheSize
	}

	// The per-request deadline comes from the context; a client-level
	// Timeout would override it.
	l := &Loader{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     10 * time.Second,
			},
		},
		config: cfg,
		logger: slog.Default(),
	}
	if cfg.CacheSize > 0 {
		l.cache, _ = lru.New[string, outcome](cfg.CacheSize)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the effective configuration.
func (l *Loader) Config() Config {
	return l.config
}

// Load fetches the image at rawURL, waiting at most the configured timeout.
// A width of zero or less uses the configured width. Any failure yields the
// placeholder with the same width and a coded ERR_304 warning.
func (l *Loader) Load(ctx context.Context, rawURL string, width int) Image {
	if width <= 0 {
		width = l.config.Width
	}
	rawURL = strings.TrimSpace(rawURL)

	if record.IsAbsent(rawURL) {
		return l.placeholder(rawURL, width, errors.New("no image url"))
	}

	if l.cache != nil {
		if o, ok := l.cache.Get(rawURL); ok {
			return l.finish(rawURL, width, o)
		}
	}

	o := l.fetch(ctx, rawURL)
	if o.err != nil {
		l.logger.Warn("image_fetch_failed",
			slog.String("url", rawURL),
			slog.String("error", o.err.Error()))
	}
	// A load cut short by the caller says nothing about the source.
	if l.cache != nil && ctx.Err() == nil {
		l.cache.Add(rawURL, o)
	}
	return l.finish(rawURL, width, o)
}

func (l *Loader) finish(rawURL string, width int, o outcome) Image {
	if o.err != nil {
		return l.placeholder(rawURL, width, o.err)
	}
	return Image{
		URL:         rawURL,
		Bytes:       o.bytes,
		ContentType: o.contentType,
		Width:       width,
	}
}

func (l *Loader) placeholder(rawURL string, width int, cause error) Image {
	return Image{
		URL:         l.config.PlaceholderURL,
		Width:       width,
		Placeholder: true,
		Warning:     amerrors.ImageFetchError(rawURL, cause),
	}
}

func (l *Loader) fetch(ctx context.Context, rawURL string) outcome {
	u, err := url.Parse(rawURL)
	if err != nil {
		return outcome{err: fmt.Errorf("parse url: %w", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return outcome{err: fmt.Errorf("unsupported url scheme %q", u.Scheme)}
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return outcome{err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return outcome{err: fmt.Errorf("timed out after %s: %w", l.config.Timeout, err)}
		}
		return outcome{err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return outcome{err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.config.MaxBytes+1))
	if err != nil {
		return outcome{err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > l.config.MaxBytes {
		return outcome{err: fmt.Errorf("image larger than %d bytes", l.config.MaxBytes)}
	}

	contentType, ok := imageType(body, resp.Header.Get("Content-Type"))
	if !ok {
		return outcome{err: fmt.Errorf("not an image (%s)", contentType)}
	}
	return outcome{bytes: body, contentType: contentType}
}

// imageType sniffs body. SVG is text to the sniffer, so it is trusted from
// the declared header when the body looks like markup.
func imageType(body []byte, declared string) (string, bool) {
	if len(body) == 0 {
		return "empty body", false
	}
	sniffed := http.DetectContentType(body)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, true
	}
	if strings.HasPrefix(declared, "image/svg+xml") && strings.Contains(string(body[:min(len(body), 512)]), "<svg") {
		return "image/svg+xml", true
	}
	return sniffed, false
}
