// Package search filters a record store by a free-text query and prepares
// the matches for presentation. The Engine is stateless: it holds no query
// state between calls and is safe for concurrent use.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/imageload"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/render"
	"github.com/Aman-CERP/physref/internal/store"
	"github.com/Aman-CERP/physref/internal/telemetry"
)

// DefaultImageConcurrency bounds parallel image fetches per search.
const DefaultImageConcurrency = 4

// ImageLoader resolves an image URL. It must not fail; problems are
// reported through Image.Warning.
type ImageLoader interface {
	Load(ctx context.Context, url string, width int) imageload.Image
}

// Engine runs searches over stores.
type Engine struct {
	images      ImageLoader
	imageWidth  int
	concurrency int
	metrics     *telemetry.QueryMetrics
	logger      *slog.Logger
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithImageLoader enables image resolution for domains with an image field.
// Without a loader, image URLs are presented as plain fields.
func WithImageLoader(l ImageLoader, width int) EngineOption {
	return func(e *Engine) {
		e.images = l
		e.imageWidth = width
	}
}

// WithImageConcurrency bounds how many images of one result are fetched at
// once.
func WithImageConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithMetrics records every search in m.
func WithMetrics(m *telemetry.QueryMetrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		concurrency: DefaultImageConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search normalizes rawQuery, scans s in source order and renders every
// matching record. Images of all matches are fetched concurrently and each
// is bounded by the loader's own timeout; their failures end up in
// Result.Warnings. Result order always follows the store.
func (e *Engine) Search(ctx context.Context, s *store.Store, rawQuery string) *Result {
	return e.search(ctx, s, rawQuery, 0)
}

// SearchLimit is Search for callers that show only the first n matches.
// The result still holds every match, but images are fetched for the first
// n items only. n <= 0 resolves all of them.
func (e *Engine) SearchLimit(ctx context.Context, s *store.Store, rawQuery string, n int) *Result {
	return e.search(ctx, s, rawQuery, n)
}

func (e *Engine) search(ctx context.Context, s *store.Store, rawQuery string, imageLimit int) *Result {
	start := time.Now()
	query := Normalize(rawQuery)
	schema := s.Schema()

	e.logger.Debug("search_started",
		slog.String("domain", s.Domain().String()),
		slog.String("query", query))

	items := make([]Item, 0)
	var imageURLs []string
	for i, rec := range s.All() {
		if !Matches(rec, schema.Search, query) {
			continue
		}
		item, url := e.present(i, rec, schema)
		items = append(items, item)
		imageURLs = append(imageURLs, url)
	}

	result := &Result{
		Domain: s.Domain(),
		Query:  query,
		Count:  len(items),
		Items:  items,
	}
	if imageLimit > 0 && imageLimit < len(imageURLs) {
		imageURLs = imageURLs[:imageLimit]
	}
	failures := e.attachImages(ctx, result, imageURLs)

	latency := time.Since(start)
	e.logger.Info("search_complete",
		slog.String("domain", s.Domain().String()),
		slog.String("query", query),
		slog.Int("results", result.Count),
		slog.Int("image_failures", failures),
		slog.Duration("latency", latency))

	if e.metrics != nil {
		e.metrics.Record(telemetry.SearchEvent{
			Domain:        s.Domain().String(),
			Query:         query,
			ResultCount:   result.Count,
			ImageFailures: failures,
			Latency:       latency,
			Timestamp:     start,
		})
	}
	return result
}

// present renders one record. It returns the image URL to resolve, or ""
// when the record has none or no loader is configured.
func (e *Engine) present(index int, rec record.Record, schema record.Schema) (Item, string) {
	item := Item{Index: index, Fields: make([]RenderedField, 0)}
	var imageURL string

	for _, f := range rec.Fields() {
		if f.Name == schema.Title {
			item.Title = f.Text
			item.TitleSegments = renderField(schema, f)
			continue
		}
		if schema.IsImage(f.Name) && e.images != nil {
			imageURL = f.Text
			continue
		}
		if record.IsAbsent(f.Text) {
			continue
		}
		item.Fields = append(item.Fields, RenderedField{
			Name:     f.Name,
			Segments: renderField(schema, f),
			Detail:   schema.IsDetail(f.Name),
		})
	}

	if schema.Image != "" && e.images != nil {
		// Absent URLs still go through the loader so the placeholder shows.
		if imageURL == "" {
			imageURL = record.Sentinel
		}
		return item, imageURL
	}
	return item, ""
}

func renderField(schema record.Schema, f record.Field) []render.Segment {
	if record.IsAbsent(f.Text) {
		return nil
	}
	if schema.IsMath(f.Name) {
		return render.Render(f.Text)
	}
	return []render.Segment{{Kind: render.Plain, Text: f.Text}}
}

// attachImages resolves image URLs concurrently. Fetches are independent:
// one failing or slow image never affects the others. Returns the number of
// placeholders used.
func (e *Engine) attachImages(ctx context.Context, result *Result, urls []string) int {
	if e.images == nil {
		return 0
	}

	images := make([]*imageload.Image, len(urls))
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, url := range urls {
		if url == "" {
			continue
		}
		g.Go(func() error {
			img := e.images.Load(ctx, url, e.imageWidth)
			images[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for i, img := range images {
		if img == nil {
			continue
		}
		if img.Warning != nil {
			failures++
			img.Warning = amerrors.WithSubject(img.Warning, result.Items[i].Title)
			result.Warnings = append(result.Warnings, img.Warning)
		}
		result.Items[i].Image = img
	}
	return failures
}

// Hint returns the line shown under a result: a browsing prompt for the
// empty query, otherwise the match count.
func (e *Engine) Hint(result *Result) string {
	noun := record.SchemaFor(result.Domain).Noun
	if result.Query == "" {
		return fmt.Sprintf("Enter a search term to filter, or browse all %s above!", noun)
	}
	return fmt.Sprintf("Found %d matching %s.", result.Count, noun)
}
