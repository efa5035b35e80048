package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/physref/data"
	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/imageload"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/render"
	"github.com/Aman-CERP/physref/internal/search"
	"github.com/Aman-CERP/physref/internal/store"
)

func plainField(name, text string, detail bool) search.RenderedField {
	return search.RenderedField{
		Name:     name,
		Segments: []render.Segment{{Kind: render.Plain, Text: text}},
		Detail:   detail,
	}
}

func speedResult() *search.Result {
	item := search.Item{
		Index:         1,
		Title:         "Average Speed",
		TitleSegments: render.Render("Average Speed"),
		Fields: []search.RenderedField{
			{Name: "Formula", Segments: render.Render("$v = d/t$")},
			plainField("Unit", "m/s", true),
		},
	}
	return &search.Result{
		Domain: record.DomainFormulas,
		Query:  "speed",
		Count:  1,
		Items:  []search.Item{item},
	}
}

func scientistResult() *search.Result {
	failed := amerrors.ImageFetchError("https://example.invalid/curie.jpg", errors.New("status 404"))
	return &search.Result{
		Domain: record.DomainScientists,
		Query:  "curie",
		Count:  1,
		Items: []search.Item{{
			Title:         "Marie Curie",
			TitleSegments: render.Render("Marie Curie"),
			Fields:        []search.RenderedField{plainField("Year", "1867", false)},
			Image: &imageload.Image{
				URL:         imageload.DefaultPlaceholderURL,
				Width:       150,
				Placeholder: true,
				Warning:     failed,
			},
		}},
		Warnings: []error{failed},
	}
}

func TestLimit(t *testing.T) {
	items := make([]search.Item, 5)
	res := &search.Result{Domain: record.DomainFormulas, Count: 5, Items: items}

	tests := []struct {
		name      string
		n         int
		wantCount int
	}{
		{name: "no limit", n: 0, wantCount: 5},
		{name: "negative means no limit", n: -1, wantCount: 5},
		{name: "limit above count", n: 10, wantCount: 5},
		{name: "limit truncates", n: 2, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Limit(res, tt.n)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Len(t, got.Items, tt.wantCount)
		})
	}

	// Then: the original result is untouched
	assert.Equal(t, 5, res.Count)
	assert.Len(t, res.Items, 5)
}

// downLoader fails every image and counts the attempts.
type downLoader struct {
	loads atomic.Int32
}

func (l *downLoader) Load(_ context.Context, url string, width int) imageload.Image {
	l.loads.Add(1)
	return imageload.Image{
		URL:         imageload.DefaultPlaceholderURL,
		Width:       width,
		Placeholder: true,
		Warning:     amerrors.ImageFetchError(url, errors.New("down")),
	}
}

func TestLimit_KeepsOnlyWarningsOfShownItems(t *testing.T) {
	// Given: every scientist portrait fails to load
	s, err := store.LoadFile(data.FS, "scientists.csv", record.DomainScientists)
	require.NoError(t, err)
	loader := &downLoader{}
	engine := search.NewEngine(search.WithImageLoader(loader, 150))

	// When: searching everything but showing a single result
	full := engine.SearchLimit(context.Background(), s, "", 1)
	shown := Limit(full, 1)

	// Then: only the shown portrait was fetched and reported
	assert.Equal(t, s.Len(), full.Count)
	assert.EqualValues(t, 1, loader.loads.Load())
	require.Len(t, shown.Items, 1)
	assert.Equal(t, "Isaac Newton", shown.Items[0].Title)
	require.Len(t, shown.Warnings, 1)
	assert.Contains(t, amerrors.FormatNotice(shown.Warnings[0]), "Isaac Newton")
	for _, it := range full.Items[1:] {
		assert.Nil(t, it.Image, it.Title)
	}
}

func TestLimit_RebuildsWarningsFromKeptItems(t *testing.T) {
	// Given: a fully resolved result where the first and third images failed
	warn := func(url string) error { return amerrors.ImageFetchError(url, errors.New("down")) }
	first, third := warn("http://img/1"), warn("http://img/3")
	res := &search.Result{
		Domain: record.DomainScientists,
		Count:  3,
		Items: []search.Item{
			{Title: "one", Image: &imageload.Image{Placeholder: true, Warning: first}},
			{Title: "two", Image: &imageload.Image{URL: "http://img/2"}},
			{Title: "three", Image: &imageload.Image{Placeholder: true, Warning: third}},
		},
		Warnings: []error{first, third},
	}

	// When: keeping the first two
	got := Limit(res, 2)

	// Then: the dropped item's warning is gone, the original keeps both
	assert.Equal(t, []error{first}, got.Warnings)
	assert.Len(t, res.Warnings, 2)
}

func TestLimit_Nil(t *testing.T) {
	assert.Nil(t, Limit(nil, 3))
}

func TestNewResultView_JSON(t *testing.T) {
	// Given: a result with a failed image
	res := scientistResult()

	// When: encoding its view
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewResultView(res, 3, "Found 1 matching scientists.")))

	// Then: the document carries counts, hint and coded warnings
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "scientists", doc["domain"])
	assert.Equal(t, "curie", doc["query"])
	assert.EqualValues(t, 1, doc["count"])
	assert.EqualValues(t, 3, doc["total"])
	assert.Equal(t, "Found 1 matching scientists.", doc["hint"])

	warnings, ok := doc["warnings"].([]any)
	require.True(t, ok)
	require.Len(t, warnings, 1)
	assert.Equal(t, amerrors.ErrCodeImageFetch, warnings[0].(map[string]any)["code"])

	items := doc["items"].([]any)
	image := items[0].(map[string]any)["image"].(map[string]any)
	assert.Equal(t, true, image["placeholder"])
}

func TestNewResultView_EmptyItemsEncodeAsArray(t *testing.T) {
	res := &search.Result{Domain: record.DomainConstants}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewResultView(res, 0, "")))

	assert.Contains(t, buf.String(), `"items": []`)
	assert.NotContains(t, buf.String(), "warnings")
}

func TestMarkdown_Formula(t *testing.T) {
	tests := []struct {
		name       string
		details    bool
		contains   []string
		notContain []string
	}{
		{
			name:    "summary view hides detail fields",
			details: false,
			contains: []string{
				`## Formulas matching "speed"`,
				"### Average Speed",
				"- **Formula:** $$v = d/t$$",
			},
			notContain: []string{"More Details", "m/s"},
		},
		{
			name:    "details view adds the expanded section",
			details: true,
			contains: []string{
				"**More Details**",
				"- **Unit:** m/s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Markdown(speedResult(), MarkdownOptions{Details: tt.details})
			for _, want := range tt.contains {
				assert.Contains(t, md, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, md, unwanted)
			}
		})
	}
}

func TestMarkdown_HintAndTruncation(t *testing.T) {
	md := Markdown(speedResult(), MarkdownOptions{Hint: "Found 1 matching formulas.", Total: 4})

	assert.Contains(t, md, "Found 1 matching formulas.")
	assert.Contains(t, md, "_Showing 1 of 4 results._")
	assert.True(t, strings.HasSuffix(md, "\n"))
	assert.False(t, strings.HasSuffix(md, "\n\n"))
}

func TestMarkdown_PlaceholderImage(t *testing.T) {
	// Given: a scientist whose portrait could not be fetched
	md := Markdown(scientistResult(), MarkdownOptions{})

	// Then: the placeholder is shown and the warning is listed
	assert.Contains(t, md, "_Image unavailable, showing placeholder._")
	assert.Contains(t, md, "![Marie Curie]("+imageload.DefaultPlaceholderURL+")")
	assert.Contains(t, md, "> ⚠️ ["+amerrors.ErrCodeImageFetch+"]")
	assert.Contains(t, md, "status 404")
}

func TestMarkdown_EmptyQueryHeading(t *testing.T) {
	res := &search.Result{Domain: record.DomainDimensions}

	md := Markdown(res, MarkdownOptions{})

	assert.Equal(t, "## Dimensions\n", md)
}
