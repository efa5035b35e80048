package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
)

func TestSearchCmd_Text(t *testing.T) {
	isolate(t)

	// When: searching formulas for "Speed"
	out, err := execute(t, "search", "formulas", "Speed")

	// Then: the normalized term, the card and the count line are shown
	require.NoError(t, err)
	assert.Contains(t, out, "Current search term: speed")
	assert.Contains(t, out, "Average Speed")
	assert.Contains(t, out, "Formula: $$v = d/t$$")
	assert.Contains(t, out, "Found 1 matching formulas.")
	assert.NotContains(t, out, "More Details")
}

func TestSearchCmd_MultiWordQuery(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "formula", "laws", "of", "motion")

	require.NoError(t, err)
	assert.Contains(t, out, "Newton's Second Law")
	assert.Contains(t, out, "Law of Inertia")
	assert.Contains(t, out, "Found 2 matching formulas.")
}

func TestSearchCmd_Details(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "formulas", "average speed", "--details")

	require.NoError(t, err)
	assert.Contains(t, out, "More Details")
	assert.Contains(t, out, "Chapter Name: Motion in a Straight Line")
}

func TestSearchCmd_EmptyQueryListsAll(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "dimensions")

	require.NoError(t, err)
	assert.NotContains(t, out, "Current search term")
	for _, entity := range []string{"Force", "Work", "Velocity", "Plane angle"} {
		assert.Contains(t, out, entity)
	}
	assert.Contains(t, out, "Enter a search term to filter, or browse all dimensions above!")
}

func TestSearchCmd_Limit(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "formulas", "-n", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Showing 2 of 6 results.")
	assert.NotContains(t, out, "Law of Inertia")
}

func TestSearchCmd_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "constants", "c", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "constants", doc["domain"])
	assert.Equal(t, "c", doc["query"])

	items, ok := doc["items"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, items)
	first := items[0].(map[string]any)
	assert.Equal(t, "Speed of light", first["title"])
}

func TestSearchCmd_JSONNoMatches(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "scientists", "zzzz", "-f", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.EqualValues(t, 0, doc["count"])
	assert.Equal(t, []any{}, doc["items"])
}

func TestSearchCmd_Markdown(t *testing.T) {
	isolate(t)

	out, err := execute(t, "search", "scientists", "newton", "--format", "markdown")

	require.NoError(t, err)
	assert.Contains(t, out, `## Scientists matching "newton"`)
	assert.Contains(t, out, "### Isaac Newton")
	assert.Contains(t, out, "upload.wikimedia.org")
}

func TestSearchCmd_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{name: "unknown domain", args: []string{"search", "chemistry"}, wantCode: amerrors.ErrCodeUnknownDomain},
		{name: "unknown format", args: []string{"search", "formulas", "-f", "xml"}, wantCode: amerrors.ErrCodeInvalidInput},
		{name: "negative limit", args: []string{"search", "formulas", "-n", "-1"}, wantCode: amerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, amerrors.GetCode(err))
		})
	}
}

func TestSearchCmd_RequiresDomain(t *testing.T) {
	isolate(t)

	_, err := execute(t, "search")
	assert.Error(t, err)
}

func TestSearchCmd_MissingTableIsNotice(t *testing.T) {
	// Given: a data dir without any tables
	isolate(t)
	dir := t.TempDir()

	// When: searching
	out, err := execute(t, "--data-dir", dir, "search", "formulas", "speed")

	// Then: the command succeeds with a notice and no results
	require.NoError(t, err)
	assert.Contains(t, out, amerrors.ErrCodeSourceLoad)
	assert.Contains(t, out, "Hint: Check data.dir in your config or pass --data-dir")
	assert.Contains(t, out, "Found 0 matching formulas.")
}
