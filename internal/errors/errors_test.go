package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodedError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("open formulas.csv: no such file")

	// When: wrapping it
	err := New(ErrCodeSourceLoad, "could not load formulas table", originalErr)

	// Then: unwrapping returns the original
	require.NotNil(t, err)
	assert.Equal(t, originalErr, errors.Unwrap(err))
	assert.True(t, errors.Is(err, originalErr))
}

func TestCodedError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{"config error", ErrCodeConfigInvalid, "bad timeout", "[ERR_102_CONFIG_INVALID] bad timeout"},
		{"source error", ErrCodeSourceLoad, "table missing", "[ERR_201_SOURCE_LOAD] table missing"},
		{"image error", ErrCodeImageFetch, "image gone", "[ERR_304_IMAGE_FETCH] image gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestCodedError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeImageFetch, "a", nil)
	err2 := New(ErrCodeImageFetch, "b", nil)
	err3 := New(ErrCodeSourceLoad, "c", nil)

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestCodedError_IsThroughWrapping(t *testing.T) {
	// Given: a coded error wrapped with fmt.Errorf
	wrapped := fmt.Errorf("loading catalog: %w", SourceLoadError("formulas", "f.csv", nil))

	// Then: code and category are still reachable
	assert.Equal(t, ErrCodeSourceLoad, GetCode(wrapped))
	assert.Equal(t, CategoryIO, GetCategory(wrapped))
	assert.True(t, IsWarning(wrapped))
}

func TestCategoryAndSeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
		wantSeverity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeSourceLoad, CategoryIO, SeverityWarning},
		{ErrCodeSourceCorrupt, CategoryIO, SeverityWarning},
		{ErrCodeImageFetch, CategoryNetwork, SeverityWarning},
		{ErrCodeUnknownDomain, CategoryValidation, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
		{"BAD", CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestSourceLoadError_CarriesDetails(t *testing.T) {
	err := SourceLoadError("constants", "/data/constants.csv", errors.New("boom"))

	assert.Equal(t, "constants", err.Details["domain"])
	assert.Equal(t, "/data/constants.csv", err.Details["path"])
	assert.NotEmpty(t, err.Suggestion)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestFormatForCLI_IncludesCauseHintAndCode(t *testing.T) {
	err := SourceLoadError("formulas", "f.csv", errors.New("permission denied"))

	out := FormatForCLI(err)

	assert.Contains(t, out, "could not load formulas table")
	assert.Contains(t, out, "Cause: permission denied")
	assert.Contains(t, out, "Hint:")
	assert.Contains(t, out, ErrCodeSourceLoad)
}

func TestFormatForCLI_WrapsPlainErrors(t *testing.T) {
	out := FormatForCLI(errors.New("plain"))
	assert.Contains(t, out, "Error: plain")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatNotice_SingleLine(t *testing.T) {
	err := ImageFetchError("http://x/y.png", errors.New("status 404"))
	assert.Equal(t, "[ERR_304_IMAGE_FETCH] image http://x/y.png unavailable, showing placeholder: status 404", FormatNotice(err))
	assert.Empty(t, FormatNotice(nil))
}

func TestImageFetchError_NamesTheImage(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "url", url: "https://img/newton.jpg", want: "image https://img/newton.jpg unavailable, showing placeholder"},
		{name: "sentinel", url: "-", want: "no image URL, showing placeholder"},
		{name: "empty", url: " ", want: "no image URL, showing placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ImageFetchError(tt.url, nil)
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, tt.url, err.Details["url"])
		})
	}
}

func TestWithSubject(t *testing.T) {
	// Given: the same failure for two different images
	base := ImageFetchError("https://img/a.jpg", errors.New("down"))

	// When: labeling it with record titles
	newton := WithSubject(base, "Isaac Newton")
	raman := WithSubject(base, "C. V. Raman")

	// Then: the notices differ and the original is untouched
	assert.Equal(t, "[ERR_304_IMAGE_FETCH] Isaac Newton: image https://img/a.jpg unavailable, showing placeholder: down", FormatNotice(newton))
	assert.NotEqual(t, FormatNotice(newton), FormatNotice(raman))
	assert.Equal(t, "image https://img/a.jpg unavailable, showing placeholder", base.Message)
	assert.Equal(t, ErrCodeImageFetch, GetCode(newton))
	assert.ErrorIs(t, newton, base)

	// Then: plain errors and empty subjects pass through
	plain := errors.New("plain")
	assert.Same(t, plain, WithSubject(plain, "x"))
	assert.Equal(t, error(base), WithSubject(base, ""))
}

func TestFormatForUser(t *testing.T) {
	assert.Empty(t, FormatForUser(nil))
	assert.Equal(t, "plain", FormatForUser(errors.New("plain")))

	out := FormatForUser(UnknownDomainError("planets"))
	assert.Contains(t, out, `unknown domain "planets"`)
	assert.Contains(t, out, "Suggestion:")
}

func TestFormatJSON(t *testing.T) {
	data, err := FormatJSON(ImageFetchError("http://x", errors.New("timeout")))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeImageFetch, decoded["code"])
	assert.Equal(t, "NETWORK", decoded["category"])
	assert.Equal(t, "WARNING", decoded["severity"])
	assert.Equal(t, "timeout", decoded["cause"])
}

func TestFormatForLog(t *testing.T) {
	assert.Nil(t, FormatForLog(nil))
	assert.Equal(t, map[string]any{"error": "x"}, FormatForLog(errors.New("x")))

	fields := FormatForLog(SourceLoadError("scientists", "s.csv", errors.New("eof")))
	assert.Equal(t, ErrCodeSourceLoad, fields["error_code"])
	assert.Equal(t, "scientists", fields["detail_domain"])
	assert.Equal(t, "eof", fields["cause"])
}
