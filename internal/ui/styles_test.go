package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoColorStyles_RenderVerbatim(t *testing.T) {
	// Given: plain styles
	styles := NoColorStyles()

	// Then: every text style returns its input unchanged
	for name, s := range map[string]func(...string) string{
		"header":  styles.Header.Render,
		"title":   styles.Title.Render,
		"label":   styles.Label.Render,
		"math":    styles.Math.Render,
		"hint":    styles.Hint.Render,
		"warning": styles.Warning.Render,
		"dim":     styles.Dim.Render,
	} {
		assert.Equal(t, "v = d/t", s("v = d/t"), name)
	}
}

func TestDefaultStyles_KeepText(t *testing.T) {
	styles := DefaultStyles()

	assert.Contains(t, styles.Header.Render("Formulas"), "Formulas")
	assert.Contains(t, styles.Math.Render("E = mc^2"), "E = mc^2")
	assert.Contains(t, styles.Card.Render("body"), "body")
}

func TestGetStyles(t *testing.T) {
	// When: color is disabled
	plain := GetStyles(true)

	// Then: rendering is verbatim
	assert.Equal(t, "test", plain.Success.Render("test"))

	// When: color is enabled the text is still present
	assert.Contains(t, GetStyles(false).Success.Render("test"), "test")
}
