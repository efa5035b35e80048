package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
)

func TestNew(t *testing.T) {
	s := New(record.DomainConstants)
	assert.Equal(t, record.DomainConstants, s.Active())
	assert.Empty(t, s.Query())

	fallback := New(record.Domain("planets"))
	assert.Equal(t, record.DomainFormulas, fallback.Active())
}

func TestState_SetQueryIsPerDomain(t *testing.T) {
	// Given: a query typed in formulas
	s := New(record.DomainFormulas)
	s.SetQuery("newton")

	// Then: other domains are untouched
	assert.Equal(t, "newton", s.Query())
	assert.Equal(t, "newton", s.queryFor(record.DomainFormulas))
	assert.Empty(t, s.queryFor(record.DomainScientists))
}

func TestState_SwitchResetsTargetQuery(t *testing.T) {
	// Given: queries typed in two domains
	s := New(record.DomainFormulas)
	s.SetQuery("newton")
	require.NoError(t, s.Switch(record.DomainScientists))
	s.SetQuery("curie")

	// When: switching back to formulas
	require.NoError(t, s.Switch(record.DomainFormulas))

	// Then: formulas starts empty and scientists keeps its query
	assert.Equal(t, record.DomainFormulas, s.Active())
	assert.Empty(t, s.Query())
	assert.Equal(t, "curie", s.queryFor(record.DomainScientists))
}

func TestState_SwitchUnknownDomain(t *testing.T) {
	s := New(record.DomainFormulas)
	s.SetQuery("speed")

	err := s.Switch(record.Domain("planets"))

	require.Error(t, err)
	assert.Equal(t, amerrors.ErrCodeUnknownDomain, amerrors.GetCode(err))
	assert.Equal(t, record.DomainFormulas, s.Active())
	assert.Equal(t, "speed", s.Query())
}

func TestState_ClearOnlyActive(t *testing.T) {
	s := New(record.DomainDimensions)
	s.SetQuery("force")
	s.queries[record.DomainConstants] = "planck"

	s.Clear()

	assert.Empty(t, s.Query())
	assert.Equal(t, "planck", s.queryFor(record.DomainConstants))
}

func TestState_NextPrevWrap(t *testing.T) {
	s := New(record.DomainDimensions)

	assert.Equal(t, record.DomainFormulas, s.Next())
	assert.Equal(t, record.DomainDimensions, s.Prev())
	assert.Equal(t, record.DomainScientists, s.Prev())
}

func TestState_LastChanged(t *testing.T) {
	s := New(record.DomainFormulas)
	before := s.LastChanged
	time.Sleep(time.Millisecond)

	s.SetQuery("x")

	assert.True(t, s.LastChanged.After(before))
}
