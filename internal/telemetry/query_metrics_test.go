package telemetry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyToBucket(t *testing.T) {
	tests := []struct {
		latency time.Duration
		want    LatencyBucket
	}{
		{500 * time.Microsecond, BucketP1},
		{5 * time.Millisecond, BucketP10},
		{50 * time.Millisecond, BucketP100},
		{500 * time.Millisecond, BucketP1000},
		{5 * time.Second, BucketSlow},
	}
	for _, tt := range tests {
		t.Run(tt.latency.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, LatencyToBucket(tt.latency))
		})
	}
}

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"single letter dropped", "c", nil},
		{"mixed", "Speed of c", []string{"speed", "of"}},
		{"unicode counted in runes", "λ µm", []string{"µm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTerms(tt.query))
		})
	}
}

func TestQueryMetrics_Record(t *testing.T) {
	// Given: a fresh collector
	m := NewQueryMetrics()

	// When: recording three searches, one repeated and one empty-handed
	m.Record(SearchEvent{Domain: "formulas", Query: "speed", ResultCount: 2, Latency: time.Millisecond * 2})
	m.Record(SearchEvent{Domain: "formulas", Query: "speed", ResultCount: 2, Latency: time.Millisecond * 2})
	m.Record(SearchEvent{Domain: "scientists", Query: "tesla", ResultCount: 0, ImageFailures: 1, Latency: 2 * time.Second})

	// Then: aggregates reflect every event
	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalQueries)
	assert.Equal(t, int64(2), snap.DomainCounts["formulas"])
	assert.Equal(t, int64(1), snap.DomainCounts["scientists"])
	assert.Equal(t, int64(1), snap.ZeroResultCount)
	assert.Equal(t, []string{"scientists:tesla"}, snap.ZeroResultQueries)
	assert.Equal(t, int64(1), snap.ImageFailures)
	assert.Equal(t, int64(2), snap.LatencyDistribution[BucketP10])
	assert.Equal(t, int64(1), snap.LatencyDistribution[BucketSlow])
	assert.Equal(t, int64(1), snap.ExactRepeatCount)
	assert.Equal(t, int64(2), snap.UniqueQueryCount)
	assert.InDelta(t, 33.3, snap.ZeroResultPercentage(), 0.1)

	require.NotEmpty(t, snap.TopTerms)
	assert.Equal(t, TermCount{Term: "speed", Count: 2}, snap.TopTerms[0])
}

func TestQueryMetrics_RepeatsAreScopedByDomain(t *testing.T) {
	m := NewQueryMetrics()

	m.Record(SearchEvent{Domain: "formulas", Query: "force"})
	m.Record(SearchEvent{Domain: "dimensions", Query: "force"})

	assert.Equal(t, int64(0), m.Snapshot().ExactRepeatCount)
}

func TestQueryMetrics_TopTermsOrder(t *testing.T) {
	m := NewQueryMetrics()
	for _, q := range []string{"energy", "work", "energy", "work", "energy", "power"} {
		m.Record(SearchEvent{Domain: "formulas", Query: q, ResultCount: 1})
	}

	terms := m.Snapshot().TopTerms

	require.Len(t, terms, 3)
	assert.Equal(t, "energy", terms[0].Term)
	assert.Equal(t, "work", terms[1].Term)
	assert.Equal(t, "power", terms[2].Term)
}

func TestQueryMetrics_Reset(t *testing.T) {
	m := NewQueryMetrics()
	m.Record(SearchEvent{Domain: "formulas", Query: "speed"})

	m.Reset()

	snap := m.Snapshot()
	assert.Equal(t, int64(0), snap.TotalQueries)
	assert.Empty(t, snap.TopTerms)
	assert.Empty(t, snap.ZeroResultQueries)
	assert.Equal(t, "No queries recorded", snap.Summary())
}

func TestSnapshot_Summary(t *testing.T) {
	m := NewQueryMetrics()
	m.Record(SearchEvent{Domain: "formulas", Query: "speed", ResultCount: 1})
	m.Record(SearchEvent{Domain: "formulas", Query: "speed", ResultCount: 0})

	assert.Equal(t, "queries=2, zero-result=50.0%, repeats=50.0%, unique=1", m.Snapshot().Summary())
}

func TestQueryMetrics_ConcurrentRecord(t *testing.T) {
	m := NewQueryMetricsWithConfig(Config{TopTermsCapacity: 10})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(SearchEvent{Domain: "constants", Query: "planck", ResultCount: 1})
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), m.Snapshot().TotalQueries)
}
