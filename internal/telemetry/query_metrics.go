// Package telemetry keeps search telemetry in memory for the stats command
// and the MCP metrics resource. Nothing is persisted or reported externally.
package telemetry

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LatencyBucket is a latency histogram bucket.
type LatencyBucket string

const (
	BucketP1    LatencyBucket = "p1"    // <1ms
	BucketP10   LatencyBucket = "p10"   // 1-10ms
	BucketP100  LatencyBucket = "p100"  // 10-100ms
	BucketP1000 LatencyBucket = "p1000" // 100ms-1s
	BucketSlow  LatencyBucket = "slow"  // >=1s, usually image fetches timing out
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	switch {
	case d < time.Millisecond:
		return BucketP1
	case d < 10*time.Millisecond:
		return BucketP10
	case d < 100*time.Millisecond:
		return BucketP100
	case d < time.Second:
		return BucketP1000
	default:
		return BucketSlow
	}
}

// SearchEvent describes one completed search.
type SearchEvent struct {
	Domain        string
	Query         string // normalized query
	ResultCount   int
	ImageFailures int
	Latency       time.Duration
	Timestamp     time.Time
}

// IsZeroResult reports whether the search matched nothing.
func (e SearchEvent) IsZeroResult() bool {
	return e.ResultCount == 0
}

// minTermLength keeps single-letter symbols out of the top terms; a lone
// "c" or "g" says little about what users look for.
const minTermLength = 2

// ExtractTerms splits a query into lower-cased terms of at least
// minTermLength runes.
func ExtractTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(w)) >= minTermLength {
			terms = append(terms, w)
		}
	}
	return terms
}

// TermCount is a term and its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Snapshot is an immutable copy of the collected metrics.
type Snapshot struct {
	DomainCounts        map[string]int64        `json:"domain_counts"`
	TopTerms            []TermCount             `json:"top_terms"`
	ZeroResultQueries   []string                `json:"zero_result_queries"`
	LatencyDistribution map[LatencyBucket]int64 `json:"latency_distribution"`
	TotalQueries        int64                   `json:"total_queries"`
	ZeroResultCount     int64                   `json:"zero_result_count"`
	ImageFailures       int64                   `json:"image_failures"`
	ExactRepeatCount    int64                   `json:"exact_repeat_count"`
	ExactRepeatRate     float64                 `json:"exact_repeat_rate"`
	UniqueQueryCount    int64                   `json:"unique_query_count"`
	Since               time.Time               `json:"since"`
}

// ZeroResultPercentage returns the share of searches that matched nothing.
func (s *Snapshot) ZeroResultPercentage() float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalQueries) * 100
}

// Summary returns a one-line human-readable summary.
func (s *Snapshot) Summary() string {
	if s.TotalQueries == 0 {
		return "No queries recorded"
	}
	return fmt.Sprintf("queries=%d, zero-result=%.1f%%, repeats=%.1f%%, unique=%d",
		s.TotalQueries, s.ZeroResultPercentage(), s.ExactRepeatRate*100, s.UniqueQueryCount)
}

// Config sizes the bounded collections of QueryMetrics.
type Config struct {
	TopTermsCapacity      int // max distinct terms tracked (default: 100)
	ZeroResultsCapacity   int // max zero-result queries kept (default: 50)
	RecentQueriesCapacity int // max queries remembered for repeat detection (default: 500)
}

// DefaultConfig returns the default sizes.
func DefaultConfig() Config {
	return Config{
		TopTermsCapacity:      100,
		ZeroResultsCapacity:   50,
		RecentQueriesCapacity: 500,
	}
}

// QueryMetrics aggregates SearchEvents. Safe for concurrent use.
type QueryMetrics struct {
	mu sync.RWMutex

	domains         map[string]int64
	topTerms        *lru.Cache[string, int64]
	zeroResults     *CircularBuffer[string]
	latencies       map[LatencyBucket]int64
	totalQueries    int64
	zeroResultCount int64
	imageFailures   int64
	startTime       time.Time

	recentQueries    *lru.Cache[string, struct{}]
	exactRepeatCount int64
}

// NewQueryMetrics creates a collector with DefaultConfig.
func NewQueryMetrics() *QueryMetrics {
	return NewQueryMetricsWithConfig(DefaultConfig())
}

// NewQueryMetricsWithConfig creates a collector. Non-positive sizes fall
// back to the defaults.
func NewQueryMetricsWithConfig(cfg Config) *QueryMetrics {
	def := DefaultConfig()
	if cfg.TopTermsCapacity <= 0 {
		cfg.TopTermsCapacity = def.TopTermsCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = def.ZeroResultsCapacity
	}
	if cfg.RecentQueriesCapacity <= 0 {
		cfg.RecentQueriesCapacity = def.RecentQueriesCapacity
	}

	// lru.New only fails on a non-positive size.
	topTerms, _ := lru.New[string, int64](cfg.TopTermsCapacity)
	recentQueries, _ := lru.New[string, struct{}](cfg.RecentQueriesCapacity)

	return &QueryMetrics{
		domains:       make(map[string]int64),
		topTerms:      topTerms,
		zeroResults:   NewCircularBuffer[string](cfg.ZeroResultsCapacity),
		latencies:     make(map[LatencyBucket]int64),
		startTime:     time.Now(),
		recentQueries: recentQueries,
	}
}

// Record adds one search to the aggregates.
func (m *QueryMetrics) Record(event SearchEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.domains[event.Domain]++
	m.totalQueries++
	m.imageFailures += int64(event.ImageFailures)

	for _, term := range ExtractTerms(event.Query) {
		count, _ := m.topTerms.Get(term)
		m.topTerms.Add(term, count+1)
	}

	if event.IsZeroResult() {
		m.zeroResults.Add(event.Domain + ":" + event.Query)
		m.zeroResultCount++
	}

	m.latencies[LatencyToBucket(event.Latency)]++

	key := hashQuery(event.Domain, event.Query)
	if _, seen := m.recentQueries.Get(key); seen {
		m.exactRepeatCount++
	}
	m.recentQueries.Add(key, struct{}{})
}

func hashQuery(domain, query string) string {
	sum := sha256.Sum256([]byte(domain + "\x00" + strings.ToLower(strings.TrimSpace(query))))
	return hex.EncodeToString(sum[:16])
}

// Snapshot returns a copy of the current aggregates. Top terms are sorted by
// count, descending, ties by term.
func (m *QueryMetrics) Snapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	domains := make(map[string]int64, len(m.domains))
	for k, v := range m.domains {
		domains[k] = v
	}

	topTerms := make([]TermCount, 0, m.topTerms.Len())
	for _, key := range m.topTerms.Keys() {
		if count, ok := m.topTerms.Peek(key); ok {
			topTerms = append(topTerms, TermCount{Term: key, Count: count})
		}
	}
	slices.SortFunc(topTerms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Term, b.Term)
	})

	latencies := make(map[LatencyBucket]int64, len(m.latencies))
	for k, v := range m.latencies {
		latencies[k] = v
	}

	var repeatRate float64
	if m.totalQueries > 0 {
		repeatRate = float64(m.exactRepeatCount) / float64(m.totalQueries)
	}

	return &Snapshot{
		DomainCounts:        domains,
		TopTerms:            topTerms,
		ZeroResultQueries:   m.zeroResults.Items(),
		LatencyDistribution: latencies,
		TotalQueries:        m.totalQueries,
		ZeroResultCount:     m.zeroResultCount,
		ImageFailures:       m.imageFailures,
		ExactRepeatCount:    m.exactRepeatCount,
		ExactRepeatRate:     repeatRate,
		UniqueQueryCount:    int64(m.recentQueries.Len()),
		Since:               m.startTime,
	}
}

// Reset clears every aggregate and restarts the Since clock.
func (m *QueryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.domains)
	clear(m.latencies)
	m.topTerms.Purge()
	m.recentQueries.Purge()
	m.zeroResults.Clear()
	m.totalQueries = 0
	m.zeroResultCount = 0
	m.imageFailures = 0
	m.exactRepeatCount = 0
	m.startTime = time.Now()
}
