package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
)

// Resource URIs and MIME types.
const (
	MetricsURI       = "physref://metrics"
	TableURIPrefix   = "physref://tables/"
	MIMETypeJSON     = "application/json"
	MIMETypeCSV      = "text/csv"
	metricsTimeFrame = "session"
)

// TableURI returns the resource URI of a domain's table.
func TableURI(d record.Domain) string {
	return TableURIPrefix + d.String()
}

// registerTableResources exposes every loaded table as CSV.
func (s *Server) registerTableResources() {
	for _, d := range record.Domains {
		st := s.catalog.Store(d)
		s.addResource(ResourceInfo{
			URI:         TableURI(d),
			Name:        d.String(),
			Description: fmt.Sprintf("%s table (%d records)", d.Title(), st.Len()),
			MIMEType:    MIMETypeCSV,
		}, s.makeTableHandler(d))
	}
}

func (s *Server) makeTableHandler(d record.Domain) resourceReader {
	return func(_ context.Context) (string, error) {
		if err := s.catalog.NoticeFor(d); err != nil {
			return "", MapError(err)
		}
		data, err := store.Encode(s.catalog.Store(d))
		if err != nil {
			return "", MapError(err)
		}
		return string(data), nil
	}
}

// MetricsOutput is the JSON document of the metrics resource.
type MetricsOutput struct {
	Summary             MetricsSummary   `json:"summary"`
	DomainCounts        map[string]int64 `json:"domain_counts"`
	TopTerms            []TermCount      `json:"top_terms"`
	ZeroResultQueries   []string         `json:"zero_result_queries"`
	LatencyDistribution map[string]int64 `json:"latency_distribution"`
}

// MetricsSummary provides overview statistics.
type MetricsSummary struct {
	TotalQueries    int64   `json:"total_queries"`
	TimePeriod      string  `json:"time_period"`
	ZeroResultPct   float64 `json:"zero_result_pct"`
	ExactRepeatRate float64 `json:"exact_repeat_rate"`
	ImageFailures   int64   `json:"image_failures"`
}

// TermCount is a query term and its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// registerMetricsResource registers the metrics resource.
func (s *Server) registerMetricsResource() {
	s.addResource(ResourceInfo{
		URI:         MetricsURI,
		Name:        "metrics",
		Description: "Search telemetry for this server session",
		MIMEType:    MIMETypeJSON,
	}, s.readMetrics)
}

func (s *Server) readMetrics(_ context.Context) (string, error) {
	metrics := s.metrics
	if metrics == nil {
		return "", NewInvalidParamsError("search metrics not available")
	}

	snap := metrics.Snapshot()
	out := MetricsOutput{
		Summary: MetricsSummary{
			TotalQueries:    snap.TotalQueries,
			TimePeriod:      metricsTimeFrame,
			ZeroResultPct:   snap.ZeroResultPercentage(),
			ExactRepeatRate: snap.ExactRepeatRate,
			ImageFailures:   snap.ImageFailures,
		},
		DomainCounts:        snap.DomainCounts,
		TopTerms:            make([]TermCount, 0, len(snap.TopTerms)),
		ZeroResultQueries:   snap.ZeroResultQueries,
		LatencyDistribution: make(map[string]int64, len(snap.LatencyDistribution)),
	}
	for _, tc := range snap.TopTerms {
		out.TopTerms = append(out.TopTerms, TermCount{Term: tc.Term, Count: tc.Count})
	}
	for bucket, count := range snap.LatencyDistribution {
		out.LatencyDistribution[string(bucket)] = count
	}

	content, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", MapError(err)
	}
	return string(content), nil
}

// resourceReader produces the text of one resource.
type resourceReader func(ctx context.Context) (string, error)

// addResource registers a resource with the SDK server and records it for
// ListResources and ReadResource.
func (s *Server) addResource(info ResourceInfo, read resourceReader) {
	s.resources[info.URI] = registeredResource{info: info, read: read}
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        info.Name,
			URI:         info.URI,
			Description: info.Description,
			MIMEType:    info.MIMEType,
		},
		func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			text, err := read(ctx)
			if err != nil {
				return nil, err
			}
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      info.URI,
					MIMEType: info.MIMEType,
					Text:     text,
				}},
			}, nil
		},
	)
}
