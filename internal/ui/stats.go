package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
	"github.com/Aman-CERP/physref/internal/telemetry"
)

// Table status values.
const (
	TableLoaded      = "loaded"
	TableEmpty       = "empty"
	TableUnavailable = "unavailable"
)

// DomainStatus describes one reference table.
type DomainStatus struct {
	Domain  string `json:"domain"`
	Records int    `json:"records"`
	Status  string `json:"status"`
	Notice  string `json:"notice,omitempty"`
}

// DomainStatuses reports every domain of cat in display order.
func DomainStatuses(cat *store.Catalog) []DomainStatus {
	counts := cat.Counts()
	out := make([]DomainStatus, 0, len(record.Domains))
	for _, d := range record.Domains {
		ds := DomainStatus{Domain: d.String(), Records: counts[d], Status: TableLoaded}
		if err := cat.NoticeFor(d); err != nil {
			ds.Status = TableUnavailable
			ds.Notice = amerrors.FormatNotice(err)
		} else if ds.Records == 0 {
			ds.Status = TableEmpty
		}
		out = append(out, ds)
	}
	return out
}

// StatsInfo is what the stats view reports.
type StatsInfo struct {
	DataSource    string         `json:"data_source"`
	Domains       []DomainStatus `json:"domains"`
	ImagesEnabled bool           `json:"images_enabled"`

	LogPath     string    `json:"log_path,omitempty"`
	LogSize     int64     `json:"log_size,omitempty"`
	LogModified time.Time `json:"log_modified,omitzero"`

	// Telemetry is nil when nothing was recorded in this process.
	Telemetry *telemetry.Snapshot `json:"telemetry,omitempty"`
}

// latencyOrder is the histogram order, fastest first.
var latencyOrder = []telemetry.LatencyBucket{
	telemetry.BucketP1, telemetry.BucketP10, telemetry.BucketP100,
	telemetry.BucketP1000, telemetry.BucketSlow,
}

// StatsRenderer displays StatsInfo.
type StatsRenderer struct {
	out    io.Writer
	styles Styles
}

// NewStatsRenderer creates a stats renderer.
func NewStatsRenderer(out io.Writer, noColor bool) *StatsRenderer {
	return &StatsRenderer{out: out, styles: GetStyles(noColor)}
}

// Render writes the human-readable view.
func (r *StatsRenderer) Render(info StatsInfo) error {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("physref stats"))

	_, _ = fmt.Fprintf(r.out, "  Data:    %s\n", info.DataSource)
	images := r.styles.Warning.Render("disabled")
	if info.ImagesEnabled {
		images = r.styles.Success.Render("enabled")
	}
	_, _ = fmt.Fprintf(r.out, "  Images:  %s\n\n", images)

	_, _ = fmt.Fprintln(r.out, "  Tables:")
	for _, d := range info.Domains {
		_, _ = fmt.Fprintf(r.out, "    %-11s %5d  %s\n", d.Domain, d.Records, r.renderStatus(d.Status))
		if d.Notice != "" {
			_, _ = fmt.Fprintf(r.out, "      %s\n", r.styles.Dim.Render(d.Notice))
		}
	}
	_, _ = fmt.Fprintln(r.out)

	if info.LogPath != "" {
		line := info.LogPath
		if !info.LogModified.IsZero() {
			line = fmt.Sprintf("%s (%s, updated %s)", info.LogPath, FormatBytes(info.LogSize), formatTime(info.LogModified))
		}
		_, _ = fmt.Fprintf(r.out, "  Log:     %s\n\n", line)
	}

	if snap := info.Telemetry; snap != nil && snap.TotalQueries > 0 {
		r.renderTelemetry(snap)
	}
	return nil
}

func (r *StatsRenderer) renderTelemetry(snap *telemetry.Snapshot) {
	_, _ = fmt.Fprintf(r.out, "  Searches: %s\n", snap.Summary())

	counts := make([]float64, len(latencyOrder))
	labels := make([]string, len(latencyOrder))
	for i, b := range latencyOrder {
		counts[i] = float64(snap.LatencyDistribution[b])
		labels[i] = fmt.Sprintf("%s=%d", b, snap.LatencyDistribution[b])
	}
	_, _ = fmt.Fprintf(r.out, "    Latency:      %s  %s\n",
		r.styles.Sparkline.Render(Bars(counts)), strings.Join(labels, " "))

	if snap.ImageFailures > 0 {
		_, _ = fmt.Fprintf(r.out, "    Image misses: %s\n",
			r.styles.Warning.Render(fmt.Sprintf("%d", snap.ImageFailures)))
	}

	if len(snap.TopTerms) > 0 {
		terms := make([]string, 0, 5)
		for _, tc := range snap.TopTerms[:min(5, len(snap.TopTerms))] {
			terms = append(terms, fmt.Sprintf("%s(%d)", tc.Term, tc.Count))
		}
		_, _ = fmt.Fprintf(r.out, "    Top terms:    %s\n", strings.Join(terms, ", "))
	}

	if len(snap.ZeroResultQueries) > 0 {
		_, _ = fmt.Fprintf(r.out, "    No results:   %s\n", strings.Join(snap.ZeroResultQueries, ", "))
	}
	_, _ = fmt.Fprintln(r.out)
}

// RenderJSON writes info as JSON.
func (r *StatsRenderer) RenderJSON(info StatsInfo) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

func (r *StatsRenderer) renderStatus(status string) string {
	switch status {
	case TableLoaded:
		return r.styles.Success.Render(status)
	case TableEmpty:
		return r.styles.Warning.Render(status)
	case TableUnavailable:
		return r.styles.Error.Render(status)
	default:
		return status
	}
}

// formatTime formats a time relative to now.
func formatTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatBytes formats a byte count for humans.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
