package preflight

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Aman-CERP/physref/internal/config"
	"github.com/Aman-CERP/physref/internal/logging"
	"github.com/Aman-CERP/physref/internal/store"
)

// CheckStatus represents the result of a check.
type CheckStatus int

const (
	// StatusPass indicates the check passed.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a problem physref can work around.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the upper-case label of s.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the status as its lower-case label.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// CheckResult holds the result of a single check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Target is what gets checked.
type Target struct {
	Catalog *store.Catalog
	Config  *config.Config
	// LogDir defaults to logging.DefaultLogDir().
	LogDir string
}

// Checker runs the checks.
type Checker struct {
	online  bool
	verbose bool
	output  io.Writer
	client  *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithOnline enables the network probe of the placeholder image.
func WithOnline(online bool) Option {
	return func(c *Checker) {
		c.online = online
	}
}

// WithVerbose prints check details.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithHTTPClient replaces the client used by the online probe.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		output: os.Stdout,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs every check against t.
func (c *Checker) RunAll(ctx context.Context, t Target) []CheckResult {
	results := c.CheckTables(t.Catalog)

	logDir := t.LogDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}
	results = append(results, c.CheckLogDir(logDir))
	results = append(results, c.CheckImages(ctx, t.Config, 5*time.Second))
	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus returns "ready", "ready_with_warnings" or "failed".
func (c *Checker) SummaryStatus(results []CheckResult) string {
	warnings := false
	for _, r := range results {
		if r.IsCritical() {
			return "failed"
		}
		if r.Status != StatusPass {
			warnings = true
		}
	}
	if warnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	_, _ = fmt.Fprintln(c.output, "physref doctor")
	_, _ = fmt.Fprintln(c.output, "==============")
	_, _ = fmt.Fprintln(c.output)

	var problems []string
	for _, r := range results {
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.output, "       %s\n", r.Details)
		}
		if r.Status != StatusPass {
			problems = append(problems, r.Name+": "+r.Message)
		}
	}

	_, _ = fmt.Fprintf(c.output, "\nStatus: %s\n", strings.ToUpper(c.SummaryStatus(results)))
	if len(problems) > 0 {
		_, _ = fmt.Fprintf(c.output, "\n%d issue(s):\n", len(problems))
		for _, p := range problems {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", p)
		}
	}
}
