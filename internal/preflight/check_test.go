package preflight

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/physref/data"
	"github.com/Aman-CERP/physref/internal/config"
	"github.com/Aman-CERP/physref/internal/logging"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
)

func bundledCatalog(t *testing.T) *store.Catalog {
	t.Helper()
	return store.LoadCatalog(config.NewConfig().DataSource(), logging.Discard())
}

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusWarn, "WARN"},
		{StatusFail, "FAIL"},
		{CheckStatus(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestCheckResult_IsCritical(t *testing.T) {
	tests := []struct {
		name     string
		result   CheckResult
		expected bool
	}{
		{name: "required pass", result: CheckResult{Status: StatusPass, Required: true}, expected: false},
		{name: "required fail", result: CheckResult{Status: StatusFail, Required: true}, expected: true},
		{name: "optional fail", result: CheckResult{Status: StatusFail}, expected: false},
		{name: "required warn", result: CheckResult{Status: StatusWarn, Required: true}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.IsCritical())
		})
	}
}

func TestCheckResult_JSONStatus(t *testing.T) {
	raw, err := json.Marshal(CheckResult{Name: "data", Status: StatusWarn})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"warn"`)
}

func TestCheckTables_Bundled(t *testing.T) {
	// Given: the bundled tables
	results := New().CheckTables(bundledCatalog(t))

	// Then: every table passes, plus the data summary
	require.Len(t, results, len(record.Domains)+1)
	for _, r := range results {
		assert.Equal(t, StatusPass, r.Status, r.Name)
	}
	assert.Equal(t, "6 formulas", results[0].Message)
	assert.Equal(t, "4 of 4 tables usable", results[4].Message)
}

func TestCheckTables_PartialFailure(t *testing.T) {
	// Given: a catalog whose source lacks every file but formulas
	src := store.Source{FS: data.FS, Files: map[record.Domain]string{
		record.DomainFormulas:  "formulas.csv",
		record.DomainConstants: "missing.csv",
	}}
	cat := store.LoadCatalog(src, logging.Discard())

	// When: checking tables
	checker := New()
	results := checker.CheckTables(cat)

	// Then: failed tables are reported but nothing is critical
	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, StatusFail, results[1].Status)
	assert.Contains(t, results[1].Details, "ERR_20")
	assert.False(t, checker.HasCriticalFailures(results))
	assert.Equal(t, "ready_with_warnings", checker.SummaryStatus(results))
}

func TestCheckTables_NothingLoaded(t *testing.T) {
	cat := store.LoadCatalog(store.Source{}, logging.Discard())
	checker := New()

	results := checker.CheckTables(cat)

	data := results[len(results)-1]
	assert.Equal(t, "data", data.Name)
	assert.True(t, data.IsCritical())
	assert.Equal(t, "failed", checker.SummaryStatus(results))
}

func TestCheckLogDir(t *testing.T) {
	// Given: a fresh nested directory
	dir := filepath.Join(t.TempDir(), "logs", "physref")

	// When: checking it
	r := New().CheckLogDir(dir)

	// Then: it is created and no probe file is left behind
	assert.Equal(t, StatusPass, r.Status)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckLogDir_NotCreatable(t *testing.T) {
	// Given: a regular file where the directory should be
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	r := New().CheckLogDir(filepath.Join(file, "logs"))

	assert.Equal(t, StatusWarn, r.Status)
	assert.False(t, r.IsCritical())
}

func TestCheckImages(t *testing.T) {
	disabled := config.NewConfig()
	off := false
	disabled.Images.Enabled = &off

	badURL := config.NewConfig()
	badURL.Images.PlaceholderURL = "not a url"

	tests := []struct {
		name       string
		cfg        *config.Config
		wantStatus CheckStatus
		wantMsg    string
	}{
		{name: "defaults", cfg: config.NewConfig(), wantStatus: StatusPass, wantMsg: "enabled (timeout 5s)"},
		{name: "disabled", cfg: disabled, wantStatus: StatusPass, wantMsg: "disabled"},
		{name: "bad placeholder", cfg: badURL, wantStatus: StatusWarn, wantMsg: "placeholder_url is not an http(s) URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New().CheckImages(context.Background(), tt.cfg, time.Second)

			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantMsg, r.Message)
		})
	}
}

func TestCheckImages_Online(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer gone.Close()

	tests := []struct {
		name       string
		url        string
		wantStatus CheckStatus
	}{
		{name: "reachable", url: ok.URL + "/p.png", wantStatus: StatusPass},
		{name: "not found", url: gone.URL + "/p.png", wantStatus: StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Images.PlaceholderURL = tt.url

			r := New(WithOnline(true)).CheckImages(context.Background(), cfg, time.Second)

			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestRunAll_PrintResults(t *testing.T) {
	// Given: a checker writing to a buffer
	var buf bytes.Buffer
	checker := New(WithOutput(&buf), WithVerbose(true))

	// When: running every check
	results := checker.RunAll(context.Background(), Target{
		Catalog: bundledCatalog(t),
		Config:  config.NewConfig(),
		LogDir:  t.TempDir(),
	})
	checker.PrintResults(results)

	// Then: everything passes
	assert.Equal(t, "ready", checker.SummaryStatus(results))
	out := buf.String()
	assert.Contains(t, out, "physref doctor")
	assert.Contains(t, out, "[PASS] table_scientists: 4 scientists")
	assert.Contains(t, out, "[PASS] log_dir: writable")
	assert.Contains(t, out, "Status: READY")
	assert.NotContains(t, out, "issue(s)")
}
