package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T) string {
	t.Helper()
	lines := []string{
		`{"time":"2026-10-19T10:00:00Z","level":"INFO","msg":"search_complete","domain":"formulas","results":1}`,
		`{"time":"2026-10-19T10:00:01Z","level":"WARN","msg":"image_fetch_failed","url":"https://example.org/a.jpg"}`,
		`{"time":"2026-10-19T10:00:02Z","level":"ERROR","msg":"table_load_failed","domain":"constants"}`,
	}
	path := filepath.Join(t.TempDir(), "physref.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestLogsCmd(t *testing.T) {
	isolate(t)
	path := writeLog(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all entries",
			args: []string{"logs", "--file", path, "--no-color"},
			want: []string{"search_complete", "image_fetch_failed", "table_load_failed"},
		},
		{
			name:    "last line",
			args:    []string{"logs", "--file", path, "-n", "1", "--no-color"},
			want:    []string{"table_load_failed"},
			notWant: []string{"search_complete"},
		},
		{
			name:    "level filter",
			args:    []string{"logs", "--file", path, "--level", "warn", "--no-color"},
			want:    []string{"image_fetch_failed", "ERROR"},
			notWant: []string{"search_complete"},
		},
		{
			name:    "pattern filter",
			args:    []string{"logs", "--file", path, "--filter", "image_", "--no-color"},
			want:    []string{"url=https://example.org/a.jpg"},
			notWant: []string{"table_load_failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, "Log file: "+path)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestLogsCmd_Errors(t *testing.T) {
	isolate(t)

	_, err := execute(t, "logs", "--file", filepath.Join(t.TempDir(), "missing.log"))
	assert.ErrorContains(t, err, "log file not found")

	_, err = execute(t, "logs", "--file", writeLog(t), "--filter", "(")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestLogsCmd_NoDefaultLog(t *testing.T) {
	isolate(t)

	_, err := execute(t, "logs")
	assert.ErrorContains(t, err, "no log file found")
}
