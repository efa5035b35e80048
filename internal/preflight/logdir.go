package preflight

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckLogDir checks that dir can be created and written to. Logging is
// optional, so a failure is only a warning.
func (c *Checker) CheckLogDir(dir string) CheckResult {
	result := CheckResult{Name: "log_dir", Details: dir}

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("cannot create: %v", err)
		return result
	}

	f, err := os.CreateTemp(dir, ".physref-doctor-*")
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("not writable: %v", err)
		return result
	}
	_ = f.Close()
	_ = os.Remove(filepath.Clean(f.Name()))

	result.Status = StatusPass
	result.Message = "writable"
	return result
}
