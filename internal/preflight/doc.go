// Package preflight diagnoses a physref installation: whether the tables
// load, whether the log directory is writable and whether the image
// settings are usable. It backs the doctor command.
//
//	checker := preflight.New(preflight.WithOutput(os.Stdout))
//	results := checker.RunAll(ctx, preflight.Target{Catalog: cat, Config: cfg})
//	if checker.HasCriticalFailures(results) {
//	    // no table could be loaded
//	}
package preflight
