// Package data provides the bundled sample reference tables.
//
// The tables are embedded at build time so physref works without any
// configuration. Set data.dir (or PHYSREF_DATA_DIR, or --data-dir) to load
// a full data set from disk instead.
package data

import "embed"

// FS holds formulas.csv, constants.csv, scientists.csv and dimensions.csv.
//
//go:embed *.csv
var FS embed.FS
