package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/physref/data"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
)

// bundledCatalog loads the embedded sample tables.
func bundledCatalog(t *testing.T) *store.Catalog {
	t.Helper()
	cat := store.LoadCatalog(store.Source{
		FS: data.FS,
		Files: map[record.Domain]string{
			record.DomainFormulas:   "formulas.csv",
			record.DomainConstants:  "constants.csv",
			record.DomainScientists: "scientists.csv",
			record.DomainDimensions: "dimensions.csv",
		},
	}, nil)
	require.Empty(t, cat.Notices())
	return cat
}
