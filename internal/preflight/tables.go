package preflight

import (
	"fmt"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/store"
)

// CheckTables reports every table plus a required "data" check that fails
// only when no table holds any record.
func (c *Checker) CheckTables(cat *store.Catalog) []CheckResult {
	if cat == nil {
		cat = store.NewCatalog()
	}

	results := make([]CheckResult, 0, len(record.Domains)+1)
	loaded := 0
	for _, d := range record.Domains {
		n := cat.Store(d).Len()
		r := CheckResult{Name: "table_" + d.String()}
		switch err := cat.NoticeFor(d); {
		case err != nil:
			r.Status = StatusFail
			r.Message = "could not be loaded"
			r.Details = amerrors.FormatNotice(err)
		case n == 0:
			r.Status = StatusWarn
			r.Message = "no records"
		default:
			loaded++
			r.Status = StatusPass
			r.Message = fmt.Sprintf("%d %s", n, record.SchemaFor(d).Noun)
		}
		results = append(results, r)
	}

	data := CheckResult{Name: "data", Required: true, Status: StatusPass,
		Message: fmt.Sprintf("%d of %d tables usable", loaded, len(record.Domains))}
	if loaded == 0 {
		data.Status = StatusFail
		data.Details = "Check data.dir in your config or pass --data-dir"
	}
	return append(results, data)
}
