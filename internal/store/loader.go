package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/jszwec/csvutil"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
)

// utf8BOM is stripped from the first header cell; spreadsheet exports add it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// requiredColumns must be present in a table's header for it to be accepted.
var requiredColumns = map[record.Domain][]string{
	record.DomainFormulas:   {record.FieldFormulaName},
	record.DomainConstants:  {record.FieldConstantName},
	record.DomainScientists: {record.FieldName},
	record.DomainDimensions: {record.FieldEntity},
}

// Decode parses CSV data of the given domain into records.
// Header cells are trimmed before they are matched to record columns.
func Decode(domain record.Domain, data []byte) ([]record.Record, error) {
	switch domain {
	case record.DomainFormulas:
		return decodeAs[record.Formula](domain, data)
	case record.DomainConstants:
		return decodeAs[record.Constant](domain, data)
	case record.DomainScientists:
		return decodeAs[record.Scientist](domain, data)
	case record.DomainDimensions:
		return decodeAs[record.Dimension](domain, data)
	default:
		return nil, amerrors.UnknownDomainError(string(domain))
	}
}

func decodeAs[T record.Record](domain record.Domain, data []byte) ([]record.Record, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if err := checkColumns(domain, header); err != nil {
		return nil, err
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	var out []record.Record
	for {
		var row T
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(out)+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func checkColumns(domain record.Domain, header []string) error {
	for _, col := range requiredColumns[domain] {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("missing column %q", col)
		}
	}
	return nil
}

// LoadFile reads and decodes one table from fsys.
// Failures are returned as CodedErrors: ERR_201 when the file cannot be
// read, ERR_205 when its content cannot be decoded.
func LoadFile(fsys fs.FS, name string, domain record.Domain) (*Store, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, amerrors.SourceLoadError(domain.String(), name, err)
	}

	records, err := Decode(domain, data)
	if err != nil {
		return nil, amerrors.New(amerrors.ErrCodeSourceCorrupt,
			fmt.Sprintf("could not parse %s table", domain), err).
			WithDetail("domain", domain.String()).
			WithDetail("path", name)
	}

	return New(domain, records), nil
}

// Encode writes the records of s as CSV, header first, in store order.
func Encode(s *Store) ([]byte, error) {
	switch s.Domain() {
	case record.DomainFormulas:
		return encodeAs[record.Formula](s)
	case record.DomainConstants:
		return encodeAs[record.Constant](s)
	case record.DomainScientists:
		return encodeAs[record.Scientist](s)
	case record.DomainDimensions:
		return encodeAs[record.Dimension](s)
	default:
		return nil, amerrors.UnknownDomainError(string(s.Domain()))
	}
}

func encodeAs[T record.Record](s *Store) ([]byte, error) {
	rows := make([]T, 0, s.Len())
	for _, r := range s.All() {
		row, ok := r.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected %T record in %s store", r, s.Domain())
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		return csvutil.Marshal(rows)
	}

	var zero T
	header, err := csvutil.Header(zero, "csv")
	if err != nil {
		return nil, fmt.Errorf("build header: %w", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
