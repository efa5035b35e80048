// Package store holds the in-memory record tables. A Store is filled once
// from a tabular source and is read-only afterwards, so it can be shared by
// any number of concurrent readers.
package store

import (
	"iter"

	"github.com/Aman-CERP/physref/internal/record"
)

// Store is an ordered, immutable sequence of records of one domain.
type Store struct {
	domain  record.Domain
	schema  record.Schema
	records []record.Record
}

// New creates a store over records. The slice is copied so later changes by
// the caller cannot leak in.
func New(domain record.Domain, records []record.Record) *Store {
	owned := make([]record.Record, len(records))
	copy(owned, records)
	return &Store{
		domain:  domain,
		schema:  record.SchemaFor(domain),
		records: owned,
	}
}

// Empty returns a store with no records, used when a table fails to load.
func Empty(domain record.Domain) *Store {
	return New(domain, nil)
}

// Domain returns the domain of the store.
func (s *Store) Domain() record.Domain {
	return s.domain
}

// Schema returns the search and presentation schema of the store's domain.
func (s *Store) Schema() record.Schema {
	return s.schema
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All iterates records in source order.
func (s *Store) All() iter.Seq2[int, record.Record] {
	return func(yield func(int, record.Record) bool) {
		for i, r := range s.records {
			if !yield(i, r) {
				return
			}
		}
	}
}
