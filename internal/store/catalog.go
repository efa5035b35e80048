package store

import (
	"errors"
	"io/fs"
	"log/slog"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
)

// Source locates the four tables inside a file system.
type Source struct {
	FS    fs.FS
	Files map[record.Domain]string
}

// Catalog holds one store per domain plus the notices raised while loading.
type Catalog struct {
	stores  map[record.Domain]*Store
	notices []error
}

// LoadCatalog loads every table of src. It never fails: a table that cannot
// be loaded becomes an empty store and its error is kept as a notice, while
// the other domains load normally.
func LoadCatalog(src Source, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{stores: make(map[record.Domain]*Store, len(record.Domains))}
	for _, d := range record.Domains {
		name, ok := src.Files[d]
		if !ok || name == "" || src.FS == nil {
			c.fail(d, amerrors.SourceLoadError(d.String(), name, fs.ErrNotExist), logger)
			continue
		}

		s, err := LoadFile(src.FS, name, d)
		if err != nil {
			c.fail(d, err, logger)
			continue
		}

		logger.Debug("table_loaded",
			slog.String("domain", d.String()),
			slog.String("file", name),
			slog.Int("records", s.Len()))
		c.stores[d] = s
	}
	return c
}

// NewCatalog builds a catalog from already loaded stores.
// Missing domains are filled with empty stores.
func NewCatalog(stores ...*Store) *Catalog {
	c := &Catalog{stores: make(map[record.Domain]*Store, len(record.Domains))}
	for _, s := range stores {
		c.stores[s.Domain()] = s
	}
	for _, d := range record.Domains {
		if _, ok := c.stores[d]; !ok {
			c.stores[d] = Empty(d)
		}
	}
	return c
}

func (c *Catalog) fail(d record.Domain, err error, logger *slog.Logger) {
	logger.Warn("table_load_failed",
		slog.String("domain", d.String()),
		slog.String("error", err.Error()))
	c.stores[d] = Empty(d)
	c.notices = append(c.notices, err)
}

// Store returns the store of a domain; never nil.
func (c *Catalog) Store(d record.Domain) *Store {
	if s, ok := c.stores[d]; ok {
		return s
	}
	return Empty(d)
}

// Notices returns the non-fatal load errors, in domain order.
func (c *Catalog) Notices() []error {
	return c.notices
}

// NoticeFor returns the load error of one domain, or nil.
func (c *Catalog) NoticeFor(d record.Domain) error {
	for _, n := range c.notices {
		var ce *amerrors.CodedError
		if errors.As(n, &ce) && ce.Details["domain"] == d.String() {
			return n
		}
	}
	return nil
}

// Counts returns the number of records per domain.
func (c *Catalog) Counts() map[record.Domain]int {
	counts := make(map[record.Domain]int, len(c.stores))
	for d, s := range c.stores {
		counts[d] = s.Len()
	}
	return counts
}
