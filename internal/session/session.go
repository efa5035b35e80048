// Package session holds the interactive browser's query state: the active
// domain and one query string per domain. The state belongs to the caller;
// the search core never reads it.
package session

import (
	"time"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
)

// State is the browser state. Not safe for concurrent use.
type State struct {
	active  record.Domain
	queries map[record.Domain]string

	// LastChanged is when the query or the active domain last changed.
	LastChanged time.Time
}

// New creates a state with initial as the active domain and every query
// empty. An unknown initial domain falls back to the first domain.
func New(initial record.Domain) *State {
	if _, ok := record.ParseDomain(initial.String()); !ok {
		initial = record.Domains[0]
	}
	return &State{
		active:      initial,
		queries:     make(map[record.Domain]string, len(record.Domains)),
		LastChanged: time.Now(),
	}
}

// Active returns the active domain.
func (s *State) Active() record.Domain {
	return s.active
}

// Query returns the query of the active domain.
func (s *State) Query() string {
	return s.queryFor(s.active)
}

func (s *State) queryFor(d record.Domain) string {
	return s.queries[d]
}

// SetQuery replaces the query of the active domain.
func (s *State) SetQuery(q string) {
	s.queries[s.active] = q
	s.LastChanged = time.Now()
}

// Switch makes d the active domain and resets its query, so every visit to
// a domain starts from the full listing.
func (s *State) Switch(d record.Domain) error {
	if _, ok := record.ParseDomain(d.String()); !ok {
		return amerrors.UnknownDomainError(d.String())
	}
	s.active = d
	s.queries[d] = ""
	s.LastChanged = time.Now()
	return nil
}

// Next switches to the domain after the active one, wrapping around.
func (s *State) Next() record.Domain {
	return s.step(1)
}

// Prev switches to the domain before the active one, wrapping around.
func (s *State) Prev() record.Domain {
	return s.step(-1)
}

func (s *State) step(delta int) record.Domain {
	n := len(record.Domains)
	i := 0
	for j, d := range record.Domains {
		if d == s.active {
			i = j
			break
		}
	}
	d := record.Domains[((i+delta)%n+n)%n]
	_ = s.Switch(d)
	return d
}

// Clear resets the query of the active domain. Other domains keep theirs.
func (s *State) Clear() {
	s.SetQuery("")
}
