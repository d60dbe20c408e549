package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"golang.org/x/text/cases"
)

// DuplicatePolicy decides what Select does when several records share the
// same name and unit.
type DuplicatePolicy int

const (
	// FirstMatch returns the first record in table order and logs a warning.
	FirstMatch DuplicatePolicy = iota
	// RejectDuplicates fails with common.ErrAmbiguous.
	RejectDuplicates
)

// ParseDuplicatePolicy accepts "first" (or "") and "error".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return FirstMatch, nil
	case "error", "reject":
		return RejectDuplicates, nil
	default:
		return FirstMatch, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// Selection is a resolved record and the sheet row it lives on.
type Selection struct {
	Record models.Record
	Row    int
	// Matches is the number of records sharing the selected name and unit.
	Matches int
}

// Filter returns the records whose name or unit contains token. An empty
// token returns every record. Matching is case-sensitive unless the store
// was built with WithCaseFolding. An empty result is a valid outcome.
func (s *Store) Filter(table *models.Table, token string) []models.Record {
	if token == "" {
		return append([]models.Record(nil), table.Records...)
	}

	match := strings.Contains
	if s.fold {
		folder := cases.Fold()
		match = func(field, sub string) bool {
			return strings.Contains(folder.String(field), folder.String(sub))
		}
	}

	var out []models.Record
	for _, r := range table.Records {
		if match(r.Get(s.schema.Name), token) || match(r.Get(s.schema.Unit), token) {
			out = append(out, r)
		}
	}
	return out
}

// Label is the text a user picks a record by. Names are not unique, so the
// unit is always part of it.
func (s *Store) Label(r models.Record) string {
	return fmt.Sprintf("%s (%s)", r.Get(s.schema.Name), r.Get(s.schema.Unit))
}

// Select resolves a name and unit to exactly one record by exact match on
// both. With several matches the first one in table order is returned
// unless the store rejects duplicates.
func (s *Store) Select(ctx context.Context, table *models.Table, name, unit string) (Selection, error) {
	var sel Selection
	for _, r := range table.Records {
		if r.Get(s.schema.Name) != name || r.Get(s.schema.Unit) != unit {
			continue
		}
		if sel.Matches == 0 {
			sel.Record = r
			sel.Row = r.Row()
		}
		sel.Matches++
	}

	switch {
	case sel.Matches == 0:
		return Selection{}, fmt.Errorf("%w: %s (%s)", common.ErrNotFound, name, unit)
	case sel.Matches > 1 && s.duplicates == RejectDuplicates:
		return Selection{}, fmt.Errorf("%w: %d records named %s (%s)", common.ErrAmbiguous, sel.Matches, name, unit)
	case sel.Matches > 1:
		s.logger.Warn(ctx, "duplicate records, using first", "name", name, "unit", unit,
			"matches", sel.Matches, "row", sel.Row)
	}
	return sel, nil
}
