package records

import (
	"context"

	"github.com/dmitrijs2005/interviewkeeper/internal/models"
)

// Load reads the whole sheet in one call and returns a fresh snapshot. Nothing
// is cached: call Load again before each editing session so a stale snapshot
// never hides a concurrent edit.
//
// Required columns missing from the header are appended to the schema and
// read as "" in every record; missing cells read as "". A sheet without data
// rows yields an empty table that still carries the required columns.
func (s *Store) Load(ctx context.Context) (*models.Table, error) {
	sh, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := sh.Rows(ctx)
	if err != nil {
		s.logger.Error(ctx, "load failed", "sheet", sh.Title(), "error", err)
		return nil, classify("load", err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
		rows = rows[1:]
	}

	columns, backfilled := s.columns(header)

	table := &models.Table{Columns: columns, Records: make([]models.Record, len(rows))}
	for i, row := range rows {
		fields := make(map[string]string, len(columns))
		for j, col := range header {
			if col == "" {
				continue
			}
			if _, seen := fields[col]; seen {
				continue
			}
			if j < len(row) {
				fields[col] = row[j]
			} else {
				fields[col] = ""
			}
		}
		for _, col := range backfilled {
			fields[col] = ""
		}
		table.Records[i] = models.Record{Index: i, Fields: fields}
	}

	if len(backfilled) > 0 {
		s.logger.Warn(ctx, "required columns missing from sheet", "sheet", sh.Title(), "columns", backfilled)
	}
	s.logger.Info(ctx, "records loaded", "sheet", sh.Title(), "rows", len(table.Records))
	return table, nil
}

// columns returns the header's named columns followed by the required columns
// it lacks, and the list of those backfilled columns.
func (s *Store) columns(header []string) ([]string, []string) {
	var columns []string
	present := map[string]bool{}
	for _, h := range header {
		if h == "" || present[h] {
			continue
		}
		present[h] = true
		columns = append(columns, h)
	}

	var backfilled []string
	for _, req := range s.schema.Required() {
		if !present[req] {
			present[req] = true
			columns = append(columns, req)
			backfilled = append(backfilled, req)
		}
	}
	return columns, backfilled
}
