// Package models holds the in-memory shapes of interview records loaded from
// a sheet: the required column schema, the loaded table and single records.
package models

// HeaderRows is the number of rows above the first data record.
const HeaderRows = 1

// RowOffset converts a zero-based data-row index into the 1-based row number
// of the backing sheet: one for 1-based addressing plus the header row.
const RowOffset = HeaderRows + 1

// Answers maps question keys such as "3-2" to free-text answers.
type Answers map[string]string

// Clone returns an independent copy of a. A nil map clones to an empty one.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Record is one interviewee row. Fields holds every column of the sheet,
// including required columns that were backfilled with "".
type Record struct {
	Index  int
	Fields map[string]string
}

// Row returns the 1-based sheet row the record was loaded from.
func (r Record) Row() int {
	return r.Index + RowOffset
}

// Get returns the value of column, or "" if the record has no such column.
func (r Record) Get(column string) string {
	return r.Fields[column]
}

// Table is a snapshot of a sheet. Columns preserves the header order and ends
// with any required columns the header was missing.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether column is part of the table's schema.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
