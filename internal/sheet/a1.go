package sheet

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-based column index to its A1 letters
// (1 → A, 27 → AA). It returns "" for col < 1.
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// QuoteTitle quotes a sheet title for use in an A1 range.
func QuoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// CellRef returns the A1 reference of a single cell, e.g. 'Interviews'!C5.
func CellRef(title string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", QuoteTitle(title), ColumnLetter(col), row)
}

// PadRow returns row extended with "" up to width cells.
func PadRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
