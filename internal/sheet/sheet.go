// Package sheet defines the contract between the record store and the
// tabular backends it runs on: a Connector yields a Handle, a Handle selects
// a Sheet by title, and a Sheet reads rows and updates single cells.
//
// Rows and columns are 1-based, matching spreadsheet addressing.
package sheet

import "context"

// Connector opens a handle to a tabular resource.
type Connector interface {
	Connect(ctx context.Context) (Handle, error)
}

// Handle is a live connection to one spreadsheet-like resource.
type Handle interface {
	// SelectSheet returns the sheet whose title equals name exactly, or an
	// error wrapping common.ErrSheetNotFound.
	SelectSheet(ctx context.Context, name string) (Sheet, error)
	Close() error
}

// Sheet is a single tab of a spreadsheet.
type Sheet interface {
	Title() string

	// Rows returns every row, header first, in one read. Missing cells are
	// returned as "" and rows may have different lengths.
	Rows(ctx context.Context) ([][]string, error)

	// Header returns the first row only.
	Header(ctx context.Context) ([]string, error)

	// UpdateCell writes value into a single cell and touches nothing else.
	UpdateCell(ctx context.Context, row, col int, value string) error
}
