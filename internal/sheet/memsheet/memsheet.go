// Package memsheet is an in-memory sheet backend. It backs the "memory"
// backend of the CLI and the record store tests.
package memsheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet"
)

// Book is a set of named sheets.
type Book struct {
	mu     sync.Mutex
	sheets map[string]*Sheet
	order  []string

	// ConnectErr, when set, is returned by Connect.
	ConnectErr error
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{sheets: map[string]*Sheet{}}
}

// Add creates or replaces the sheet title with a copy of rows.
func (b *Book) Add(title string, rows [][]string) *Sheet {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Sheet{title: title, rows: cloneRows(rows)}
	if _, ok := b.sheets[title]; !ok {
		b.order = append(b.order, title)
	}
	b.sheets[title] = s
	return s
}

// Connect implements sheet.Connector.
func (b *Book) Connect(ctx context.Context) (sheet.Handle, error) {
	if b.ConnectErr != nil {
		return nil, b.ConnectErr
	}
	return b, nil
}

// SelectSheet implements sheet.Handle.
func (b *Book) SelectSheet(ctx context.Context, name string) (sheet.Sheet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", common.ErrSheetNotFound, name, b.order)
	}
	return s, nil
}

// Close implements sheet.Handle.
func (b *Book) Close() error { return nil }

// Sheet is an in-memory grid.
type Sheet struct {
	mu    sync.Mutex
	title string
	rows  [][]string

	// UpdateErr, when set, is returned by UpdateCell.
	UpdateErr error
	// ReadErr, when set, is returned by Rows and Header.
	ReadErr error
	// Updates counts successful UpdateCell calls.
	Updates int
}

func (s *Sheet) Title() string { return s.title }

func (s *Sheet) Rows(ctx context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return cloneRows(s.rows), nil
}

func (s *Sheet) Header(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if len(s.rows) == 0 {
		return nil, nil
	}
	return append([]string(nil), s.rows[0]...), nil
}

// UpdateCell grows the grid as needed, like a spreadsheet does.
func (s *Sheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	s.rows[row-1] = sheet.PadRow(s.rows[row-1], col)
	s.rows[row-1][col-1] = value
	s.Updates++
	return nil
}

// Cell returns the value at row, col or "" outside the grid.
func (s *Sheet) Cell(row, col int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 1 || row > len(s.rows) || col < 1 || col > len(s.rows[row-1]) {
		return ""
	}
	return s.rows[row-1][col-1]
}

// Snapshot returns a copy of the grid.
func (s *Sheet) Snapshot() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.rows)
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
