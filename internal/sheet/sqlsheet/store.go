// Package sqlsheet stores sheets as a grid of cells in PostgreSQL (pgx) or
// SQLite. It lets the record store run against a database instead of a
// hosted spreadsheet, with the same single-cell write semantics.
package sqlsheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/dbx"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet/sqlsheet/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Store is a sheet.Connector and sheet.Handle over a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// NewStore wraps an open database. Migrations are not run.
func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

// gooseUp is a seam for testing migrations.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Open connects to dsn with the dialect's driver and applies migrations.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	s := NewStore(db, d)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

// RunMigrations applies the embedded goose migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(s.dialect.Goose); err != nil {
		return err
	}
	return gooseUp(ctx, s.db, ".")
}

// Connect checks the database is reachable.
func (s *Store) Connect(ctx context.Context) (sheet.Handle, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return s, nil
}

func (s *Store) SelectSheet(ctx context.Context, name string) (sheet.Sheet, error) {
	var title string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT title FROM sheets WHERE title = ?`), name).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", common.ErrSheetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("select sheet: %w", err)
	}
	return &Sheet{db: s.db, dialect: s.dialect, title: title}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Import creates or replaces the sheet title with rows in one transaction.
// Empty cells are not stored.
func (s *Store) Import(ctx context.Context, title string, rows [][]string) error {
	d := s.dialect
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, d.rebind(`INSERT INTO sheets (title) VALUES (?) ON CONFLICT (title) DO NOTHING`), title); err != nil {
			return fmt.Errorf("insert sheet: %w", err)
		}
		if _, err := tx.ExecContext(ctx, d.rebind(`DELETE FROM sheet_cells WHERE title = ?`), title); err != nil {
			return fmt.Errorf("clear sheet: %w", err)
		}
		for i, row := range rows {
			for j, v := range row {
				if v == "" {
					continue
				}
				if _, err := tx.ExecContext(ctx, d.rebind(`INSERT INTO sheet_cells (title, row_num, col_num, value) VALUES (?, ?, ?, ?)`),
					title, i+1, j+1, v); err != nil {
					return fmt.Errorf("insert cell: %w", err)
				}
			}
		}
		return nil
	})
}

// Sheet is one stored sheet.
type Sheet struct {
	db      dbx.DBTX
	dialect Dialect
	title   string
}

func (s *Sheet) Title() string { return s.title }

func (s *Sheet) Rows(ctx context.Context) ([][]string, error) {
	return s.query(ctx, `SELECT row_num, col_num, value FROM sheet_cells WHERE title = ? ORDER BY row_num, col_num`)
}

func (s *Sheet) Header(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, `SELECT row_num, col_num, value FROM sheet_cells WHERE title = ? AND row_num = 1 ORDER BY col_num`)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *Sheet) query(ctx context.Context, q string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(q), s.title)
	if err != nil {
		return nil, fmt.Errorf("failed to select cells: %w", err)
	}
	defer rows.Close()

	var grid [][]string
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, err
		}
		for len(grid) < r {
			grid = append(grid, nil)
		}
		grid[r-1] = sheet.PadRow(grid[r-1], c)
		grid[r-1][c-1] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}

// UpdateCell upserts exactly one cell.
func (s *Sheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	q := `INSERT INTO sheet_cells (title, row_num, col_num, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (title, row_num, col_num) DO UPDATE SET value = excluded.value`
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(q), s.title, row, col, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
