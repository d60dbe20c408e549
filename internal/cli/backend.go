package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/credentials"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet/gsheets"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet/memsheet"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet/sqlsheet"
)

// newConnector returns the connector for cfg.Backend. SQL and memory
// backends are seeded from cfg.SeedFile when it is set.
func newConnector(ctx context.Context, cfg *config.Config) (sheet.Connector, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		c := gsheets.NewConnector(credentials.NewCache(secretsLoader(cfg)))
		c.Locator = cfg.Spreadsheet
		return c, nil

	case config.BackendPostgres, config.BackendSQLite:
		d, err := sqlsheet.DialectFor(cfg.Backend)
		if err != nil {
			return nil, err
		}
		st, err := sqlsheet.Open(ctx, d, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if cfg.SeedFile != "" {
			rows, err := ReadSeed(cfg.SeedFile)
			if err == nil {
				err = st.Import(ctx, cfg.Worksheet, rows)
			}
			if err != nil {
				_ = st.Close()
				return nil, err
			}
		}
		return st, nil

	case config.BackendMemory:
		rows := [][]string{cfg.Columns.Required()}
		if cfg.SeedFile != "" {
			var err error
			if rows, err = ReadSeed(cfg.SeedFile); err != nil {
				return nil, err
			}
		}
		book := memsheet.NewBook()
		book.Add(cfg.Worksheet, rows)
		return book, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// secretsLoader reads the inline secrets if set, otherwise the secrets file.
// A locator from the config is added as a fallback so that secrets without
// one still resolve; the connector applies it as an override.
func secretsLoader(cfg *config.Config) func() (map[string]any, error) {
	return func() (map[string]any, error) {
		var (
			m   map[string]any
			err error
		)
		if cfg.Secrets != "" {
			m, err = credentials.LoadString(cfg.Secrets)
		} else {
			m, err = credentials.LoadFile(cfg.SecretsFile)
		}
		if err != nil {
			return nil, err
		}
		if cfg.Spreadsheet != "" {
			if _, ok := m["spreadsheet"]; !ok {
				m["spreadsheet"] = cfg.Spreadsheet
			}
		}
		return m, nil
	}
}

// ReadSeed reads a CSV file whose first record is the header.
func ReadSeed(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return rows, nil
}
