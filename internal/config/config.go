// Package config handles configuration for the recorder CLI: defaults, a JSON
// overlay, environment variables (optionally read from a .env file) and
// command-line flags, applied in that order.
package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/interviewkeeper/internal/backup"
	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
)

const (
	BackendSheets   = "gsheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds runtime settings for the recorder.
//
// Fields:
//   - SecretsFile: TOML, YAML or JSON file holding the credential bundle.
//   - Secrets: the same bundle inline, as JSON or TOML text; wins over SecretsFile.
//   - Spreadsheet: resource locator; overrides the one inside the secrets.
//   - Worksheet: exact title of the interview sheet.
//   - Backend: one of gsheets, postgres, sqlite, memory.
//   - DatabaseDSN: DSN for the postgres and sqlite backends.
//   - SeedFile: CSV imported into the sheet at startup (sql and memory backends).
//   - Columns: overrides for the required column names.
//   - S3: bucket settings for encrypted snapshot export.
//   - SnapshotDir: local directory for snapshot export when no bucket is set.
type Config struct {
	SecretsFile string
	Secrets     string
	Spreadsheet string
	Worksheet   string
	Backend     string
	DatabaseDSN string
	SeedFile    string
	EnvFile     string

	TimeZone   string
	LegacyKey  string
	CaseFold   bool
	Duplicates string
	Columns    models.Schema

	LogFormat string
	LogLevel  string

	S3          backup.S3Config
	SnapshotDir string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.SecretsFile = "secrets.toml"
	c.Worksheet = "Interviews"
	c.Backend = BackendSheets
	c.DatabaseDSN = "file:interviewkeeper.db"
	c.EnvFile = ".env"
	c.TimeZone = common.DefaultTimeZone
	c.LegacyKey = "1-1"
	c.Duplicates = "first"
	c.Columns = models.DefaultSchema()
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.S3.Region = "us-east-1"
}

// Validate checks the values no later stage can recover from.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSheets, BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Worksheet == "" {
		return fmt.Errorf("worksheet name is empty")
	}
	return nil
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Load applies defaults, then the JSON file named by -c/-config, then
// environment variables, then flags. Later sources take precedence.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
