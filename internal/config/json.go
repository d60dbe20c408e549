package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/interviewkeeper/internal/backup"
	"github.com/dmitrijs2005/interviewkeeper/internal/flagx"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell an
// absent key apart from an explicit zero value.
type JsonConfig struct {
	SecretsFile string           `json:"secrets_file"`
	Spreadsheet string           `json:"spreadsheet"`
	Worksheet   string           `json:"worksheet"`
	Backend     string           `json:"backend"`
	DatabaseDSN string           `json:"database_dsn"`
	SeedFile    string           `json:"seed_file"`
	EnvFile     string           `json:"env_file"`
	TimeZone    string           `json:"time_zone"`
	LegacyKey   string           `json:"legacy_key"`
	CaseFold    *bool            `json:"case_fold"`
	Duplicates  string           `json:"duplicates"`
	Columns     models.Schema    `json:"columns"`
	LogFormat   string           `json:"log_format"`
	LogLevel    string           `json:"log_level"`
	S3          *backup.S3Config `json:"s3"`
	SnapshotDir string           `json:"snapshot_dir"`
}

// parseJson overlays the file named by -c or -config onto config. Empty
// values in the file leave the current value alone. Without either flag
// nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&config.SecretsFile, c.SecretsFile)
	set(&config.Spreadsheet, c.Spreadsheet)
	set(&config.Worksheet, c.Worksheet)
	set(&config.Backend, c.Backend)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SeedFile, c.SeedFile)
	set(&config.EnvFile, c.EnvFile)
	set(&config.TimeZone, c.TimeZone)
	set(&config.LegacyKey, c.LegacyKey)
	set(&config.Duplicates, c.Duplicates)
	set(&config.LogFormat, c.LogFormat)
	set(&config.LogLevel, c.LogLevel)
	set(&config.SnapshotDir, c.SnapshotDir)
	if c.CaseFold != nil {
		config.CaseFold = *c.CaseFold
	}
	config.Columns = config.Columns.Merge(c.Columns)
	if c.S3 != nil {
		set(&config.S3.Region, c.S3.Region)
		set(&config.S3.Endpoint, c.S3.Endpoint)
		set(&config.S3.Bucket, c.S3.Bucket)
		set(&config.S3.AccessKey, c.S3.AccessKey)
		set(&config.S3.SecretKey, c.S3.SecretKey)
	}
	return nil
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
