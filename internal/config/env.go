package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the recorder reads.
const EnvPrefix = "INTERVIEWKEEPER_"

// parseEnv overlays INTERVIEWKEEPER_* variables onto config. Variables are
// looked up in the process environment first, then in config.EnvFile if it
// exists. The .env path itself comes from the defaults or the JSON file;
// this layer runs before flags, so no flag or variable can move it.
//
// Column overrides use INTERVIEWKEEPER_COLUMN_<FIELD>, for example
// INTERVIEWKEEPER_COLUMN_ANSWERS.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	file := map[string]string{}
	if config.EnvFile != "" {
		m, err := godotenv.Read(config.EnvFile)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read env file %s: %w", config.EnvFile, err)
		}
	}

	get := func(name string) (string, bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			return v, true
		}
		v, ok := file[EnvPrefix+name]
		return v, ok
	}

	strs := map[string]*string{
		"SECRETS_FILE": &config.SecretsFile,
		"SECRETS":      &config.Secrets,
		"SPREADSHEET":  &config.Spreadsheet,
		"WORKSHEET":    &config.Worksheet,
		"BACKEND":      &config.Backend,
		"DATABASE_DSN": &config.DatabaseDSN,
		"SEED_FILE":    &config.SeedFile,
		"TIME_ZONE":    &config.TimeZone,
		"DUPLICATES":   &config.Duplicates,
		"LEGACY_KEY":   &config.LegacyKey,
		"LOG_FORMAT":   &config.LogFormat,
		"LOG_LEVEL":    &config.LogLevel,

		"COLUMN_REGION":        &config.Columns.Region,
		"COLUMN_NAME":          &config.Columns.Name,
		"COLUMN_TITLE":         &config.Columns.Title,
		"COLUMN_TITLE_CODE":    &config.Columns.TitleCode,
		"COLUMN_UNIT":          &config.Columns.Unit,
		"COLUMN_DUTY":          &config.Columns.Duty,
		"COLUMN_DUTY_CATEGORY": &config.Columns.DutyCategory,
		"COLUMN_WILLINGNESS":   &config.Columns.Willingness,
		"COLUMN_ANSWERS":       &config.Columns.Answers,
		"COLUMN_SAVED_AT":      &config.Columns.SavedAt,
		"S3_BUCKET":            &config.S3.Bucket,
		"S3_REGION":            &config.S3.Region,
		"S3_ENDPOINT":          &config.S3.Endpoint,
		"S3_ACCESS_KEY":        &config.S3.AccessKey,
		"S3_SECRET_KEY":        &config.S3.SecretKey,
		"SNAPSHOT_DIR":         &config.SnapshotDir,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := get("CASE_FOLD"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCASE_FOLD: %w", EnvPrefix, err)
		}
		config.CaseFold = b
	}
	return nil
}
