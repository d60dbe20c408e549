package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/interviewkeeper/internal/backup"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	c.EnvFile = ""
	return c
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "secrets.toml", c.SecretsFile)
	assert.Equal(t, "Interviews", c.Worksheet)
	assert.Equal(t, BackendSheets, c.Backend)
	assert.Equal(t, "Asia/Seoul", c.TimeZone)
	assert.Equal(t, "1-1", c.LegacyKey)
	assert.Equal(t, "first", c.Duplicates)
	assert.Equal(t, models.DefaultSchema(), c.Columns)
	assert.False(t, c.CaseFold)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load(nil, noEnv)
	require.NoError(t, err)

	want := &Config{}
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeTempJSON(t, map[string]any{
		"worksheet":    "FromJSON",
		"backend":      "sqlite",
		"database_dsn": "file:json.db",
		"case_fold":    true,
		"columns":      map[string]string{"answers": "responses"},
		"s3":           map[string]string{"bucket": "json-bucket"},
	})

	env := envMap(map[string]string{
		"INTERVIEWKEEPER_WORKSHEET":     "FromEnv",
		"INTERVIEWKEEPER_DATABASE_DSN":  "file:env.db",
		"INTERVIEWKEEPER_S3_ACCESS_KEY": "ak",
	})

	c, err := Load([]string{"-c", path, "-w", "FromFlag", "-u", "error", "positional"}, env)
	require.NoError(t, err)

	assert.Equal(t, "FromFlag", c.Worksheet)
	assert.Equal(t, "file:env.db", c.DatabaseDSN)
	assert.Equal(t, BackendSQLite, c.Backend)
	assert.True(t, c.CaseFold)
	assert.Equal(t, "error", c.Duplicates)
	assert.Equal(t, "responses", c.Columns.Answers)
	assert.Equal(t, "name", c.Columns.Name)
	assert.Equal(t, backup.S3Config{Region: "us-east-1", Bucket: "json-bucket", AccessKey: "ak"}, c.S3)
}

func TestParseJson_Errors(t *testing.T) {
	c := defaults()
	assert.Error(t, parseJson(c, []string{"-config", filepath.Join(t.TempDir(), "missing.json")}))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
	assert.Error(t, parseJson(c, []string{"-c", bad}))

	require.NoError(t, parseJson(c, nil))
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"INTERVIEWKEEPER_SECRETS_FILE=/etc/ik/secrets.yaml\n"+
			"INTERVIEWKEEPER_CASE_FOLD=true\n"+
			"INTERVIEWKEEPER_WORKSHEET=FromFile\n"), 0o600))

	c := defaults()
	c.EnvFile = envFile
	require.NoError(t, parseEnv(c, envMap(map[string]string{"INTERVIEWKEEPER_WORKSHEET": "FromProcess"})))

	assert.Equal(t, "/etc/ik/secrets.yaml", c.SecretsFile)
	assert.True(t, c.CaseFold)
	assert.Equal(t, "FromProcess", c.Worksheet)
}

func TestParseEnv_AllSettings(t *testing.T) {
	c := defaults()
	require.NoError(t, parseEnv(c, envMap(map[string]string{
		"INTERVIEWKEEPER_LEGACY_KEY":     "0-0",
		"INTERVIEWKEEPER_LOG_FORMAT":     "json",
		"INTERVIEWKEEPER_SEED_FILE":      "seed.csv",
		"INTERVIEWKEEPER_COLUMN_ANSWERS": "responses",
		"INTERVIEWKEEPER_COLUMN_UNIT":    "dept",
		"INTERVIEWKEEPER_COLUMN_NAME":    "",
	})))

	assert.Equal(t, "0-0", c.LegacyKey)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "seed.csv", c.SeedFile)
	assert.Equal(t, "responses", c.Columns.Answers)
	assert.Equal(t, "dept", c.Columns.Unit)
	assert.Equal(t, "name", c.Columns.Name)
}

func TestParseEnv_Errors(t *testing.T) {
	c := defaults()
	assert.Error(t, parseEnv(c, envMap(map[string]string{"INTERVIEWKEEPER_CASE_FOLD": "maybe"})))

	c = defaults()
	c.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	assert.NoError(t, parseEnv(c, noEnv))
}

func TestParseFlags(t *testing.T) {
	c := defaults()
	args := []string{
		"-s", "s.yaml", "-l", "https://docs.google.com/spreadsheets/d/abc/edit",
		"-b", "memory", "-seed", "seed.csv", "-z", "UTC", "-k", "legacy",
		"-i", "-log-format", "json", "-log-level=debug",
		"-s3-bucket", "b", "-s3-endpoint", "http://minio:9000", "-unknown", "x",
	}
	require.NoError(t, parseFlags(c, args))

	want := defaults()
	want.SecretsFile = "s.yaml"
	want.Spreadsheet = "https://docs.google.com/spreadsheets/d/abc/edit"
	want.Backend = BackendMemory
	want.SeedFile = "seed.csv"
	want.TimeZone = "UTC"
	want.LegacyKey = "legacy"
	want.CaseFold = true
	want.LogFormat = "json"
	want.LogLevel = "debug"
	want.S3.Bucket = "b"
	want.S3.Endpoint = "http://minio:9000"
	assert.Empty(t, cmp.Diff(want, c))
}

func TestValidate(t *testing.T) {
	c := defaults()
	require.NoError(t, c.Validate())

	c.Backend = "excel"
	assert.ErrorContains(t, c.Validate(), "unknown backend")

	c = defaults()
	c.Worksheet = ""
	assert.Error(t, c.Validate())
}
