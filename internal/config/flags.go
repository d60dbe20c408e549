package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/interviewkeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-s string   secrets file
//	-l string   spreadsheet URL or id
//	-w string   worksheet title
//	-b string   backend: gsheets, postgres, sqlite, memory
//	-d string   database DSN
//	-seed path  CSV imported at startup
//	-z string   time zone for save timestamps
//	-k string   legacy answer key
//	-i          case-insensitive search
//	-u string   duplicate policy: first or error
//	-log-format text or json
//	-log-level  debug, info, warn, error
//	-s3-bucket, -s3-region, -s3-endpoint  snapshot export target
//	-snapshot-dir  local snapshot directory when no bucket is set
func parseFlags(config *Config, args []string) error {
	names := []string{"-s", "-l", "-w", "-b", "-d", "-seed", "-z", "-k", "-i", "-u",
		"-log-format", "-log-level", "-s3-bucket", "-s3-region", "-s3-endpoint", "-snapshot-dir"}
	args = flagx.FilterArgs(flagx.BoolFlags(args, "-i"), names)

	fs := flag.NewFlagSet("recorder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.SecretsFile, "s", config.SecretsFile, "secrets file")
	fs.StringVar(&config.Spreadsheet, "l", config.Spreadsheet, "spreadsheet URL or id")
	fs.StringVar(&config.Worksheet, "w", config.Worksheet, "worksheet title")
	fs.StringVar(&config.Backend, "b", config.Backend, "backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SeedFile, "seed", config.SeedFile, "CSV seed file")
	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "time zone")
	fs.StringVar(&config.LegacyKey, "k", config.LegacyKey, "legacy answer key")
	fs.BoolVar(&config.CaseFold, "i", config.CaseFold, "case-insensitive search")
	fs.StringVar(&config.Duplicates, "u", config.Duplicates, "duplicate policy")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.S3.Bucket, "s3-bucket", config.S3.Bucket, "S3 bucket")
	fs.StringVar(&config.S3.Region, "s3-region", config.S3.Region, "S3 region")
	fs.StringVar(&config.S3.Endpoint, "s3-endpoint", config.S3.Endpoint, "S3 base endpoint")

	fs.StringVar(&config.SnapshotDir, "snapshot-dir", config.SnapshotDir, "local snapshot directory")

	return fs.Parse(args)
}
