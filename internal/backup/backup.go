// Package backup exports passphrase-sealed snapshots of a loaded record
// table to S3-compatible object storage.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/interviewkeeper/internal/cryptox"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

var ErrNotConfigured = errors.New("snapshot export is not configured")

// S3Config addresses the bucket snapshots are written to. Endpoint may point
// at any S3-compatible server such as MinIO.
type S3Config struct {
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// Enabled reports whether enough is set to attempt an upload.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Uploader is the subset of *s3.Client used by Exporter.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Uploader builds an S3 client for cfg. Static credentials are used
// when an access key is set, otherwise the default AWS credential chain.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Snapshot is the sealed payload.
type Snapshot struct {
	Sheet      string              `json:"sheet"`
	ExportedAt time.Time           `json:"exported_at"`
	Columns    []string            `json:"columns"`
	Rows       []map[string]string `json:"rows"`
}

// Table rebuilds the loaded table. Record indexes follow snapshot order.
func (s *Snapshot) Table() *models.Table {
	t := &models.Table{Columns: s.Columns, Records: make([]models.Record, len(s.Rows))}
	for i, r := range s.Rows {
		t.Records[i] = models.Record{Index: i, Fields: r}
	}
	return t
}

type Exporter struct {
	uploader Uploader
	bucket   string
	logger   logging.Logger
	now      func() time.Time
}

func NewExporter(uploader Uploader, bucket string, logger logging.Logger) *Exporter {
	return &Exporter{uploader: uploader, bucket: bucket, logger: logger, now: time.Now}
}

// StorageKey returns a fresh object key under a date prefix.
func StorageKey(d time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%v.bin", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Export seals table with passphrase and uploads it. It returns the object
// key.
func (e *Exporter) Export(ctx context.Context, sheet string, table *models.Table, passphrase []byte) (string, error) {
	if len(passphrase) == 0 {
		return "", errors.New("empty passphrase")
	}

	now := e.now().UTC()
	snap := Snapshot{Sheet: sheet, ExportedAt: now, Columns: table.Columns}
	snap.Rows = make([]map[string]string, len(table.Records))
	for i, r := range table.Records {
		snap.Rows[i] = r.Fields
	}

	blob, err := cryptox.Seal(snap, passphrase)
	if err != nil {
		return "", fmt.Errorf("seal snapshot: %w", err)
	}

	key := StorageKey(now)
	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(blob),
		ContentLength: aws.Int64(int64(len(blob))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		e.logger.Error(ctx, "snapshot upload failed", "bucket", e.bucket, "key", key, "error", err)
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	e.logger.Info(ctx, "snapshot exported", "bucket", e.bucket, "key", key, "rows", len(snap.Rows), "bytes", len(blob))
	return key, nil
}

// Open decrypts a blob produced by Export.
func Open(blob, passphrase []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := cryptox.Open(blob, passphrase, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
