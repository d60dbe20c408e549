package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/answers"
	"github.com/dmitrijs2005/interviewkeeper/internal/backup"
	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/filex"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
	"github.com/google/uuid"
)

// RecordStore is the part of records.Store the App drives.
type RecordStore interface {
	Load(ctx context.Context) (*models.Table, error)
	Filter(table *models.Table, token string) []models.Record
	Label(r models.Record) string
	Select(ctx context.Context, table *models.Table, name, unit string) (records.Selection, error)
	Answers(rec models.Record) models.Answers
	Save(ctx context.Context, row int, a models.Answers) (records.SaveResult, error)
	Schema() models.Schema
	Close() error
}

// Exporter uploads sealed snapshots.
type Exporter interface {
	Export(ctx context.Context, sheet string, table *models.Table, passphrase []byte) (string, error)
}

type App struct {
	store     RecordStore
	exporter  Exporter
	sheetName string
	logger    logging.Logger
	out       io.Writer

	table    *models.Table
	listed   []models.Record
	selected *records.Selection
	draft    models.Answers
	dirty    bool
}

// NewApp builds the backend named by c, opens the record store and, when a
// bucket or a snapshot directory is configured, the snapshot exporter.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, out io.Writer) (*App, error) {
	logger = logger.With("session", uuid.NewString())

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	policy, err := records.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return nil, err
	}

	conn, err := newConnector(ctx, c)
	if err != nil {
		return nil, err
	}

	store := records.New(conn, c.Worksheet,
		records.WithLogger(logger),
		records.WithLocation(loc),
		records.WithCodec(answers.NewCodec(c.LegacyKey)),
		records.WithSchema(c.Columns),
		records.WithCaseFolding(c.CaseFold),
		records.WithDuplicatePolicy(policy),
	)
	if err := store.Open(ctx); err != nil {
		return nil, err
	}

	app := newApp(store, c.Worksheet, logger, out)

	switch {
	case c.S3.Enabled():
		client, err := backup.NewS3Uploader(ctx, c.S3)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		app.exporter = backup.NewExporter(client, c.S3.Bucket, logger)
	case c.SnapshotDir != "":
		dir, err := filex.EnsureDir(c.SnapshotDir)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		app.exporter = backup.NewExporter(backup.DirUploader{Dir: dir}, dir, logger)
	}
	return app, nil
}

func newApp(store RecordStore, sheetName string, logger logging.Logger, out io.Writer) *App {
	return &App{store: store, sheetName: sheetName, logger: logger, out: out}
}

// Run loads the sheet and serves the REPL on in until exit or EOF.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	defer a.store.Close()

	fmt.Fprintf(a.out, "Interview recorder, sheet %q (type 'help' for commands)\n", a.sheetName)
	if err := a.Reload(ctx, nil); err != nil {
		return err
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(in))
	return nil
}

func (a *App) status() string {
	if a.selected == nil {
		return a.sheetName
	}
	s := a.sheetName + ": " + a.store.Label(a.selected.Record)
	if a.dirty {
		s += " *"
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
