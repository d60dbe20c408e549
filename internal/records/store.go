// Package records is the record store: it opens the interview sheet once,
// loads it into a table of records, resolves a user's choice back to one
// record and its sheet row, and saves a record's answers without touching
// any other cell.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/dmitrijs2005/interviewkeeper/internal/answers"
	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet"
)

// Store is the record store. Create it with New and call Open once; the
// connection is then reused by every Load and Save.
//
// Store does no locking around the backend and no optimistic concurrency
// checks: two sessions saving the same record race, and the later single-cell
// write wins for that cell only.
type Store struct {
	connector  sheet.Connector
	sheetName  string
	schema     models.Schema
	codec      answers.Codec
	logger     logging.Logger
	now        func() time.Time
	loc        *time.Location
	fold       bool
	duplicates DuplicatePolicy

	mu     sync.Mutex
	handle sheet.Handle
	sheet  sheet.Sheet
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l logging.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock replaces time.Now for save timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithLocation sets the zone save timestamps are rendered in.
func WithLocation(loc *time.Location) Option { return func(s *Store) { s.loc = loc } }

func WithCodec(c answers.Codec) Option { return func(s *Store) { s.codec = c } }

func WithSchema(schema models.Schema) Option { return func(s *Store) { s.schema = schema } }

// WithCaseFolding makes Filter ignore case differences.
func WithCaseFolding(fold bool) Option { return func(s *Store) { s.fold = fold } }

func WithDuplicatePolicy(p DuplicatePolicy) Option { return func(s *Store) { s.duplicates = p } }

// New returns a Store for the sheet titled sheetName.
func New(connector sheet.Connector, sheetName string, opts ...Option) *Store {
	s := &Store{
		connector: connector,
		sheetName: sheetName,
		schema:    models.DefaultSchema(),
		codec:     answers.NewCodec(""),
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.loc == nil {
		loc, err := time.LoadLocation(common.DefaultTimeZone)
		if err != nil {
			loc = time.UTC
		}
		s.loc = loc
	}
	return s
}

// Schema returns the required column names the store works with.
func (s *Store) Schema() models.Schema {
	return s.schema
}

// Open connects and selects the sheet. Once it has succeeded, later calls
// return immediately. A failed Open may be called again.
func (s *Store) Open(ctx context.Context) error {
	_, err := s.open(ctx)
	return err
}

func (s *Store) open(ctx context.Context) (sheet.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sheet != nil {
		return s.sheet, nil
	}

	h, err := s.connector.Connect(ctx)
	if err != nil {
		s.logger.Error(ctx, "connect failed", "error", err)
		return nil, classify("connect", err)
	}

	sh, err := h.SelectSheet(ctx, s.sheetName)
	if err != nil {
		_ = h.Close()
		s.logger.Error(ctx, "select sheet failed", "sheet", s.sheetName, "error", err)
		return nil, classify("select sheet", err)
	}

	s.handle, s.sheet = h, sh
	s.logger.Info(ctx, "sheet opened", "sheet", sh.Title())
	return sh, nil
}

// Close releases the backend handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle, s.sheet = nil, nil
	return err
}

// Answers decodes the answers cell of rec.
func (s *Store) Answers(rec models.Record) models.Answers {
	return s.codec.Decode(rec.Get(s.schema.Answers))
}

// classify assigns a Kind to backend errors that do not carry one yet.
func classify(op string, err error) error {
	if common.KindOf(err) != common.KindUnknown {
		return err
	}
	switch {
	case errors.Is(err, common.ErrSheetNotFound),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrColumnAbsent),
		errors.Is(err, common.ErrNotFound):
		return common.ConfigError(op, err)
	case errors.Is(err, common.ErrUnavailable):
		return common.TransientError(op, err)
	default:
		return common.TransientError(op, fmt.Errorf("%w: %v", common.ErrUnavailable, err))
	}
}
