package sqlsheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(context.Background(), SQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_ImportReadAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	require.NoError(t, s.Import(ctx, "Interviews", [][]string{
		{"name", "unit", "answers"},
		{"Kim", "HR", ""},
		{"Lee", "", `{"1-1":"x"}`},
	}))

	h, err := s.Connect(ctx)
	require.NoError(t, err)

	sh, err := h.SelectSheet(ctx, "Interviews")
	require.NoError(t, err)
	assert.Equal(t, "Interviews", sh.Title())

	rows, err := sh.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "unit", "answers"},
		{"Kim", "HR"},
		{"Lee", "", `{"1-1":"x"}`},
	}, rows)

	header, err := sh.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "unit", "answers"}, header)

	require.NoError(t, sh.UpdateCell(ctx, 2, 3, `{"2-1":"새 답변"}`))
	require.NoError(t, sh.UpdateCell(ctx, 3, 3, `{}`))

	rows, err = sh.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kim", "HR", `{"2-1":"새 답변"}`}, rows[1])
	assert.Equal(t, []string{"Lee", "", `{}`}, rows[2])
}

func TestSQLite_SelectMissingSheet(t *testing.T) {
	s := openSQLite(t)

	_, err := s.SelectSheet(context.Background(), "Nope")
	assert.ErrorIs(t, err, common.ErrSheetNotFound)
}

func TestSQLite_ImportReplaces(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	require.NoError(t, s.Import(ctx, "S", [][]string{{"a", "b"}, {"1", "2"}}))
	require.NoError(t, s.Import(ctx, "S", [][]string{{"a"}}))

	sh, err := s.SelectSheet(ctx, "S")
	require.NoError(t, err)
	rows, err := sh.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}}, rows)
}

func TestSQLite_EmptySheetHeader(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	require.NoError(t, s.Import(ctx, "Empty", nil))

	sh, err := s.SelectSheet(ctx, "Empty")
	require.NoError(t, err)

	header, err := sh.Header(ctx)
	require.NoError(t, err)
	assert.Nil(t, header)
}

func newMockSheet(t *testing.T) (*Sheet, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Sheet{db: db, dialect: Postgres, title: "Interviews"}, mock
}

var upsertCell = regexp.QuoteMeta(`INSERT INTO sheet_cells (title, row_num, col_num, value) VALUES ($1, $2, $3, $4)`)

func TestUpdateCell_Postgres(t *testing.T) {
	sh, mock := newMockSheet(t)

	mock.ExpectExec(upsertCell).
		WithArgs("Interviews", 5, 9, "{}").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, sh.UpdateCell(context.Background(), 5, 9, "{}"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCell_DBError(t *testing.T) {
	sh, mock := newMockSheet(t)

	mock.ExpectExec(upsertCell).
		WithArgs("Interviews", 5, 9, "{}").
		WillReturnError(errors.New("db is down"))

	err := sh.UpdateCell(context.Background(), 5, 9, "{}")
	assert.ErrorContains(t, err, "db error: db is down")
}

func TestUpdateCell_UnexpectedRowsAffected(t *testing.T) {
	sh, mock := newMockSheet(t)

	mock.ExpectExec(upsertCell).
		WithArgs("Interviews", 5, 9, "{}").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := sh.UpdateCell(context.Background(), 5, 9, "{}")
	assert.ErrorContains(t, err, "unexpected rows affected: 2")
}

func TestRows_QueryError(t *testing.T) {
	sh, mock := newMockSheet(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT row_num, col_num, value FROM sheet_cells WHERE title = $1`)).
		WithArgs("Interviews").
		WillReturnError(errors.New("db err"))

	_, err := sh.Rows(context.Background())
	assert.ErrorContains(t, err, "failed to select cells: db err")
}

func TestConnect_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("refused"))

	_, err = NewStore(db, Postgres).Connect(context.Background())
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestRunMigrations_Error(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gooseUp = func(ctx context.Context, _ *sql.DB, dir string) error { return errors.New("boom") }
	assert.EqualError(t, NewStore(db, Postgres).RunMigrations(context.Background()), "boom")
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "SELECT $1, $2", Postgres.rebind("SELECT ?, ?"))
	assert.Equal(t, "SELECT ?, ?", SQLite.rebind("SELECT ?, ?"))

	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = DialectFor("SQLite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
