package records

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RowAddressing(t *testing.T) {
	s, _, _ := newStore(t, [][]string{
		fullHeader,
		person("Kim", "Sales", ""),
		person("Lee", "HR", ""),
		person("Park", "IT", ""),
	})

	table, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	for i, r := range table.Records {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, i+2, r.Row())
	}
	assert.Equal(t, "Park", table.Records[2].Get("name"))
}

func TestLoad_BackfillsMissingColumn(t *testing.T) {
	header := []string{"region", "name", "title", "title_code", "unit", "duty", "duty_category", "answers", "saved_at"}
	s, _, logs := newStore(t, [][]string{
		header,
		{"Seoul", "Kim", "Manager", "M1", "Sales", "Ops", "A", "{}", ""},
		{"Busan", "Lee", "Clerk", "C2", "HR", "Desk", "B", "", ""},
	})

	table, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, table.HasColumn("willingness"))
	assert.Equal(t, "willingness", table.Columns[len(table.Columns)-1])
	for _, r := range table.Records {
		v, ok := r.Fields["willingness"]
		assert.True(t, ok)
		assert.Equal(t, "", v)
	}
	assert.Contains(t, logs.String(), "required columns missing")
}

func TestLoad_ShortRowsReadEmpty(t *testing.T) {
	s, _, _ := newStore(t, [][]string{
		fullHeader,
		{"Seoul", "Kim"},
	})

	table, err := s.Load(context.Background())
	require.NoError(t, err)
	rec := table.Records[0]
	assert.Equal(t, "Kim", rec.Get("name"))
	v, ok := rec.Fields["answers"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestLoad_ExtraColumnsKept(t *testing.T) {
	header := append(append([]string(nil), fullHeader...), "notes", "", "notes")
	row := append(person("Kim", "Sales", ""), "first", "blank", "second")
	s, _, _ := newStore(t, [][]string{header, row})

	table, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, append(append([]string(nil), fullHeader...), "notes"), table.Columns)
	assert.Equal(t, "first", table.Records[0].Get("notes"))
}

func TestLoad_EmptyStore(t *testing.T) {
	s, _, _ := newStore(t, [][]string{fullHeader})

	table, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, models.DefaultSchema().Required(), table.Columns)
}

func TestLoad_BlankSheet(t *testing.T) {
	s, _, _ := newStore(t, nil)

	table, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, models.DefaultSchema().Required(), table.Columns)
}

func TestLoad_FreshSnapshotEachCall(t *testing.T) {
	s, sh, _ := newStore(t, [][]string{fullHeader, person("Kim", "Sales", "")})
	ctx := context.Background()

	first, err := s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, sh.UpdateCell(ctx, 3, 2, "Lee"))

	second, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
}

func TestLoad_ReadFailureIsTransient(t *testing.T) {
	s, sh, _ := newStore(t, [][]string{fullHeader})
	sh.ReadErr = errors.New("connection reset")

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, common.KindTransient, common.KindOf(err))
	assert.ErrorIs(t, err, common.ErrUnavailable)
}
