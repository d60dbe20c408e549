package records

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet/memsheet"
	"github.com/stretchr/testify/require"
)

var fullHeader = []string{
	"region", "name", "title", "title_code", "unit", "duty",
	"duty_category", "willingness", "answers", "saved_at",
}

func person(name, unit, answers string) []string {
	return []string{"Seoul", name, "Manager", "M1", unit, "Ops", "A", "yes", answers, ""}
}

var fixedNow = time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)

// newStore opens a store over a fresh in-memory sheet titled "Interviews".
func newStore(t *testing.T, rows [][]string, opts ...Option) (*Store, *memsheet.Sheet, *bytes.Buffer) {
	t.Helper()

	book := memsheet.NewBook()
	sh := book.Add("Interviews", rows)

	var buf bytes.Buffer
	l, err := logging.New(&buf, "text", "debug")
	require.NoError(t, err)

	base := []Option{WithLogger(l), WithClock(func() time.Time { return fixedNow })}
	s := New(book, "Interviews", append(base, opts...)...)
	require.NoError(t, s.Open(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s, sh, &buf
}
