package records

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/models"
)

// SaveResult describes a completed save.
type SaveResult struct {
	Row int
	// Answers is the encoded payload written to the answers cell.
	Answers string
	// SavedAt is the timestamp written, or "" when the sheet has no
	// timestamp column.
	SavedAt string
}

// Save writes the answers of the record on row and, if the sheet has a
// timestamp column, the save time. Each is a single-cell update; no other
// cell of the row or of the sheet is written.
//
// The header is read fresh on every call. A missing answers column aborts
// the save with common.ErrColumnAbsent. Write failures are transient errors
// wrapping common.ErrSaveFailed; the caller keeps its answers and may retry.
func (s *Store) Save(ctx context.Context, row int, a models.Answers) (SaveResult, error) {
	const op = "save"

	if row < models.RowOffset {
		return SaveResult{}, fmt.Errorf("%s: invalid data row %d", op, row)
	}

	encoded, err := s.codec.Encode(a)
	if err != nil {
		return SaveResult{}, fmt.Errorf("%s: encode answers: %w", op, err)
	}

	sh, err := s.open(ctx)
	if err != nil {
		return SaveResult{}, err
	}

	header, err := sh.Header(ctx)
	if err != nil {
		s.logger.Error(ctx, "read header failed", "sheet", sh.Title(), "error", err)
		return SaveResult{}, classify(op, err)
	}

	col := models.ColumnIndex(header, s.schema.Answers)
	if col == 0 {
		return SaveResult{}, common.ConfigError(op, fmt.Errorf("%w: %q in sheet %q",
			common.ErrColumnAbsent, s.schema.Answers, sh.Title()))
	}

	if err := sh.UpdateCell(ctx, row, col, encoded); err != nil {
		s.logger.Error(ctx, "answers write failed", "sheet", sh.Title(), "row", row, "error", err)
		return SaveResult{}, common.TransientError(op, fmt.Errorf("%w: answers at row %d: %v", common.ErrSaveFailed, row, err))
	}

	res := SaveResult{Row: row, Answers: encoded}

	if tcol := models.ColumnIndex(header, s.schema.SavedAt); tcol > 0 {
		ts := s.now().In(s.loc).Format(common.TimestampLayout)
		if err := sh.UpdateCell(ctx, row, tcol, ts); err != nil {
			s.logger.Error(ctx, "timestamp write failed", "sheet", sh.Title(), "row", row, "error", err)
			return SaveResult{}, common.TransientError(op, fmt.Errorf("%w: timestamp at row %d: %v", common.ErrSaveFailed, row, err))
		}
		res.SavedAt = ts
	}

	s.logger.Info(ctx, "answers saved", "sheet", sh.Title(), "row", row, "answers", len(a))
	return res, nil
}
