package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
)

var (
	errNoSelection = errors.New("no interviewee selected, use select <n>")
	errNoExport    = errors.New("snapshot export is not configured")
)

// List prints the records whose name or unit contains the optional token.
func (a *App) List(ctx context.Context, args []string) error {
	token := strings.Join(args, " ")
	a.listed = a.store.Filter(a.table, token)
	if len(a.listed) == 0 {
		if token == "" {
			a.printf("The sheet has no interviewees.\n")
		} else {
			a.printf("No interviewee matches %q.\n", token)
		}
		return nil
	}
	a.printf("%s\n", renderList(a.listed, a.store.Schema()))
	return nil
}

// Select picks the n-th record of the last list and starts a draft from its
// saved answers.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.listed) {
		return fmt.Errorf("pick a number between 1 and %d from the last list", len(a.listed))
	}

	if a.dirty {
		a.printf("Unsaved answers for %s discarded.\n", a.store.Label(a.selected.Record))
	}

	schema := a.store.Schema()
	rec := a.listed[n-1]
	sel, err := a.store.Select(ctx, a.table, rec.Get(schema.Name), rec.Get(schema.Unit))
	if err != nil {
		return err
	}
	if sel.Matches > 1 {
		a.printf("Warning: %d interviewees are labelled %s, using the one on row %d.\n",
			sel.Matches, a.store.Label(sel.Record), sel.Row)
	}

	a.selected = &sel
	a.draft = a.store.Answers(sel.Record).Clone()
	a.dirty = false
	a.printf("Selected %s (row %d).\n", a.store.Label(sel.Record), sel.Row)
	return nil
}

// Show prints the selected record with the current draft answers.
func (a *App) Show(ctx context.Context, args []string) error {
	if a.selected == nil {
		return errNoSelection
	}
	a.printf("%s\n", renderRecord(a.selected.Record, a.table.Columns, a.store.Schema(), a.draft))
	return nil
}

// Set stores an answer in the draft: set <key> <text...>.
func (a *App) Set(ctx context.Context, args []string) error {
	if a.selected == nil {
		return errNoSelection
	}
	if len(args) < 2 {
		return errors.New("usage: set <question> <answer>")
	}
	a.draft[args[0]] = strings.Join(args[1:], " ")
	a.dirty = true
	return nil
}

// Unset removes an answer from the draft.
func (a *App) Unset(ctx context.Context, args []string) error {
	if a.selected == nil {
		return errNoSelection
	}
	if len(args) != 1 {
		return errors.New("usage: unset <question>")
	}
	if _, ok := a.draft[args[0]]; !ok {
		return fmt.Errorf("no answer for question %s", args[0])
	}
	delete(a.draft, args[0])
	a.dirty = true
	return nil
}

// Save writes the draft. On failure the draft is kept for another attempt.
func (a *App) Save(ctx context.Context, args []string) error {
	if a.selected == nil {
		return errNoSelection
	}

	res, err := a.store.Save(ctx, a.selected.Row, a.draft)
	if err != nil {
		if common.KindOf(err) == common.KindTransient {
			return fmt.Errorf("%w (answers kept, run save again)", err)
		}
		return err
	}

	a.dirty = false
	schema := a.store.Schema()
	a.selected.Record.Fields[schema.Answers] = res.Answers
	if res.SavedAt != "" {
		a.selected.Record.Fields[schema.SavedAt] = res.SavedAt
		a.printf("Saved row %d at %s.\n", res.Row, res.SavedAt)
	} else {
		a.printf("Saved row %d.\n", res.Row)
	}
	return nil
}

// Reload re-reads the sheet. The selection follows its name and unit, and
// an unsaved draft survives.
func (a *App) Reload(ctx context.Context, args []string) error {
	table, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	a.table = table
	a.listed = table.Records

	if a.selected != nil {
		schema := a.store.Schema()
		old := a.selected.Record
		sel, err := a.store.Select(ctx, table, old.Get(schema.Name), old.Get(schema.Unit))
		if err != nil {
			a.printf("%s is no longer in the sheet.\n", a.store.Label(old))
			a.selected, a.draft, a.dirty = nil, nil, false
		} else {
			a.selected = &sel
			if !a.dirty {
				a.draft = a.store.Answers(sel.Record).Clone()
			}
		}
	}

	a.printf("Loaded %d interviewees.\n", table.Len())
	return nil
}

// Export seals a fresh snapshot of the sheet and uploads it.
func (a *App) Export(ctx context.Context, args []string) error {
	if a.exporter == nil {
		return errNoExport
	}

	pass, err := GetPassword(a.out, "Snapshot passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)
	confirm, err := GetPassword(a.out, "Repeat passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(pass) != string(confirm) {
		return errors.New("passphrases do not match")
	}

	table, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	key, err := a.exporter.Export(ctx, a.sheetName, table, pass)
	if err != nil {
		return err
	}
	a.printf("Snapshot uploaded as %s.\n", key)
	return nil
}

// Dirty reports whether the draft has unsaved changes.
func (a *App) Dirty() bool { return a.dirty }
