package cli

import (
	"sort"
	"strconv"

	"github.com/dmitrijs2005/interviewkeeper/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderList renders records as a numbered table. Numbers are 1-based
// positions in recs, as accepted by the select command.
func renderList(recs []models.Record, schema models.Schema) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Name", "Unit", "Title", "Row", "Saved at"})
	for i, r := range recs {
		tw.AppendRow(table.Row{
			i + 1,
			r.Get(schema.Name),
			r.Get(schema.Unit),
			r.Get(schema.Title),
			r.Row(),
			r.Get(schema.SavedAt),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

// renderRecord renders the record's columns in table order, followed by the
// draft answers sorted by question key.
func renderRecord(rec models.Record, columns []string, schema models.Schema, draft models.Answers) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, c := range columns {
		if c == schema.Answers {
			continue
		}
		tw.AppendRow(table.Row{c, rec.Get(c)})
	}
	tw.AppendSeparator()

	keys := make([]string, 0, len(draft))
	for k := range draft {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tw.AppendRow(table.Row{"Q " + k, draft[k]})
	}
	if len(keys) == 0 {
		tw.AppendRow(table.Row{"answers", "(none)"})
	}
	tw.AppendFooter(table.Row{"row", strconv.Itoa(rec.Row())})
	return tw.Render()
}
