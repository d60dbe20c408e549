package models

// Schema names the required columns of the interview sheet. Lookups are by
// name; the position of a column in the sheet is never assumed.
type Schema struct {
	Region       string `json:"region"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	TitleCode    string `json:"title_code"`
	Unit         string `json:"unit"`
	Duty         string `json:"duty"`
	DutyCategory string `json:"duty_category"`
	Willingness  string `json:"willingness"`
	Answers      string `json:"answers"`
	SavedAt      string `json:"saved_at"`
}

// DefaultSchema returns the column names used when the configuration does not
// override them.
func DefaultSchema() Schema {
	return Schema{
		Region:       "region",
		Name:         "name",
		Title:        "title",
		TitleCode:    "title_code",
		Unit:         "unit",
		Duty:         "duty",
		DutyCategory: "duty_category",
		Willingness:  "willingness",
		Answers:      "answers",
		SavedAt:      "saved_at",
	}
}

// Merge returns s with every non-empty field of override applied on top.
func (s Schema) Merge(override Schema) Schema {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}
	return Schema{
		Region:       pick(s.Region, override.Region),
		Name:         pick(s.Name, override.Name),
		Title:        pick(s.Title, override.Title),
		TitleCode:    pick(s.TitleCode, override.TitleCode),
		Unit:         pick(s.Unit, override.Unit),
		Duty:         pick(s.Duty, override.Duty),
		DutyCategory: pick(s.DutyCategory, override.DutyCategory),
		Willingness:  pick(s.Willingness, override.Willingness),
		Answers:      pick(s.Answers, override.Answers),
		SavedAt:      pick(s.SavedAt, override.SavedAt),
	}
}

// Required returns the required column names in their canonical order.
func (s Schema) Required() []string {
	return []string{
		s.Region, s.Name, s.Title, s.TitleCode, s.Unit,
		s.Duty, s.DutyCategory, s.Willingness, s.Answers, s.SavedAt,
	}
}

// ColumnIndex returns the 1-based position of column in header, or 0 if the
// header does not contain it. The first exact match wins.
func ColumnIndex(header []string, column string) int {
	for i, h := range header {
		if h == column {
			return i + 1
		}
	}
	return 0
}
