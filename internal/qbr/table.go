package qbr

// Column headers used by the summary table.
const (
	ColYear         = "Year"
	ColQBR          = "QBR"
	ColPasserRating = "Passer Rating"
	ColNumGames     = "Num Games"
	ColNumQBs       = "Num QBs"
)

// TableRow is a Summary prepared for display: both means are fixed
// two-decimal strings and Count holds whichever count the table shows.
type TableRow struct {
	Year         int
	QBR          string
	PasserRating string
	Count        int
}

// Table is the display variant of a summary. Team tables count distinct
// quarterbacks per year, player tables count games.
type Table struct {
	Mode    Mode
	Columns []string
	Rows    []TableRow
}

// NewTable formats rows for display under mode.
func NewTable(rows []Summary, mode Mode) Table {
	countCol := ColNumGames
	if mode == ByTeam {
		countCol = ColNumQBs
	}

	t := Table{
		Mode:    mode,
		Columns: []string{ColYear, ColQBR, ColPasserRating, countCol},
		Rows:    make([]TableRow, 0, len(rows)),
	}
	for _, s := range rows {
		count := s.NumGames
		if mode == ByTeam {
			count = s.NumQBs
		}
		t.Rows = append(t.Rows, TableRow{
			Year:         s.Year,
			QBR:          Format2(s.QBR),
			PasserRating: Format2(s.PasserRating),
			Count:        count,
		})
	}
	return t
}

// CountColumn returns the header of the count column.
func (t Table) CountColumn() string {
	return t.Columns[len(t.Columns)-1]
}

// Records returns the rows keyed by column header, the shape a data-table
// widget consumes.
func (t Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, map[string]any{
			ColYear:         r.Year,
			ColQBR:          r.QBR,
			ColPasserRating: r.PasserRating,
			t.CountColumn(): r.Count,
		})
	}
	return out
}
