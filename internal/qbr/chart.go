package qbr

// Axis ranges match the nominal scale of each metric.
const (
	QBRAxisMax          = 100
	PasserRatingAxisMax = 159
)

// ChartPoint is the numeric variant of a Summary used for plotting. A nil
// metric marks a year with no values for it.
type ChartPoint struct {
	Year         int      `json:"year"`
	QBR          *float64 `json:"qbr"`
	PasserRating *float64 `json:"passer_rating"`
	NumGames     int      `json:"num_games"`
}

// NewChart converts summaries to chart points. The values are the same
// rounded means the table prints, kept numeric.
func NewChart(rows []Summary) []ChartPoint {
	out := make([]ChartPoint, 0, len(rows))
	for _, s := range rows {
		out = append(out, ChartPoint{
			Year:         s.Year,
			QBR:          nullable(Round2(s.QBR)),
			PasserRating: nullable(Round2(s.PasserRating)),
			NumGames:     s.NumGames,
		})
	}
	return out
}

// Trace is one line series of a Figure.
type Trace struct {
	Name       string     `json:"name"`
	X          []int      `json:"x"`
	Y          []*float64 `json:"y"`
	YAxis      string     `json:"yaxis"`
	Mode       string     `json:"mode"`
	ShowLegend bool       `json:"showlegend"`
}

// Axis configures one chart axis.
type Axis struct {
	Title      string    `json:"title"`
	Range      []float64 `json:"range,omitempty"`
	TickFormat string    `json:"tickformat,omitempty"`
	NTicks     int       `json:"nticks,omitempty"`
	Overlaying string    `json:"overlaying,omitempty"`
	Side       string    `json:"side,omitempty"`
}

// Figure describes a two-axis line chart: QBR on the left axis and passer
// rating on the right, both against year.
type Figure struct {
	Title       string  `json:"title"`
	LegendTitle string  `json:"legend_title"`
	Traces      []Trace `json:"traces"`
	XAxis       Axis    `json:"xaxis"`
	YAxis       Axis    `json:"yaxis"`
	YAxis2      Axis    `json:"yaxis2"`
}

// ChartTitle is the figure title for the selected key.
func ChartTitle(key string) string {
	if key == "" {
		return "QBR and Passer Rating Over Time"
	}
	return key + " QBR and Passer Rating Over Time"
}

// NewFigure builds the figure for key from its chart points.
func NewFigure(key string, points []ChartPoint) Figure {
	years := make([]int, len(points))
	qbr := make([]*float64, len(points))
	rate := make([]*float64, len(points))
	for i, p := range points {
		years[i] = p.Year
		qbr[i] = p.QBR
		rate[i] = p.PasserRating
	}

	return Figure{
		Title:       ChartTitle(key),
		LegendTitle: key,
		Traces: []Trace{
			{Name: ColQBR, X: years, Y: qbr, YAxis: "y", Mode: "lines+markers", ShowLegend: true},
			{Name: ColPasserRating, X: years, Y: rate, YAxis: "y2", Mode: "lines+markers", ShowLegend: true},
		},
		XAxis: Axis{Title: ColYear, TickFormat: "d", NTicks: len(points)},
		YAxis: Axis{Title: ColQBR, Range: []float64{0, QBRAxisMax}},
		YAxis2: Axis{
			Title:      ColPasserRating,
			Range:      []float64{0, PasserRatingAxisMax},
			Overlaying: "y",
			Side:       "right",
		},
	}
}
