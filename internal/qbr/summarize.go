package qbr

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Summary is the aggregate of one year for the selected player or team.
// QBR and PasserRating are already rounded to two decimal places.
type Summary struct {
	Year         int     `json:"year"`
	QBR          float64 `json:"qbr"`
	PasserRating float64 `json:"passer_rating"`
	NumGames     int     `json:"num_games"`
	NumQBs       int     `json:"num_qbs"`
}

type summaryJSON struct {
	Year         int      `json:"year"`
	QBR          *float64 `json:"qbr"`
	PasserRating *float64 `json:"passer_rating"`
	NumGames     int      `json:"num_games"`
	NumQBs       int      `json:"num_qbs"`
}

// MarshalJSON writes a missing mean as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		Year:         s.Year,
		QBR:          nullable(s.QBR),
		PasserRating: nullable(s.PasserRating),
		NumGames:     s.NumGames,
		NumQBs:       s.NumQBs,
	})
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	var raw summaryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Summary{
		Year:         raw.Year,
		QBR:          orNaN(raw.QBR),
		PasserRating: orNaN(raw.PasserRating),
		NumGames:     raw.NumGames,
		NumQBs:       raw.NumQBs,
	}
	return nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func orNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

type yearGroup struct {
	qbrSum  float64
	qbrN    int
	rateSum float64
	rateN   int
	names   map[string]struct{}
}

// Summarize filters the dataset by key under mode, groups the matches by
// year and returns one Summary per year in ascending order.
//
// An empty key means nothing is selected and yields an empty result, as
// does a key that matches no record. Neither is an error.
func Summarize(d *Dataset, key string, mode Mode) ([]Summary, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidArgument, mode)
	}
	if key == "" || d == nil {
		return []Summary{}, nil
	}

	groups := make(map[int]*yearGroup)
	for _, r := range d.records {
		if mode.field(r) != key {
			continue
		}
		g, ok := groups[r.Year]
		if !ok {
			g = &yearGroup{names: make(map[string]struct{})}
			groups[r.Year] = g
		}
		if !math.IsNaN(r.QBR) {
			g.qbrSum += r.QBR
			g.qbrN++
		}
		if !math.IsNaN(r.Rate) {
			g.rateSum += r.Rate
			g.rateN++
		}
		g.names[r.Name] = struct{}{}
	}

	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]Summary, 0, len(years))
	for _, y := range years {
		g := groups[y]
		out = append(out, Summary{
			Year:         y,
			QBR:          Round2(mean(g.qbrSum, g.qbrN)),
			PasserRating: Round2(mean(g.rateSum, g.rateN)),
			NumGames:     g.rateN,
			NumQBs:       len(g.names),
		})
	}
	return out, nil
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Format2 renders v with exactly two decimals. Rounding is half-to-even on
// the exact binary value, and NaN renders as "nan".
func Format2(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Round2 rounds v to two decimals by formatting and parsing it back, so
// the numeric value always agrees with what Format2 prints.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, err := strconv.ParseFloat(Format2(v), 64)
	if err != nil {
		return v
	}
	return f
}
