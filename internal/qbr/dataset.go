// Package qbr turns per-game quarterback records into per-year summaries.
package qbr

// Record is one row of the source dataset: a single quarterback game.
// QBR and Rate are NaN when the source cell was empty.
type Record struct {
	Name string
	Team string
	Year int
	QBR  float64
	Rate float64
}

// Dataset is a read-only view over the loaded records. It is safe for
// concurrent use because nothing mutates it after NewDataset returns.
type Dataset struct {
	records []Record
	players []string
	teams   []string
}

// NewDataset copies records into a new Dataset and precomputes the
// selectable player and team keys.
func NewDataset(records []Record) *Dataset {
	rs := make([]Record, len(records))
	copy(rs, records)

	return &Dataset{
		records: rs,
		players: sortedPlayers(rs),
		teams:   sortedTeams(rs),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of the underlying records.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}
