// Package source loads quarterback game records from CSV files, CSV over
// HTTP, or a sqlite database.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"qbr-dash/internal/qbr"
)

// Column names the dataset must provide.
const (
	ColName = "name"
	ColTeam = "Tm"
	ColYear = "Year"
	ColQBR  = "TOTAL QBR"
	ColRate = "Rate"
)

var requiredColumns = []string{ColName, ColTeam, ColYear, ColQBR, ColRate}

// SchemaError reports required columns absent from the CSV header row or
// from the games table. Table is set for the database case.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("dataset table %s is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// LoadCSVFile reads the dataset at path.
func LoadCSVFile(path string) ([]qbr.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadCSV parses a header-driven CSV stream. Column order is free and
// extra columns are ignored. Empty QBR or Rate cells load as NaN.
func LoadCSV(r io.Reader) ([]qbr.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var records []qbr.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		year, err := parseYear(cell(ColYear))
		if err != nil {
			return nil, fmt.Errorf("line %d: column %q: %w", line, ColYear, err)
		}
		qbrVal, err := parseMetric(cell(ColQBR))
		if err != nil {
			return nil, fmt.Errorf("line %d: column %q: %w", line, ColQBR, err)
		}
		rate, err := parseMetric(cell(ColRate))
		if err != nil {
			return nil, fmt.Errorf("line %d: column %q: %w", line, ColRate, err)
		}

		records = append(records, qbr.Record{
			Name: cell(ColName),
			Team: cell(ColTeam),
			Year: year,
			QBR:  qbrVal,
			Rate: rate,
		})
	}
	return records, nil
}

// parseYear accepts "2010" and the float form "2010.0" some exports write.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

func parseMetric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
