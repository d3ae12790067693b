package source

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "github.com/glebarez/go-sqlite"

	"qbr-dash/internal/qbr"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS qb_games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    team TEXT NOT NULL,
    year INTEGER NOT NULL,
    total_qbr REAL,
    rate REAL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`,
	`CREATE INDEX IF NOT EXISTS idx_qb_games_year ON qb_games (year);`,
}

// Store keeps a dataset in a sqlite file so a deployment can ship a .db
// instead of the raw CSV.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the sqlite database at path and
// applies the schema.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenStoreForRead opens an existing sqlite database without touching its
// schema. A missing games table or column is a *SchemaError.
func OpenStoreForRead(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.checkSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

var storeColumns = []string{"name", "team", "year", "total_qbr", "rate"}

func (s *Store) checkSchema(ctx context.Context) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'qb_games'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	if n == 0 {
		return &SchemaError{Table: "qb_games", Missing: storeColumns}
	}

	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(qb_games)`)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	var missing []string
	for _, col := range storeColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: "qb_games", Missing: missing}
	}
	return nil
}

// Migrate creates the games table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

// Import replaces the stored games with records in a single transaction.
func (s *Store) Import(ctx context.Context, records []qbr.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM qb_games`); err != nil {
		return fmt.Errorf("clearing games: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO qb_games (name, team, year, total_qbr, rate)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Name, r.Team, r.Year, nullFloat(r.QBR), nullFloat(r.Rate)); err != nil {
			return fmt.Errorf("inserting %s %d: %w", r.Name, r.Year, err)
		}
	}
	return tx.Commit()
}

// Load reads every stored game in insertion order.
func (s *Store) Load(ctx context.Context) ([]qbr.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, team, year, total_qbr, rate FROM qb_games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var records []qbr.Record
	for rows.Next() {
		var (
			r       qbr.Record
			qbrVal  sql.NullFloat64
			rateVal sql.NullFloat64
		)
		if err := rows.Scan(&r.Name, &r.Team, &r.Year, &qbrVal, &rateVal); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		r.QBR = fromNull(qbrVal)
		r.Rate = fromNull(rateVal)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
