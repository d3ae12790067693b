package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"qbr-dash/internal/qbr"
)

// Kind identifies where a dataset is read from.
type Kind string

const (
	KindCSV    Kind = "csv"
	KindURL    Kind = "url"
	KindSQLite Kind = "sqlite"
)

// Options locate the dataset.
type Options struct {
	// Location is a CSV path, an http(s) URL, or a sqlite path. A
	// "sqlite:" prefix forces sqlite regardless of extension.
	Location string
	Token    string
	Client   *http.Client
}

// DetectKind infers the source kind from a location string.
func DetectKind(location string) Kind {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindURL
	case strings.HasPrefix(lower, "sqlite:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return KindSQLite
	default:
		return KindCSV
	}
}

// Open loads the dataset described by opts. Any failure is fatal to the
// caller; there is no partial load.
func Open(ctx context.Context, opts Options, log *zap.Logger) (*qbr.Dataset, error) {
	if opts.Location == "" {
		return nil, fmt.Errorf("dataset location is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	kind := DetectKind(opts.Location)
	var (
		records []qbr.Record
		err     error
	)
	switch kind {
	case KindURL:
		records, err = FetchCSV(ctx, opts.Client, opts.Location, opts.Token)
	case KindSQLite:
		records, err = loadSQLite(ctx, sqlitePath(opts.Location))
	default:
		records, err = LoadCSVFile(opts.Location)
	}
	if err != nil {
		return nil, err
	}

	ds := qbr.NewDataset(records)
	players, _ := ds.Keys(qbr.ByPlayer)
	teams, _ := ds.Keys(qbr.ByTeam)
	log.Info("dataset loaded",
		zap.String("location", opts.Location),
		zap.String("kind", string(kind)),
		zap.Int("records", ds.Len()),
		zap.Int("players", len(players)),
		zap.Int("teams", len(teams)),
	)
	return ds, nil
}

func loadSQLite(ctx context.Context, path string) ([]qbr.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	store, err := OpenStoreForRead(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}

// sqlitePath strips a "sqlite:" prefix in any letter case.
func sqlitePath(location string) string {
	const prefix = "sqlite:"
	if len(location) >= len(prefix) && strings.EqualFold(location[:len(prefix)], prefix) {
		return location[len(prefix):]
	}
	return location
}
