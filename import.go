package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qbr-dash/internal/source"
)

var (
	importCSV string
	importDB  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a CSV dataset into a sqlite file",
	Long: `import reads a CSV dataset (path or URL), validates its columns, and
replaces the contents of the sqlite database at --db with it. Point
dataset.location at the .db file to serve from it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		loc := importCSV
		if source.DetectKind(loc) == source.KindSQLite {
			return fmt.Errorf("--csv must be a CSV file or URL, got %q", loc)
		}
		ds, err := source.Open(ctx, source.Options{Location: loc, Token: cfg.Dataset.Token}, logger)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}

		store, err := source.OpenStore(ctx, importDB)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Import(ctx, ds.Records()); err != nil {
			return err
		}
		logger.Info("dataset imported", zap.String("db", importDB), zap.Int("records", ds.Len()))

		green := color.New(color.FgGreen)
		green.Fprintf(cmd.OutOrStdout(), "✓ imported %d records into %s\n", ds.Len(), importDB)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSV, "csv", "qbr3_df.csv", "CSV path or URL to import")
	importCmd.Flags().StringVar(&importDB, "db", "qbr.db", "sqlite database to write")
}
