package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qbr-dash/internal/qbr"
	"qbr-dash/internal/source"
)

var (
	summarizeMode    string
	summarizeKey     string
	summarizeChart   bool
	summarizeDataset string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Print the per-year summary for a quarterback or team",
	Example: `  qbrdash summarize --mode player --key "Tom Brady"
  qbrdash summarize --mode team --key NWE --chart`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeMode, "mode", "m", "player", "filter by player or team")
	summarizeCmd.Flags().StringVarP(&summarizeKey, "key", "k", "", "player name or team code")
	summarizeCmd.Flags().BoolVar(&summarizeChart, "chart", false, "print chart points as JSON instead of the table")
	summarizeCmd.Flags().StringVar(&summarizeDataset, "dataset", "", "dataset CSV path, URL or sqlite file (overrides config)")
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	mode, err := qbr.ParseMode(summarizeMode)
	if err != nil {
		return err
	}
	location := cfg.Dataset.Location
	if summarizeDataset != "" {
		location = summarizeDataset
	}
	ds, err := source.Open(cmd.Context(), source.Options{Location: location, Token: cfg.Dataset.Token}, logger)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	rows, err := qbr.Summarize(ds, summarizeKey, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summarizeChart {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(qbr.NewChart(rows))
	}
	return printTable(out, qbr.NewTable(rows, mode))
}

func printTable(w io.Writer, t qbr.Table) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "no data for this selection")
		return err
	}

	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range t.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, bold.Sprint(c))
	}
	fmt.Fprintln(tw)
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Year, r.QBR, r.PasserRating, strconv.Itoa(r.Count))
	}
	return tw.Flush()
}
