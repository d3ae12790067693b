package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qbr-dash/internal/qbr"
	"qbr-dash/internal/source"
)

var (
	keysMode    string
	keysDataset string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List selectable quarterbacks or teams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := qbr.ParseMode(keysMode)
		if err != nil {
			return err
		}
		location := cfg.Dataset.Location
		if keysDataset != "" {
			location = keysDataset
		}
		ds, err := source.Open(cmd.Context(), source.Options{Location: location, Token: cfg.Dataset.Token}, logger)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		keys, err := ds.Keys(mode)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().StringVarP(&keysMode, "mode", "m", "player", "player or team")
	keysCmd.Flags().StringVar(&keysDataset, "dataset", "", "dataset CSV path, URL or sqlite file (overrides config)")
}
