package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reciperag/internal/corpus"
	"reciperag/internal/logger"
)

func newPrepareCmd(opts *globalOptions) *cobra.Command {
	var (
		input  string
		output string
		sample int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Clean a raw recipe dataset into the canonical JSON corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewLogger("local", "info")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			raw, err := corpus.LoadFile(input)
			if err != nil {
				return err
			}
			store := corpus.NewStore(corpus.Normalize(raw), log)
			recipes := corpus.Sample(store.All(), sample, seed)
			if err := corpus.WriteJSON(output, recipes); err != nil {
				return err
			}
			log.Info("prepared corpus",
				zap.Int("read", len(raw)),
				zap.Int("dropped", store.Dropped()),
				zap.Int("written", len(recipes)),
				zap.String("output", output),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d recipes to %s\n", len(recipes), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Raw dataset (CSV with header, or JSON array)")
	cmd.Flags().StringVar(&output, "output", "data/recipes_subset.json", "Canonical JSON output")
	cmd.Flags().IntVar(&sample, "sample", 1000, "Recipes to keep, 0 for all")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "Sampling seed")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
