package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:          "reciperag",
		Short:        "Recipe question answering over a TF-IDF index",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (optional; uses ~/.config/reciperag/config.yaml if not provided)")
	rootCmd.PersistentFlags().StringVar(&opts.corpusPath, "corpus", "", "Recipe dataset (JSON or CSV), overrides corpus.path")
	rootCmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "LLM provider (anthropic or openai), overrides llm.provider")

	rootCmd.AddCommand(
		newSearchCmd(&opts),
		newAskCmd(&opts),
		newChatCmd(&opts),
		newRunTestsCmd(&opts),
		newEvalCmd(&opts),
		newBaselineCmd(&opts),
		newLogCmd(&opts),
		newPrepareCmd(&opts),
	)
	return rootCmd
}
