package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reciperag/internal/domain"
	"reciperag/internal/evaluation"
)

func newRunTestsCmd(opts *globalOptions) *cobra.Command {
	var (
		casesPath   string
		outputPath  string
		k           int
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "run-tests",
		Short: "Answer every test question and save the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			cases, err := evaluation.LoadCases(casesPath)
			if err != nil {
				return err
			}
			assistant, _, err := a.assistant()
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = a.cfg.Evaluation.Concurrency
			}
			if outputPath == "" {
				outputPath = filepath.Join(a.cfg.Evaluation.OutputDir, "test_results.json")
			}

			runner := evaluation.NewRunner(assistant, a.topK(k), concurrency, a.logger)
			results, runErr := runner.Run(cmd.Context(), cases)
			if err := evaluation.WriteJSON(outputPath, results); err != nil {
				return err
			}

			failed := 0
			out := cmd.OutOrStdout()
			for i, r := range results {
				if r.Error != "" {
					failed++
					fmt.Fprintf(out, "%d. %s\n   error: %s\n", i+1, r.Query, r.Error)
					continue
				}
				fmt.Fprintf(out, "%d. %s\n   retrieved %d recipes: %s\n", i+1, r.Query, r.NumRetrieved, preview(r.Text, 100))
			}
			fmt.Fprintf(out, "\nCompleted %d/%d cases, results saved to %s\n", len(results)-failed, len(results), outputPath)
			return runErr
		},
	}
	cmd.Flags().StringVar(&casesPath, "cases", "evaluation/test_qa_pairs.json", "JSON array of test questions")
	cmd.Flags().StringVar(&outputPath, "output", "", "Results file (default <evaluation.output_dir>/test_results.json)")
	cmd.Flags().IntVar(&k, "k", 0, "Recipes retrieved per question (default retrieval.top_k)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Questions answered in parallel (default evaluation.concurrency)")
	return cmd
}

func newEvalCmd(opts *globalOptions) *cobra.Command {
	var (
		resultsPath string
		casesPath   string
		outputPath  string
		k           int
		threshold   float64
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Compute NDCG@k and Recall@k from saved results or live retrieval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (resultsPath == "") == (casesPath == "") {
				return errors.New("exactly one of --results or --cases is required")
			}
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			if k <= 0 {
				k = a.cfg.Evaluation.K
			}
			if threshold <= 0 {
				threshold = a.cfg.Evaluation.Threshold
			}
			if outputPath == "" {
				outputPath = filepath.Join(a.cfg.Evaluation.OutputDir, "retrieval_metrics.json")
			}

			var answers []domain.Answer
			if resultsPath != "" {
				answers, err = evaluation.LoadResults(resultsPath)
			} else {
				answers, err = retrieveCases(a, casesPath)
			}
			if err != nil {
				return err
			}

			report := evaluation.Evaluate(answers, k, threshold)
			if err := evaluation.WriteJSON(outputPath, report); err != nil {
				return err
			}
			a.logger.Info("evaluated retrieval",
				zap.Int("answers", len(answers)),
				zap.Int("evaluated", report.Summary.NumQueries),
				zap.String("output", outputPath),
			)

			out := cmd.OutOrStdout()
			for i, q := range report.PerQuery {
				fmt.Fprintf(out, "%d. %s\n   NDCG@%d: %.3f | Recall@%d: %.3f | Relevant: %d\n",
					i+1, preview(q.Query, 50), k, q.NDCG, k, q.Recall, q.NumRelevant)
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, report.Interpretation())
			fmt.Fprintf(out, "Metrics saved to %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "", "Results file written by run-tests")
	cmd.Flags().StringVar(&casesPath, "cases", "", "Test questions to retrieve for, without an LLM")
	cmd.Flags().StringVar(&outputPath, "output", "", "Metrics file (default <evaluation.output_dir>/retrieval_metrics.json)")
	cmd.Flags().IntVar(&k, "k", 0, "Cutoff for the metrics (default evaluation.k)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum score for the relevance heuristic (default evaluation.threshold)")
	return cmd
}

func retrieveCases(a *app, casesPath string) ([]domain.Answer, error) {
	cases, err := evaluation.LoadCases(casesPath)
	if err != nil {
		return nil, err
	}
	r, err := a.retriever()
	if err != nil {
		return nil, err
	}
	return evaluation.RetrieveAll(a.searcher(r), cases, a.cfg.Retrieval.TopK)
}

func newBaselineCmd(opts *globalOptions) *cobra.Command {
	var (
		resultsPath string
		jsonPath    string
		textPath    string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Compare templated answers with generated ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			answers, err := evaluation.LoadResults(resultsPath)
			if err != nil {
				return err
			}
			if jsonPath == "" {
				jsonPath = filepath.Join(a.cfg.Evaluation.OutputDir, "baseline_comparison.json")
			}
			if textPath == "" {
				textPath = filepath.Join(a.cfg.Evaluation.OutputDir, "baseline_comparison.txt")
			}

			comps := evaluation.Compare(answers, limit)
			if err := evaluation.WriteJSON(jsonPath, comps); err != nil {
				return err
			}
			text := evaluation.ComparisonText(comps)
			if err := evaluation.WriteText(textPath, text); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			fmt.Fprintf(cmd.OutOrStdout(), "Comparison saved to %s and %s\n", jsonPath, textPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "evaluation/test_results.json", "Results file written by run-tests")
	cmd.Flags().StringVar(&jsonPath, "output-json", "", "JSON report path")
	cmd.Flags().StringVar(&textPath, "output-txt", "", "Text report path")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of results to compare, 0 for all")
	return cmd
}

func newLogCmd(opts *globalOptions) *cobra.Command {
	var (
		resultsPath string
		jsonPath    string
		textPath    string
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Write a sample interaction log from saved results",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			answers, err := evaluation.LoadResults(resultsPath)
			if err != nil {
				return err
			}
			if jsonPath == "" {
				jsonPath = filepath.Join(a.cfg.Evaluation.OutputDir, "sample_interaction_log.json")
			}
			if textPath == "" {
				textPath = filepath.Join(a.cfg.Evaluation.OutputDir, "sample_interaction_log.txt")
			}

			log := evaluation.BuildInteractionLog(answers, evaluation.SampleIndices)
			if err := evaluation.WriteJSON(jsonPath, log); err != nil {
				return err
			}
			if err := evaluation.WriteText(textPath, log.Text()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d interactions to %s and %s\n",
				log.Metadata.TotalInteractions, textPath, jsonPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&resultsPath, "results", "evaluation/test_results.json", "Results file written by run-tests")
	cmd.Flags().StringVar(&jsonPath, "output-json", "", "JSON log path")
	cmd.Flags().StringVar(&textPath, "output-txt", "", "Text log path")
	return cmd
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
