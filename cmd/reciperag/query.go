package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"reciperag/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Retrieve the recipes most similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			r, err := a.retriever()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results, err := a.searcher(r).Retrieve(query, a.topK(k))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("Query: %s", query)))
			printRecipes(out, results)
			return nil
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "Number of recipes to retrieve (default retrieval.top_k)")
	return cmd
}

func newAskCmd(opts *globalOptions) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Answer a question from retrieved recipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			assistant, _, err := a.assistant()
			if err != nil {
				return err
			}
			ans, err := assistant.Answer(cmd.Context(), strings.Join(args, " "), a.topK(k))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render("Answer"))
			fmt.Fprintln(out, ans.Text)
			fmt.Fprintln(out)
			fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("Retrieved %d recipes (%s / %s)", ans.NumRetrieved, ans.Provider, ans.Model)))
			printRecipes(out, ans.Recipes)
			return nil
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "Number of recipes to retrieve (default retrieval.top_k)")
	return cmd
}

func printRecipes(w io.Writer, results []domain.RankedResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n", i+1, headingStyle.Render(r.DisplayTitle()))
		if r.Tags != "" {
			fmt.Fprintf(w, "   Tags: %s\n", r.Tags)
		}
		fmt.Fprintf(w, "   Duration: %s min | Calories: %s | Health: %s\n",
			formatOptional(r.Duration), formatOptional(r.Calories), healthLabel(r.HealthCategory))
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("   Relevance: %.3f", r.RelevanceScore)))
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func healthLabel(h domain.HealthCategory) string {
	if h == domain.HealthUnknown {
		return "N/A"
	}
	return string(h)
}
