package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"reciperag/internal/conversation"
	"reciperag/internal/summarizer"
	"reciperag/internal/tui"
)

func newChatCmd(opts *globalOptions) *cobra.Command {
	var (
		k     int
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation with follow-up refinements",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer a.close()
			assistant, r, err := a.assistant()
			if err != nil {
				return err
			}
			session := conversation.NewSession(assistant, a.topK(k), a.logger)
			if plain {
				return runREPL(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			overview := summarizer.NewOverview().Summarize(r.Store().All(), 5)
			_, err = tea.NewProgram(tui.New(cmd.Context(), session, overview), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().IntVar(&k, "k", 0, "Number of recipes to retrieve per turn (default retrieval.top_k)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Line-oriented prompt instead of the full-screen interface")
	return cmd
}

func runREPL(ctx context.Context, session *conversation.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, headingStyle.Render("Conversational Recipe Q&A Assistant"))
	fmt.Fprintln(out, "Follow-ups like 'shorter', 'with chicken instead' or 'healthier' refine the last question.")
	fmt.Fprintln(out, "Commands: reset, quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye!")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "reset":
			session.Reset()
			fmt.Fprintln(out, "Conversation reset.")
			continue
		}

		if q, followUp := session.Resolve(input); followUp {
			fmt.Fprintln(out, mutedStyle.Render("[refining previous question: "+q+"]"))
		}
		ans, _, err := session.Ask(ctx, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\nPlease try again.\n", err)
			continue
		}
		fmt.Fprintf(out, "\nAssistant: %s\n\n", ans.Text)
		printRecipes(out, ans.Recipes)
	}
}
