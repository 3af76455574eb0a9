package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"reciperag/internal/conversation"
	"reciperag/internal/domain"
)

type fakeChat struct {
	asked  []string
	resets int
	err    error
}

func (f *fakeChat) Ask(ctx context.Context, input string) (*domain.Answer, conversation.Turn, error) {
	f.asked = append(f.asked, input)
	if f.err != nil {
		return nil, conversation.Turn{}, f.err
	}
	ans := &domain.Answer{
		Query:   input,
		Text:    "Try the Chicken Pasta tonight.",
		Recipes: []domain.RankedResult{{Recipe: domain.Recipe{ID: "1", Title: "chicken pasta"}, RelevanceScore: 0.8}},
	}
	return ans, conversation.Turn{UserInput: input, ActualQuery: input}, nil
}

func (f *fakeChat) Reset() { f.resets++ }

func sized(t *testing.T, port ChatPort) Model {
	t.Helper()
	m := New(context.Background(), port, "3 recipes")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func submit(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestAskRoundTrip(t *testing.T) {
	chat := &fakeChat{}
	m := sized(t, chat)

	m, cmd := submit(m, "chicken dinner")
	if !m.busy || cmd == nil {
		t.Fatal("enter should start an asynchronous ask")
	}
	if m.input.Value() != "" {
		t.Fatal("input should be cleared")
	}

	msg := m.ask("chicken dinner")()
	next, _ := m.Update(msg)
	m = next.(Model)
	if m.busy {
		t.Fatal("answer should clear busy state")
	}
	if len(m.entries) != 1 || m.entries[0].answer != "Try the Chicken Pasta tonight." {
		t.Fatalf("unexpected entries %+v", m.entries)
	}
	if !strings.Contains(m.View(), "Recipe Assistant") {
		t.Fatal("view should render header")
	}
}

func TestAskError(t *testing.T) {
	m := sized(t, &fakeChat{err: errors.New("no key")})
	next, _ := m.Update(answerMsg{input: "x", err: errors.New("no key")})
	m = next.(Model)
	if m.entries[0].err != "no key" || !strings.HasPrefix(m.status, "Error:") {
		t.Fatalf("error not surfaced: %+v / %q", m.entries[0], m.status)
	}
}

func TestResetAndQuitCommands(t *testing.T) {
	chat := &fakeChat{}
	m := sized(t, chat)
	m.entries = []entry{{input: "old"}}

	m, cmd := submit(m, "reset")
	if chat.resets != 1 || m.entries != nil || cmd != nil {
		t.Fatalf("reset not handled: resets=%d entries=%v", chat.resets, m.entries)
	}

	_, cmd = submit(m, "quit")
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit should return tea.Quit")
	}
}

func TestTitleSpans(t *testing.T) {
	recipes := []domain.RankedResult{
		{Recipe: domain.Recipe{Title: "chicken pasta"}},
		{Recipe: domain.Recipe{Title: "chicken pasta bake"}},
		{Recipe: domain.Recipe{Title: "soup"}},
	}
	answer := "Soup or Chicken Pasta Bake? Chicken pasta is faster."
	got := titleSpans(answer, recipes)
	want := [][2]int{{0, 4}, {8, 26}, {28, 41}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("titleSpans = %v, want %v", got, want)
	}
	if highlightTitles("nothing here", recipes) != "nothing here" {
		t.Fatal("text without titles should be unchanged")
	}
}
