package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reciperag/internal/conversation"
	"reciperag/internal/domain"
)

// ChatPort is the TUI-facing subset of a conversation session.
type ChatPort interface {
	Ask(ctx context.Context, input string) (*domain.Answer, conversation.Turn, error)
	Reset()
}

type entry struct {
	input    string
	query    string
	followUp bool
	answer   string
	recipes  []domain.RankedResult
	err      string
}

type answerMsg struct {
	input string
	ans   *domain.Answer
	turn  conversation.Turn
	err   error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	ctx      context.Context
	port     ChatPort
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	entries  []entry
	overview string
	status   string
	busy     bool
	ready    bool
}

// New creates a chat model. overview is shown under the header.
func New(ctx context.Context, port ChatPort, overview string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about recipes, or refine: shorter, healthier, with beef instead"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ctx:      ctx,
		port:     port,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		overview: overview,
		status:   "Ready. Type reset to start over, ctrl+c to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header+overview, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-th)
		m.refresh()
		return m, nil

	case answerMsg:
		m.busy = false
		e := entry{input: msg.input}
		if msg.ans != nil {
			e.recipes = msg.ans.Recipes
			e.answer = msg.ans.Text
			e.query = msg.ans.Query
		}
		if msg.err != nil {
			e.err = msg.err.Error()
			m.status = "Error: " + msg.err.Error()
		} else {
			e.query = msg.turn.ActualQuery
			e.followUp = msg.turn.FollowUp
			m.status = fmt.Sprintf("Retrieved %d recipes", len(e.recipes))
		}
		m.entries = append(m.entries, e)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			switch strings.ToLower(q) {
			case "quit", "exit", "q":
				return m, tea.Quit
			case "reset":
				m.port.Reset()
				m.entries = nil
				m.status = "Conversation reset."
				m.refresh()
				return m, nil
			}
			m.busy = true
			m.status = "Thinking..."
			return m, tea.Batch(m.ask(q), m.spinner.Tick)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(input string) tea.Cmd {
	port, ctx := m.port, m.ctx
	return func() tea.Msg {
		ans, turn, err := port.Ask(ctx, input)
		return answerMsg{input: input, ans: ans, turn: turn, err: err}
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Recipe Assistant")
	overview := dimStyle.Render(m.overview)
	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + overview + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		inputStyle.Render(m.input.View()) + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.entries))
}

func renderTranscript(entries []entry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No questions yet.")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(userStyle.Render("You: ") + e.input + "\n")
		if e.followUp {
			b.WriteString(dimStyle.Render("  (searching: "+e.query+")") + "\n")
		}
		if e.err != "" {
			b.WriteString(errorStyle.Render("Error: "+e.err) + "\n")
		}
		if e.answer != "" {
			b.WriteString(assistantStyle.Render("Assistant: ") + highlightTitles(e.answer, e.recipes) + "\n")
		}
		for j, r := range e.recipes {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d. %s  score=%.3f", j+1, r.DisplayTitle(), r.RelevanceScore)) + "\n")
		}
	}
	return b.String()
}

var (
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// highlightTitles emphasizes every retrieved recipe title the answer
// mentions, matching case-insensitively. Longer titles win on overlap.
func highlightTitles(answer string, recipes []domain.RankedResult) string {
	spans := titleSpans(answer, recipes)
	if len(spans) == 0 {
		return answer
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(answer[prev:s[0]])
		b.WriteString(highlightStyle.Render(answer[s[0]:s[1]]))
		prev = s[1]
	}
	b.WriteString(answer[prev:])
	return b.String()
}

// titleSpans returns sorted, non-overlapping byte ranges of answer that
// match a recipe title.
func titleSpans(answer string, recipes []domain.RankedResult) [][2]int {
	lower := strings.ToLower(answer)
	if len(lower) != len(answer) {
		return nil
	}
	taken := make([]bool, len(answer))
	var spans [][2]int
	titles := make([]string, 0, len(recipes))
	for _, r := range recipes {
		if t := strings.ToLower(strings.TrimSpace(r.Title)); t != "" {
			titles = append(titles, t)
		}
	}
	// longest first so "chicken pasta bake" beats "chicken pasta"
	sort.SliceStable(titles, func(i, j int) bool { return len(titles[i]) > len(titles[j]) })
	for _, t := range titles {
		from := 0
		for {
			idx := strings.Index(lower[from:], t)
			if idx < 0 {
				break
			}
			start, end := from+idx, from+idx+len(t)
			free := true
			for k := start; k < end; k++ {
				if taken[k] {
					free = false
					break
				}
			}
			if free {
				for k := start; k < end; k++ {
					taken[k] = true
				}
				spans = append(spans, [2]int{start, end})
			}
			from = end
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	return spans
}
