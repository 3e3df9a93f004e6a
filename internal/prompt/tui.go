package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// TUI prompts with interactive bubbletea programs.
type TUI struct {
	ctx context.Context
	in  io.Reader
	out io.Writer
}

// NewTUI returns a TUI prompter bound to the given terminal streams. The
// running program is killed when ctx is done.
func NewTUI(ctx context.Context, in io.Reader, out io.Writer) *TUI {
	return &TUI{ctx: ctx, in: in, out: out}
}

// Select lets the user move a cursor over items and confirm with Enter.
func (t *TUI) Select(title string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("nothing to select from")
	}

	final, err := t.run(newSelectModel(title, items))
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.chosen, nil
}

// Input shows a text field; Enter submits only once validate accepts the value.
func (t *TUI) Input(title string, validate func(string) error) (string, error) {
	final, err := t.run(newInputModel(title, validate))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}

func (t *TUI) run(m tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(m,
		tea.WithContext(t.ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	).Run()
	if t.ctx.Err() != nil {
		return nil, ErrCancelled
	}
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

// ─── select ────────────────────────────────────────────────────────

type selectModel struct {
	title     string
	items     []string
	cursor    int
	chosen    int
	done      bool
	cancelled bool
}

func newSelectModel(title string, items []string) selectModel {
	return selectModel{title: title, items: items, chosen: -1}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter":
		m.chosen = m.cursor
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(questionStyle.Render("?") + " " + titleStyle.Render(m.title))

	if m.done {
		b.WriteString(" " + answerStyle.Render(m.items[m.chosen]) + "\n")
		return b.String()
	}
	if m.cancelled {
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("❯ " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ─── input ─────────────────────────────────────────────────────────

type inputModel struct {
	title     string
	input     textinput.Model
	validate  func(string) error
	err       error
	value     string
	done      bool
	cancelled bool
}

func newInputModel(title string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 214
	ti.Focus()
	return inputModel{title: title, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, cmd
}

func (m inputModel) View() string {
	prefix := questionStyle.Render("?") + " " + titleStyle.Render(m.title) + " "
	if m.done {
		return prefix + answerStyle.Render(m.value) + "\n"
	}
	if m.cancelled {
		return prefix + "\n"
	}

	view := prefix + m.input.View() + "\n"
	if m.err != nil {
		view += errorStyle.Render(">> "+m.err.Error()) + "\n"
	}
	return view
}
