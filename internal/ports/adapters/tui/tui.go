// Package tui is the interactive refinement surface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forPelevin/ytsnip/internal/domain/refine"
	"github.com/forPelevin/ytsnip/internal/ports"
	"github.com/forPelevin/ytsnip/internal/types"
)

var (
	headerStyle   = lipgloss.NewStyle()
	intervalStyle = lipgloss.NewStyle().Bold(true)
	contextStyle  = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// Adapter runs one bubbletea program per selection.
type Adapter struct {
	in  io.Reader
	out io.Writer
}

// New uses the given terminal streams; nil means the process's stdin/stdout.
func New(in io.Reader, out io.Writer) *Adapter {
	return &Adapter{in: in, out: out}
}

func (a *Adapter) Refine(ctx context.Context, p types.Progress, sel *refine.Selection) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.in != nil {
		opts = append(opts, tea.WithInput(a.in))
	}
	if a.out != nil {
		opts = append(opts, tea.WithOutput(a.out))
	}
	final, err := tea.NewProgram(newModel(p, sel), opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return ports.ErrAborted
		}
		return fmt.Errorf("refinement ui: %w", err)
	}
	if m, ok := final.(model); ok && m.aborted {
		return ports.ErrAborted
	}
	return nil
}

type model struct {
	progress types.Progress
	sel      *refine.Selection
	keys     keyMap
	help     help.Model
	width    int
	aborted  bool
}

func newModel(p types.Progress, sel *refine.Selection) model {
	m := model{progress: p, sel: sel, keys: defaultKeys(), help: help.New()}
	m.keys.sync(sel.View())
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.aborted = true
			return m, tea.Quit
		}
		for _, a := range allActions {
			if key.Matches(msg, *m.keys.binding(a)) {
				m.sel.Apply(a)
				break
			}
		}
		if m.sel.Done() {
			return m, tea.Quit
		}
		m.keys.sync(m.sel.View())
	}
	return m, nil
}

func (m model) View() string {
	if m.sel.Done() || m.aborted {
		return ""
	}
	v := m.sel.View()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Video %d/%d: %s", m.progress.Video, m.progress.VideoCount, m.progress.VideoID)))
	b.WriteString("\n")
	b.WriteString(intervalStyle.Render(fmt.Sprintf("Interval %d/%d", m.progress.Match, m.progress.MatchCount)))
	b.WriteString("\n\n")

	parts := make([]string, 0, 3)
	if v.Left != "" {
		parts = append(parts, contextStyle.Render(v.Left))
	}
	parts = append(parts, selectedStyle.Render(v.Selected))
	if v.Right != "" {
		parts = append(parts, contextStyle.Render(v.Right))
	}
	text := strings.Join(parts, " ")
	if m.width > 0 {
		text = lipgloss.NewStyle().Width(m.width).Render(text)
	}
	b.WriteString(text)
	b.WriteString("\n\n")

	for _, row := range [][]key.Binding{m.keys.extendHelp(), m.keys.shrinkHelp(), m.keys.finishHelp()} {
		if line := m.help.ShortHelpView(row); line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
