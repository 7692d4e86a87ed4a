package tray

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).MarginTop(1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

type actionDoneMsg struct {
	id  string
	err error
}

type model struct {
	ctx        context.Context
	menu       *Menu
	keys       keyMap
	shouldQuit func() bool

	cursor  int
	running bool
	status  string
	err     error
}

func newModel(ctx context.Context, menu *Menu, shouldQuit func() bool) model {
	return model{
		ctx:        ctx,
		menu:       menu,
		keys:       defaultKeyMap(),
		shouldQuit: shouldQuit,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case m.running:
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.menu.Items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.menu.Items) == 0 {
				return m, nil
			}
			item := m.menu.Items[m.cursor]
			m.running = true
			m.err = nil
			m.status = item.Text + "..."
			return m, m.run(item)
		}

	case actionDoneMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.id + " done"
		} else {
			m.status = ""
		}
		if m.shouldQuit != nil && m.shouldQuit() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) run(item Item) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{id: item.ID, err: item.Action(ctx)}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Tooltip))
	b.WriteString("\n")
	for i, item := range m.menu.Items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + item.Text))
		} else {
			b.WriteString(itemStyle.Render(item.Text))
		}
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(helpLine(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func helpLine(keys keyMap) string {
	bindings := []key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}

// Run shows the menu in the terminal until the user closes it, ctx is
// cancelled, or shouldQuit reports true after an action finishes.
func Run(ctx context.Context, menu *Menu, shouldQuit func() bool) error {
	p := tea.NewProgram(newModel(ctx, menu, shouldQuit), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
