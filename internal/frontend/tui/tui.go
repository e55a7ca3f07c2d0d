// Package tui runs the game as a full-screen terminal interface with a
// scrolling transcript and a player status panel.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/stdquest/internal/frontend/render"
	"github.com/cory-johannsen/stdquest/internal/game/adventure"
)

// Game is the part of adventure.Game the interface drives.
type Game interface {
	Start(ctx context.Context) adventure.Response
	Handle(ctx context.Context, line string) adventure.Response
	Status() adventure.Status
}

var (
	inputEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

type model struct {
	ctx      context.Context
	game     Game
	renderer *render.Renderer

	input    textinput.Model
	viewport viewport.Model
	log      strings.Builder
	width    int
	height   int
	ready    bool
	quitting bool
}

// startMsg asks the model to greet the player once the program runs.
type startMsg struct{}

func newModel(ctx context.Context, g Game, r *render.Renderer) *model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	return &model{ctx: ctx, game: g, renderer: r, input: ti}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return startMsg{} })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.handle("quit")
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			m.append(inputEchoStyle.Width(m.logWidth()).Render("> " + line))
			return m, m.handle(line)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.logWidth(), max(1, msg.Height-6))
			m.ready = true
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = max(1, msg.Height-6)
		}
		m.viewport.SetContent(m.log.String())

	case startMsg:
		return m, m.show(m.game.Start(m.ctx))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handle runs line on the event loop; the game must never see two
// commands at once, and View reads its status.
func (m *model) handle(line string) tea.Cmd {
	return m.show(m.game.Handle(m.ctx, line))
}

func (m *model) show(resp adventure.Response) tea.Cmd {
	m.append(m.renderer.Response(resp))
	if resp.Quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *model) append(text string) {
	m.log.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		m.log.WriteByte('\n')
	}
	if m.ready {
		m.viewport.SetContent(m.log.String())
		m.viewport.GotoBottom()
	}
}

func (m *model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.72)
}

func (m *model) View() string {
	if m.quitting {
		return m.log.String()
	}
	if !m.ready {
		return "\n  Opening the standard...\n"
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.panel())
	help := helpStyle.Render(`Type "help" for commands. PgUp/PgDn scroll, Esc quits.`)
	return lipgloss.JoinVertical(lipgloss.Left, body, "\n"+m.input.View(), "\n"+help)
}

func (m *model) panel() string {
	st := m.game.Status()
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("LOCATION") + "\n")
	fmt.Fprintf(&b, "%s\n[%s]\n%s\n\n", st.Location, st.Section, st.Era)
	b.WriteString(panelTitleStyle.Render("PLAYER") + "\n")
	fmt.Fprintf(&b, "%s\nLevel %d %s\nXP %d/%d\nItems %d\n\n", st.Name, st.Level, st.Title, st.Experience, st.ToNext, st.Items)
	b.WriteString(panelTitleStyle.Render("QUESTS") + "\n")
	if len(st.Quests) == 0 {
		b.WriteString("(none)\n")
	}
	for _, q := range st.Quests {
		b.WriteString("- " + q + "\n")
	}
	width := max(20, m.width-m.logWidth()-4)
	return panelStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

// Run starts the interface on the terminal and blocks until the player quits.
func Run(ctx context.Context, g Game, r *render.Renderer) error {
	p := tea.NewProgram(newModel(ctx, g, r), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
