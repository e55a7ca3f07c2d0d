// Package render styles game output for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/stdquest/internal/game/adventure"
)

const separatorWidth = 50

// Renderer turns messages into terminal text.
type Renderer struct {
	styles map[adventure.Kind]lipgloss.Style
	plain  bool
}

// New returns a Renderer that styles each message kind.
func New() *Renderer {
	return &Renderer{styles: map[adventure.Kind]lipgloss.Style{
		adventure.KindHeading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true),
		adventure.KindNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD787")),
		adventure.KindError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")),
		adventure.KindDialogue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7FF")).
			Italic(true),
		adventure.KindQuest: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true),
		adventure.KindDoc: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA")),
		adventure.KindSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585858")),
	}}
}

// NewPlain returns a Renderer that emits unstyled text.
func NewPlain() *Renderer {
	return &Renderer{plain: true}
}

// Message renders one message without a trailing newline.
func (r *Renderer) Message(m adventure.Message) string {
	text := m.Text
	if m.Kind == adventure.KindSeparator {
		text = strings.Repeat("─", separatorWidth)
	}
	if r.plain || text == "" {
		return text
	}
	style, ok := r.styles[m.Kind]
	if !ok {
		return text
	}
	return style.Render(text)
}

// Response renders every message of resp, one per line.
func (r *Renderer) Response(resp adventure.Response) string {
	var b strings.Builder
	for _, m := range resp.Messages {
		b.WriteString(r.Message(m))
		b.WriteByte('\n')
	}
	return b.String()
}

// Prompt renders the input prompt under a status line.
func (r *Renderer) Prompt(status string) string {
	if r.plain {
		return status + "\n> "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Render(status) + "\n> "
}
