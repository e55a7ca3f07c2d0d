package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/stdquest/internal/frontend/render"
	"github.com/cory-johannsen/stdquest/internal/game/adventure"
)

type fakeGame struct {
	handled []string
}

func (f *fakeGame) Start(context.Context) adventure.Response {
	return adventure.Response{Messages: []adventure.Message{{Text: "Welcome."}}}
}

func (f *fakeGame) Handle(_ context.Context, line string) adventure.Response {
	f.handled = append(f.handled, line)
	return adventure.Response{Messages: []adventure.Message{{Text: "ok " + line}}, Quit: line == "quit"}
}

func (f *fakeGame) Status() adventure.Status {
	return adventure.Status{Name: "Traveler", Location: "Introduction", Section: "intro", Era: "C++23", Level: 1, ToNext: 100}
}

func TestModel_EnterSendsCommand(t *testing.T) {
	g := &fakeGame{}
	m := newModel(context.Background(), g, render.NewPlain())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.input.SetValue("look")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	assert.Equal(t, []string{"look"}, g.handled)
	assert.Contains(t, m.log.String(), "> look")
	assert.Contains(t, m.log.String(), "ok look")
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Introduction")
}

func TestModel_EmptyEnterIsIgnored(t *testing.T) {
	g := &fakeGame{}
	m := newModel(context.Background(), g, render.NewPlain())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, g.handled)
}

func TestModel_EscQuitsThroughTheGame(t *testing.T) {
	g := &fakeGame{}
	m := newModel(context.Background(), g, render.NewPlain())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, []string{"quit"}, g.handled, "quitting saves through the game")
	assert.True(t, m.quitting)
	assert.Contains(t, m.View(), "ok quit")
}

func TestModel_StartGreetsOnce(t *testing.T) {
	g := &fakeGame{}
	m := newModel(context.Background(), g, render.NewPlain())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(startMsg{})

	assert.Contains(t, m.log.String(), "Welcome.")
	assert.Contains(t, m.View(), "Traveler")
	assert.Empty(t, g.handled)
}
