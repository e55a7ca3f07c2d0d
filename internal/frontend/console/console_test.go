package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/stdquest/internal/frontend/render"
	"github.com/cory-johannsen/stdquest/internal/game/adventure"
)

type fakeGame struct {
	handled []string
}

func (f *fakeGame) Start(context.Context) adventure.Response {
	return adventure.Response{Messages: []adventure.Message{{Text: "Welcome, Traveler."}}}
}

func (f *fakeGame) Handle(_ context.Context, line string) adventure.Response {
	f.handled = append(f.handled, line)
	if line == "quit" {
		return adventure.Response{Messages: []adventure.Message{{Text: "Goodbye."}}, Quit: true}
	}
	return adventure.Response{Messages: []adventure.Message{{Kind: adventure.KindHeading, Text: "You said " + line}}}
}

func (f *fakeGame) StatusLine() string { return "[C++23] Introduction" }

func TestRun_QuitStopsTheLoop(t *testing.T) {
	g := &fakeGame{}
	var out bytes.Buffer
	err := Run(context.Background(), g, strings.NewReader("look\nquit\nnever\n"), &out, render.NewPlain(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"look", "quit"}, g.handled)
	assert.Equal(t,
		"Welcome, Traveler.\n"+
			"\n[C++23] Introduction\n> You said look\n"+
			"\n[C++23] Introduction\n> Goodbye.\n",
		out.String())
}

func TestRun_EndOfInput(t *testing.T) {
	g := &fakeGame{}
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), g, strings.NewReader("north"), &out, render.NewPlain(), nil))
	assert.Equal(t, []string{"north"}, g.handled)
	assert.True(t, strings.HasSuffix(out.String(), "> \n"))
}

func TestRun_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, &fakeGame{}, pr, io.Discard, render.NewPlain(), nil) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
