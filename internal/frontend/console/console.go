// Package console runs the game as a line-oriented read-eval-print loop over
// any reader and writer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/frontend/render"
	"github.com/cory-johannsen/stdquest/internal/game/adventure"
)

// maxLineLength bounds a single input line.
const maxLineLength = 64 * 1024

// Game is the part of adventure.Game the loop drives.
type Game interface {
	Start(ctx context.Context) adventure.Response
	Handle(ctx context.Context, line string) adventure.Response
	StatusLine() string
}

// Run greets the player, then handles one line at a time until the player
// quits, input ends, or ctx is cancelled.
//
// Precondition: g, in, out, and r must be non-nil.
// Postcondition: Returns nil on quit or end of input; otherwise the read,
// write, or context error.
func Run(ctx context.Context, g Game, in io.Reader, out io.Writer, r *render.Renderer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := io.WriteString(out, r.Response(g.Start(ctx))); err != nil {
		return fmt.Errorf("writing greeting: %w", err)
	}

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	commands := 0
	for {
		if _, err := io.WriteString(out, "\n"+r.Prompt(g.StatusLine())); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				logger.Info("input closed", zap.Int("commands", commands))
				_, _ = io.WriteString(out, "\n")
				return <-errc
			}
			commands++
			resp := g.Handle(ctx, line)
			if _, err := io.WriteString(out, r.Response(resp)); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			if resp.Quit {
				logger.Info("player quit", zap.Int("commands", commands))
				return nil
			}
		}
	}
}
