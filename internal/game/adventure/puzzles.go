package adventure

import (
	"context"
	"errors"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
)

// session returns the open puzzle session, starting one for the current quest
// puzzle when none is open or the open one went stale.
func (g *Game) session(r *reply) (*quest.PuzzleSession, bool) {
	pz, q, err := g.engine.CurrentPuzzle(g.progress)
	if err != nil {
		g.puzzle = nil
		r.fail(err)
		return nil, false
	}
	if g.puzzle == nil || g.puzzle.Puzzle.ID != pz.ID {
		g.puzzle = quest.NewPuzzleSession(pz, q.ID, g.random)
	}
	return g.puzzle, true
}

func (g *Game) handlePuzzle(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	s, ok := g.session(r)
	if !ok {
		return
	}
	pz := s.Puzzle
	r.separator()
	if pz.Difficulty != "" {
		r.add(KindHeading, "Puzzle (%s)", pz.Difficulty)
	} else {
		r.add(KindHeading, "Puzzle")
	}
	r.text("%s", strings.TrimRight(pz.Question, "\n"))
	switch pz.Type {
	case quest.PuzzleQuiz:
		r.blank()
		r.text("Answer with T or F for each statement, e.g. \"answer TFT\".")
	case quest.PuzzleMatching:
		r.blank()
		for i, pair := range pz.Pairs {
			if len(pair) == 2 {
				r.text("  %d. %s", i+1, pair[0])
			}
		}
		r.blank()
		for i, opt := range s.Options() {
			r.text("  %c. %s", 'A'+i, opt)
		}
		r.blank()
		r.text("Answer with number-letter pairs, e.g. \"answer 1A 2C 3B\".")
	}
	if n := len(pz.Hints); n > 0 {
		r.text(`Type "hint" for help (%d available).`, n-s.HintsUsed())
	}
	r.separator()
}

func (g *Game) handleAnswer(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs == "" {
		r.failf("Usage: answer <your answer>")
		return
	}
	s, ok := g.session(r)
	if !ok {
		return
	}
	v, sol, solved := g.engine.Solve(g.progress, s, in.RawArgs)
	if !solved {
		r.failf("Incorrect! Try again.")
		if v.Total > 0 {
			r.text("You got %d/%d correct.", v.Right, v.Total)
		}
		return
	}
	g.puzzle = nil
	r.notice("Correct! Puzzle solved!")
	if s.Puzzle.Explanation != "" {
		r.text("%s", s.Puzzle.Explanation)
	}
	r.grant(sol.Grant)
	r.questEvents(sol.Events)
}

func (g *Game) handleHint(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	s, ok := g.session(r)
	if !ok {
		return
	}
	hint, n, err := s.Hint()
	switch {
	case errors.Is(err, quest.ErrNoHints):
		r.failf("No hints available for this puzzle.")
	case errors.Is(err, quest.ErrHintsExhausted):
		r.failf("You have used all hints for this puzzle.")
	case err != nil:
		r.fail(err)
	default:
		r.text("Hint %d/%d: %s", n, len(s.Puzzle.Hints), hint)
	}
}
