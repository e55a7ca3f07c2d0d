package quest

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"go.uber.org/zap"
)

var (
	// ErrNoHints is returned by Hint when the puzzle defines none.
	ErrNoHints = errors.New("no hints available for this puzzle")
	// ErrHintsExhausted is returned by Hint once every hint was shown.
	ErrHintsExhausted = errors.New("all hints used")
)

// Source is the randomness provider for shuffling matching options.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

// Intn panics if n <= 0 or crypto/rand fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("quest: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("quest: crypto/rand failure: " + err.Error())
	}
	return int(v.Int64())
}

// PuzzleSession is an in-progress attempt at one puzzle.
type PuzzleSession struct {
	Puzzle    *Puzzle
	QuestID   string
	hintsUsed int
	// options are the right-hand sides of a matching puzzle in display order.
	options []string
}

// NewPuzzleSession starts an attempt at pz. Matching options are shuffled
// with src.
//
// Precondition: pz and src must be non-nil.
func NewPuzzleSession(pz *Puzzle, questID string, src Source) *PuzzleSession {
	s := &PuzzleSession{Puzzle: pz, QuestID: questID}
	if pz.Type == PuzzleMatching {
		for _, pair := range pz.Pairs {
			if len(pair) == 2 {
				s.options = append(s.options, pair[1])
			}
		}
		for i := len(s.options) - 1; i > 0; i-- {
			j := src.Intn(i + 1)
			s.options[i], s.options[j] = s.options[j], s.options[i]
		}
	}
	return s
}

// Options returns the shuffled matching options; letter A is index 0.
func (s *PuzzleSession) Options() []string {
	return append([]string(nil), s.options...)
}

// HintsUsed returns how many hints were shown.
func (s *PuzzleSession) HintsUsed() int { return s.hintsUsed }

// Hint returns the next unseen hint and its 1-based number.
func (s *PuzzleSession) Hint() (hint string, n int, err error) {
	hints := s.Puzzle.Hints
	if len(hints) == 0 {
		return "", 0, ErrNoHints
	}
	if s.hintsUsed >= len(hints) {
		return "", 0, ErrHintsExhausted
	}
	hint = hints[s.hintsUsed]
	s.hintsUsed++
	return hint, s.hintsUsed, nil
}

// Verdict is the outcome of one answer.
type Verdict struct {
	Correct bool
	// Right and Total count matched statements or pairs.
	Right int
	Total int
}

// Check grades answer without changing any state.
func (s *PuzzleSession) Check(answer string) Verdict {
	switch s.Puzzle.Type {
	case PuzzleQuiz:
		return s.checkQuiz(answer)
	case PuzzleMatching:
		return s.checkMatching(answer)
	}
	return Verdict{}
}

func (s *PuzzleSession) checkQuiz(answer string) Verdict {
	got := stripSpace(strings.ToUpper(answer))
	want := stripSpace(strings.ToUpper(strings.Join(s.Puzzle.Answers, "")))
	v := Verdict{Total: len(want), Correct: got == want}
	for i := 0; i < len(got) && i < len(want); i++ {
		if got[i] == want[i] {
			v.Right++
		}
	}
	return v
}

var matchToken = regexp.MustCompile(`(\d+)\s*([A-Za-z])`)

// checkMatching accepts answers of the form "1A 2B 3C".
func (s *PuzzleSession) checkMatching(answer string) Verdict {
	pairs := s.Puzzle.Pairs
	v := Verdict{Total: len(pairs)}
	picked := make(map[int]string, len(pairs))
	for _, m := range matchToken.FindAllStringSubmatch(answer, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(pairs) {
			continue
		}
		idx := int(unicode.ToUpper(rune(m[2][0])) - 'A')
		if idx < 0 || idx >= len(s.options) {
			continue
		}
		picked[n-1] = s.options[idx]
	}
	for i, pair := range pairs {
		if len(pair) == 2 && picked[i] == pair[1] {
			v.Right++
		}
	}
	v.Correct = v.Total > 0 && v.Right == v.Total
	return v
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Solution reports the effects of a correct answer.
type Solution struct {
	Grant  Grant
	Events []Event
}

// Solve grades answer and, when correct, grants the puzzle rewards, records
// the solve, and feeds {puzzle, section, era} to CheckProgress.
//
// Postcondition: ok is false and nothing changes when the answer is wrong.
func (e *Engine) Solve(p *progress.Progress, s *PuzzleSession, answer string) (Verdict, Solution, bool) {
	v := s.Check(answer)
	if !v.Correct {
		return v, Solution{}, false
	}
	var sol Solution
	pz := s.Puzzle
	if r := pz.Rewards; r != nil {
		sol.Grant.xp(p, r.XP)
		e.grantItem(p, &sol.Grant, r.Item)
	}
	p.RecordPuzzleSolved(pz.ID)
	e.logger.Info("puzzle solved", zap.String("puzzle", pz.ID), zap.Int("hints_used", s.hintsUsed))
	sol.Events = e.CheckProgress(p, Action{
		Puzzle:  pz.ID,
		Section: p.Location(),
		Era:     p.Era(),
	})
	return v, sol, true
}
