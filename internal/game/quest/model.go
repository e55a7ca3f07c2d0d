// Package quest evaluates player actions against the scripted steps of active
// quests, gates which quests may be offered, and runs puzzle sessions.
package quest

import "strings"

// Action is one quest-relevant thing the player did. Zero-valued fields are
// absent.
type Action struct {
	Section string
	Era     string
	NPC     string
	Topic   string
	Puzzle  string
	Read    bool
}

// Target is the predicate a step waits for. Zero-valued fields are not
// required.
type Target struct {
	Section string `yaml:"section,omitempty"`
	Era     string `yaml:"era,omitempty"`
	NPC     string `yaml:"npc,omitempty"`
	Topic   string `yaml:"topic,omitempty"`
	Puzzle  string `yaml:"puzzle,omitempty"`
	Read    bool   `yaml:"read,omitempty"`
}

// IsEmpty reports whether t requires nothing.
func (t Target) IsEmpty() bool {
	return t == Target{}
}

// StepReward is granted when a single step completes.
type StepReward struct {
	XP       int    `yaml:"xp,omitempty"`
	Item     string `yaml:"item,omitempty"`
	Dialogue string `yaml:"dialogue,omitempty"`
}

// Step is one entry in a quest script.
type Step struct {
	Instruction string      `yaml:"instruction"`
	Target      *Target     `yaml:"target,omitempty"`
	OnComplete  *StepReward `yaml:"onComplete,omitempty"`
}

// Rewards are granted once, when the final step completes.
type Rewards struct {
	Experience int      `yaml:"experience,omitempty"`
	Items      []string `yaml:"items,omitempty"`
	Title      string   `yaml:"title,omitempty"`
}

// Quest is a read-only quest definition.
type Quest struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Difficulty    string   `yaml:"difficulty"`
	Giver         string   `yaml:"giver"`
	GiverLocation string   `yaml:"giverLocation"`
	MinLevel      int      `yaml:"minLevel,omitempty"`
	Prerequisites []string `yaml:"prerequisites,omitempty"`
	Steps         []Step   `yaml:"steps"`
	Rewards       *Rewards `yaml:"rewards,omitempty"`
}

// Step returns the step at index i, or false when i is out of range.
func (q *Quest) Step(i int) (Step, bool) {
	if i < 0 || i >= len(q.Steps) {
		return Step{}, false
	}
	return q.Steps[i], true
}

// PuzzleType discriminates the answer key of a Puzzle.
type PuzzleType string

const (
	PuzzleQuiz     PuzzleType = "quiz"
	PuzzleMatching PuzzleType = "matching"
)

// PuzzleRewards are granted when a puzzle is solved.
type PuzzleRewards struct {
	XP   int    `yaml:"xp,omitempty"`
	Item string `yaml:"item,omitempty"`
}

// Puzzle is a read-only puzzle definition.
//
// Invariant: quiz puzzles carry Answers (one "T" or "F" per statement);
// matching puzzles carry Pairs of [left, right].
type Puzzle struct {
	ID          string         `yaml:"id"`
	Type        PuzzleType     `yaml:"type"`
	Difficulty  string         `yaml:"difficulty"`
	Question    string         `yaml:"question"`
	Answers     []string       `yaml:"answers,omitempty"`
	Pairs       [][]string     `yaml:"pairs,omitempty"`
	Hints       []string       `yaml:"hints,omitempty"`
	Explanation string         `yaml:"explanation,omitempty"`
	Rewards     *PuzzleRewards `yaml:"rewards,omitempty"`
	Location    string         `yaml:"location,omitempty"`
}

// StepCompleted reports whether action satisfies target. Every field present
// in target must match; topics match case-insensitively when either contains
// the other. An empty target is never satisfied.
func StepCompleted(target Target, action Action) bool {
	if target.IsEmpty() {
		return false
	}
	if target.Section != "" && action.Section != target.Section {
		return false
	}
	if target.Era != "" && action.Era != target.Era {
		return false
	}
	if target.NPC != "" && action.NPC != target.NPC {
		return false
	}
	if target.Topic != "" && !topicMatches(target.Topic, action.Topic) {
		return false
	}
	if target.Puzzle != "" && action.Puzzle != target.Puzzle {
		return false
	}
	if target.Read && !action.Read {
		return false
	}
	return true
}

func topicMatches(want, got string) bool {
	if got == "" {
		return false
	}
	want, got = strings.ToLower(want), strings.ToLower(got)
	return strings.Contains(got, want) || strings.Contains(want, got)
}
