package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"github.com/cory-johannsen/stdquest/internal/game/world"
)

// Report lists problems found by Lint. Errors make a quest uncompletable;
// warnings are suspicious but playable.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the report holds no errors.
func (r Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Lint checks that every quest in c can be completed against m: givers,
// locations, prerequisites, step targets and reward items must all exist,
// puzzles must be well formed, and prerequisites must not form a cycle.
//
// Precondition: c and m must be non-nil.
func Lint(c *Catalog, m *world.Map) Report {
	var r Report
	for _, q := range c.quests {
		lintQuest(&r, c, m, q)
	}
	for _, p := range c.puzzles {
		lintPuzzle(&r, p)
	}
	if cycle := prerequisiteCycle(c); cycle != nil {
		r.errorf("Circular prerequisites: %s", strings.Join(cycle, " -> "))
	}
	return r
}

func lintQuest(r *Report, c *Catalog, m *world.Map, q *quest.Quest) {
	giver, giverOK := c.NPC(q.Giver)
	if q.Giver != "" && !giverOK {
		r.errorf("Quest '%s': giver NPC '%s' not found", q.ID, q.Giver)
	}
	_, locOK := m.Section(q.GiverLocation)
	if q.GiverLocation != "" && !locOK {
		r.errorf("Quest '%s': giverLocation '%s' not found", q.ID, q.GiverLocation)
	}
	if giverOK && locOK && !slices.Contains(giver.Locations, q.GiverLocation) {
		locs := strings.Join(giver.Locations, ", ")
		if locs == "" {
			locs = "none"
		}
		r.errorf("Quest '%s': giver NPC '%s' is not at giverLocation '%s' (NPC locations: %s)", q.ID, q.Giver, q.GiverLocation, locs)
	}
	if giverOK && !slices.Contains(giver.Quests, q.ID) {
		r.errorf("Quest '%s': giver NPC '%s' doesn't have this quest in their quests list", q.ID, q.Giver)
	}
	for _, pre := range q.Prerequisites {
		if _, ok := c.Quest(pre); !ok {
			r.errorf("Quest '%s': prerequisite quest '%s' not found", q.ID, pre)
		}
	}
	if len(q.Steps) == 0 {
		r.warnf("Quest '%s': has no steps", q.ID)
	}
	for i, step := range q.Steps {
		lintStep(r, c, m, fmt.Sprintf("Quest '%s' step %d", q.ID, i+1), step)
	}
	if q.Rewards != nil {
		for _, id := range q.Rewards.Items {
			if _, ok := c.Item(id); !ok {
				r.errorf("Quest '%s': reward item '%s' not found", q.ID, id)
			}
		}
	}
}

func lintStep(r *Report, c *Catalog, m *world.Map, prefix string, step quest.Step) {
	if step.Target == nil || step.Target.IsEmpty() {
		r.warnf("%s: has no target and can never complete", prefix)
	} else {
		t := step.Target
		if t.Section != "" {
			sec, ok := m.Section(t.Section)
			switch {
			case !ok:
				r.errorf("%s: section '%s' not found", prefix, t.Section)
			case t.Era != "" && !sec.InEra(t.Era):
				avail := strings.Join(sec.AvailableIn, ", ")
				if avail == "" {
					avail = "none"
				}
				r.errorf("%s: section '%s' not available in era '%s' (available in: %s)", prefix, t.Section, t.Era, avail)
			}
		}
		if t.Era != "" && !m.HasEra(t.Era) {
			r.errorf("%s: era '%s' not found", prefix, t.Era)
		}
		if t.NPC != "" {
			npc, ok := c.NPC(t.NPC)
			switch {
			case !ok:
				r.errorf("%s: NPC '%s' not found", prefix, t.NPC)
			case t.Topic != "" && !npc.HasTopic(t.Topic):
				r.warnf("%s: NPC '%s' missing topic '%s'", prefix, t.NPC, t.Topic)
			}
		}
		if t.Puzzle != "" {
			if _, ok := c.Puzzle(t.Puzzle); !ok {
				r.errorf("%s: puzzle '%s' not found", prefix, t.Puzzle)
			}
		}
	}
	if oc := step.OnComplete; oc != nil && oc.Item != "" {
		if _, ok := c.Item(oc.Item); !ok {
			r.errorf("%s: onComplete item '%s' not found", prefix, oc.Item)
		}
	}
}

func lintPuzzle(r *Report, p *quest.Puzzle) {
	switch p.Type {
	case quest.PuzzleQuiz:
		if len(p.Answers) == 0 {
			r.errorf("Puzzle '%s': quiz has no answers", p.ID)
		}
		for _, a := range p.Answers {
			if u := strings.ToUpper(a); u != "T" && u != "F" {
				r.errorf("Puzzle '%s': quiz answer '%s' must be T or F", p.ID, a)
			}
		}
	case quest.PuzzleMatching:
		if len(p.Pairs) == 0 {
			r.errorf("Puzzle '%s': matching puzzle has no pairs", p.ID)
		}
		if len(p.Pairs) > 26 {
			r.errorf("Puzzle '%s': matching puzzle has more than 26 pairs", p.ID)
		}
		for i, pair := range p.Pairs {
			if len(pair) != 2 {
				r.errorf("Puzzle '%s': pair %d must have exactly two entries", p.ID, i+1)
			}
		}
	default:
		r.errorf("Puzzle '%s': unknown type '%s'", p.ID, p.Type)
	}
}

// prerequisiteCycle returns the first prerequisite cycle found, closed by
// repeating its first quest, or nil.
func prerequisiteCycle(c *Catalog) []string {
	visited := make(map[string]bool)
	var path []string
	var find func(id string) []string
	find = func(id string) []string {
		if i := slices.Index(path, id); i >= 0 {
			return append(slices.Clone(path[i:]), id)
		}
		q, ok := c.Quest(id)
		if visited[id] || !ok {
			return nil
		}
		visited[id] = true
		path = append(path, id)
		for _, pre := range q.Prerequisites {
			if cycle := find(pre); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		return nil
	}
	for _, q := range c.quests {
		if cycle := find(q.ID); cycle != nil {
			return cycle
		}
	}
	return nil
}
