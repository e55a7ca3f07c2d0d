package content

import (
	"testing"

	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_CleanContent(t *testing.T) {
	r := Lint(loadTestCatalog(t), loadWorld(t))
	assert.True(t, r.OK(), "errors: %v", r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestLint_ReportsBrokenReferences(t *testing.T) {
	q := &quest.Quest{
		ID:            "broken",
		Giver:         "ghost",
		GiverLocation: "nowhere",
		Prerequisites: []string{"missing"},
		Steps: []quest.Step{
			{Target: &quest.Target{Section: "class.copy", Era: "n4950"}},
			{Target: &quest.Target{NPC: "bjarne", Topic: "coroutines"}},
			{Target: &quest.Target{Puzzle: "nope"}, OnComplete: &quest.StepReward{Item: "phantom"}},
			{Instruction: "nothing to do"},
		},
		Rewards: &quest.Rewards{Items: []string{"phantom"}},
	}
	bjarne := &NPC{ID: "bjarne", Locations: []string{"intro"}}
	c, err := NewCatalog([]*quest.Quest{q}, []*NPC{bjarne}, nil, nil)
	require.NoError(t, err)

	r := Lint(c, loadWorld(t))

	assert.False(t, r.OK())
	assert.ElementsMatch(t, []string{
		"Quest 'broken': giver NPC 'ghost' not found",
		"Quest 'broken': giverLocation 'nowhere' not found",
		"Quest 'broken': prerequisite quest 'missing' not found",
		"Quest 'broken' step 1: section 'class.copy' not available in era 'n4950' (available in: n3337)",
		"Quest 'broken' step 3: puzzle 'nope' not found",
		"Quest 'broken' step 3: onComplete item 'phantom' not found",
		"Quest 'broken': reward item 'phantom' not found",
	}, r.Errors)
	assert.ElementsMatch(t, []string{
		"Quest 'broken' step 2: NPC 'bjarne' missing topic 'coroutines'",
		"Quest 'broken' step 4: has no target and can never complete",
	}, r.Warnings)
}

func TestLint_GiverPlacement(t *testing.T) {
	q := &quest.Quest{ID: "q", Giver: "herb", GiverLocation: "expr", Steps: []quest.Step{{Target: &quest.Target{Section: "intro"}}}}
	herb := &NPC{ID: "herb", Locations: []string{"intro"}}
	c, _ := NewCatalog([]*quest.Quest{q}, []*NPC{herb}, nil, nil)

	r := Lint(c, loadWorld(t))
	assert.ElementsMatch(t, []string{
		"Quest 'q': giver NPC 'herb' is not at giverLocation 'expr' (NPC locations: intro)",
		"Quest 'q': giver NPC 'herb' doesn't have this quest in their quests list",
	}, r.Errors)
}

func TestLint_CircularPrerequisites(t *testing.T) {
	step := []quest.Step{{Target: &quest.Target{Section: "intro"}}}
	a := &quest.Quest{ID: "a", Prerequisites: []string{"b"}, Steps: step}
	b := &quest.Quest{ID: "b", Prerequisites: []string{"c"}, Steps: step}
	cq := &quest.Quest{ID: "c", Prerequisites: []string{"a"}, Steps: step}
	c, _ := NewCatalog([]*quest.Quest{a, b, cq}, nil, nil, nil)

	r := Lint(c, loadWorld(t))
	assert.Equal(t, []string{"Circular prerequisites: a -> b -> c -> a"}, r.Errors)
}

func TestLint_PuzzleShape(t *testing.T) {
	puzzles := []*quest.Puzzle{
		{ID: "q", Type: quest.PuzzleQuiz, Answers: []string{"T", "maybe"}},
		{ID: "m", Type: quest.PuzzleMatching, Pairs: [][]string{{"a", "b"}, {"c"}}},
		{ID: "x", Type: "riddle"},
	}
	c, _ := NewCatalog(nil, nil, nil, puzzles)

	r := Lint(c, loadWorld(t))
	assert.Equal(t, []string{
		"Puzzle 'q': quiz answer 'maybe' must be T or F",
		"Puzzle 'm': pair 2 must have exactly two entries",
		"Puzzle 'x': unknown type 'riddle'",
	}, r.Errors)
}
