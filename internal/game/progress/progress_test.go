package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState(DefaultDefaults)
	assert.Equal(t, "Traveler", s.Name)
	assert.Equal(t, "Novice Programmer", s.Title)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 100, s.ExperienceToNext)
	assert.Equal(t, "intro", s.CurrentLocation)
	assert.Equal(t, "n4950", s.CurrentEra)
	assert.Equal(t, 10, s.Stats[StatModernCpp])
	assert.Len(t, s.Stats, 4)
	assert.NotEmpty(t, s.PlayerID)
}

func TestMoveTo_FirstVisitGrantsXP(t *testing.T) {
	p := New(nil, DefaultDefaults)

	discovered, _ := p.MoveTo("expr")
	require.True(t, discovered)
	assert.Equal(t, XPNewSection, p.Experience())
	assert.True(t, p.Dirty())

	discovered, _ = p.MoveTo("expr")
	assert.False(t, discovered)
	assert.Equal(t, XPNewSection, p.Experience())
	assert.Equal(t, "expr", p.Location())
	assert.Equal(t, []string{"expr"}, p.Visited())
}

func TestSetEra_OnlyFirstTravelGrantsXP(t *testing.T) {
	p := New(nil, DefaultDefaults)

	first, _ := p.SetEra("n3337")
	assert.True(t, first)
	first, _ = p.SetEra("n4950")
	assert.False(t, first)

	assert.Equal(t, 2, p.TimeTravels())
	assert.Equal(t, XPFirstTimeTravel, p.Experience())
	assert.Equal(t, "n4950", p.Era())
}

func TestAddItem_NoDuplicates(t *testing.T) {
	p := New(nil, DefaultDefaults)

	added, _ := p.AddItem("lambda_lens")
	assert.True(t, added)
	added, _ = p.AddItem("lambda_lens")
	assert.False(t, added)

	assert.Equal(t, []string{"lambda_lens"}, p.Inventory())
	assert.Equal(t, XPNewItem, p.Experience())
}

func TestBoostStat(t *testing.T) {
	p := New(nil, DefaultDefaults)

	v, ok := p.BoostStat(StatLibrary, 5)
	assert.True(t, ok)
	assert.Equal(t, 15, v)

	v, _ = p.BoostStat(StatLibrary, 500)
	assert.Equal(t, MaxStatValue, v)

	_, ok = p.BoostStat("charisma", 5)
	assert.False(t, ok)
	assert.Len(t, p.Stats(), 4)
}

func TestTalkTo_FirstTimeOnly(t *testing.T) {
	p := New(nil, DefaultDefaults)
	first, _ := p.TalkTo("bjarne")
	assert.True(t, first)
	first, _ = p.TalkTo("bjarne")
	assert.False(t, first)
	assert.Equal(t, XPFirstNPCTalk, p.Experience())
}

func TestLearnTopic(t *testing.T) {
	p := New(nil, DefaultDefaults)
	assert.True(t, p.LearnTopic("bjarne", "lambda"))
	assert.False(t, p.LearnTopic("bjarne", "lambda"))
	assert.True(t, p.HasLearned("bjarne", "lambda"))
	assert.False(t, p.HasLearned("herb", "lambda"))
}

func TestQuestLifecycle(t *testing.T) {
	p := New(nil, DefaultDefaults)

	require.True(t, p.StartQuest("q1"))
	assert.False(t, p.StartQuest("q1"))
	qp, ok := p.QuestProgress("q1")
	require.True(t, ok)
	assert.Equal(t, 0, qp.CurrentStep)
	assert.Empty(t, qp.Completed)

	p.SetQuestProgress("q1", QuestProgress{CurrentStep: 1, Completed: []int{0}})
	qp, _ = p.QuestProgress("q1")
	assert.Equal(t, QuestProgress{CurrentStep: 1, Completed: []int{0}}, qp)

	p.CompleteQuest("q1")
	assert.False(t, p.IsActive("q1"))
	assert.True(t, p.IsCompleted("q1"))
	assert.False(t, p.StartQuest("q1"))

	p.CompleteQuest("q1")
	assert.Equal(t, []string{"q1"}, p.CompletedQuests())

	p.ResetQuest("q1")
	assert.False(t, p.IsCompleted("q1"))
	assert.True(t, p.StartQuest("q1"))
}

func TestCompleteQuest_ToleratesUnknownQuest(t *testing.T) {
	p := New(nil, DefaultDefaults)
	p.CompleteQuest("never-started")
	assert.True(t, p.IsCompleted("never-started"))
	assert.Empty(t, p.ActiveQuests())
}

func TestQuestProgress_ReturnsCopy(t *testing.T) {
	p := New(nil, DefaultDefaults)
	p.StartQuest("q1")
	p.SetQuestProgress("q1", QuestProgress{CurrentStep: 1, Completed: []int{0}})

	qp, _ := p.QuestProgress("q1")
	qp.Completed[0] = 99

	again, _ := p.QuestProgress("q1")
	assert.Equal(t, []int{0}, again.Completed)
}

func TestReset(t *testing.T) {
	p := New(nil, DefaultDefaults)
	id := p.PlayerID()
	p.MoveTo("expr")
	p.MarkClean()

	p.Reset()

	assert.True(t, p.Dirty())
	assert.Empty(t, p.Visited())
	assert.Equal(t, "intro", p.Location())
	assert.NotEqual(t, id, p.PlayerID())
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	p := New(nil, DefaultDefaults)
	p.AddItem("a")
	snap := p.Snapshot()
	snap.Inventory[0] = "b"
	snap.Stats[StatLibrary] = 99
	assert.Equal(t, []string{"a"}, p.Inventory())
	assert.Equal(t, DefaultStatValue, p.Stat(StatLibrary))
}

func TestProperty_ActiveAndCompletedStayDisjoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := New(nil, DefaultDefaults)
		ids := []string{"q1", "q2", "q3"}
		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 30).Draw(rt, "ops")
		for i, op := range ops {
			id := rapid.SampledFrom(ids).Draw(rt, "id"+string(rune('a'+i%26)))
			switch op {
			case 0:
				p.StartQuest(id)
			case 1:
				p.CompleteQuest(id)
			case 2:
				p.ResetQuest(id)
			}
			for _, a := range p.ActiveQuests() {
				if p.IsCompleted(a) {
					rt.Fatalf("quest %s is both active and completed", a)
				}
			}
		}
	})
}
