package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 100, XPForLevel(1))
	assert.Equal(t, 120, XPForLevel(2))
	for l := 2; l < MaxLevel; l++ {
		assert.Greater(t, XPForLevel(l+1), XPForLevel(l))
	}
}

func TestTitleForLevel(t *testing.T) {
	cases := map[int]string{
		1:  "Novice Programmer",
		5:  "Novice Programmer",
		6:  "Apprentice Developer",
		11: "Junior Engineer",
		20: "Journeyman Coder",
		21: "Senior Developer",
		31: "Expert Engineer",
		41: "Master Architect",
		50: "Standard Scholar",
	}
	for level, want := range cases {
		assert.Equal(t, want, TitleForLevel(level), "level %d", level)
	}
}

func TestGainExperience_LevelsUp(t *testing.T) {
	p := New(nil, DefaultDefaults)

	lv := p.GainExperience(250)

	assert.True(t, lv.LeveledUp)
	assert.Equal(t, 3, lv.NewLevel)
	assert.Equal(t, 3, p.Level())
	assert.Equal(t, 30, p.Experience())
	assert.Equal(t, XPForLevel(3), p.ExperienceToNext())
	assert.Empty(t, lv.NewTitle)
}

func TestGainExperience_ReportsTitleChange(t *testing.T) {
	p := New(nil, DefaultDefaults)
	total := 0
	for l := 1; l < 6; l++ {
		total += XPForLevel(l)
	}

	lv := p.GainExperience(total)

	assert.Equal(t, 6, p.Level())
	assert.Equal(t, "Apprentice Developer", lv.NewTitle)
	assert.Equal(t, "Apprentice Developer", p.Title())
}

func TestGainExperience_IgnoresNonPositive(t *testing.T) {
	p := New(nil, DefaultDefaults)
	assert.False(t, p.GainExperience(0).LeveledUp)
	assert.False(t, p.GainExperience(-5).LeveledUp)
	assert.Equal(t, 0, p.Experience())
	assert.False(t, p.Dirty())
}

func TestGainExperience_CapsAtMaxLevel(t *testing.T) {
	p := New(nil, DefaultDefaults)
	p.GainExperience(1 << 30)
	assert.Equal(t, MaxLevel, p.Level())
	assert.Equal(t, 0, p.Experience())

	lv := p.GainExperience(500)
	assert.False(t, lv.LeveledUp)
	assert.Equal(t, 0, p.Experience())
}

func TestProperty_LevelNeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := New(nil, DefaultDefaults)
		gains := rapid.SliceOfN(rapid.IntRange(-100, 100_000), 1, 40).Draw(rt, "gains")
		for _, g := range gains {
			p.GainExperience(g)
			if p.Level() > MaxLevel || p.Level() < 1 {
				rt.Fatalf("level out of range: %d", p.Level())
			}
			if p.Level() < MaxLevel && p.Experience() >= p.ExperienceToNext() {
				rt.Fatalf("unspent level-up: xp %d of %d", p.Experience(), p.ExperienceToNext())
			}
		}
	})
}

func TestProperty_SplitGainMatchesSingleGain(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 5000).Draw(rt, "a")
		b := rapid.IntRange(1, 5000).Draw(rt, "b")

		split := New(nil, DefaultDefaults)
		split.GainExperience(a)
		split.GainExperience(b)

		whole := New(nil, DefaultDefaults)
		whole.GainExperience(a + b)

		require.Less(rt, whole.Level(), MaxLevel)
		assert.Equal(rt, whole.Level(), split.Level())
		assert.Equal(rt, whole.Experience(), split.Experience())
		assert.Equal(rt, whole.Title(), split.Title())
	})
}

func TestGainExperience_KeepsQuestTitleUntilThreshold(t *testing.T) {
	p := New(nil, DefaultDefaults)
	p.SetTitle("Lambda Whisperer")

	p.GainExperience(XPForLevel(1))
	assert.Equal(t, 2, p.Level())
	assert.Equal(t, "Lambda Whisperer", p.Title())
}
