package progress

import "math"

// MaxLevel is the level cap. Experience gained at the cap is discarded.
const MaxLevel = 50

// XP awarded by fixed game events.
const (
	XPNewSection      = 10
	XPFirstTimeTravel = 50
	XPNewItem         = 15
	XPFirstNPCTalk    = 10
)

type levelTitle struct {
	minLevel int
	title    string
}

// levelTitles is ordered by ascending minLevel.
var levelTitles = []levelTitle{
	{1, "Novice Programmer"},
	{6, "Apprentice Developer"},
	{11, "Junior Engineer"},
	{16, "Journeyman Coder"},
	{21, "Senior Developer"},
	{31, "Expert Engineer"},
	{41, "Master Architect"},
	{46, "Standard Scholar"},
}

// XPForLevel returns the experience needed to advance past level:
// floor(100 * 1.2^(level-1)).
func XPForLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.2, float64(level-1))))
}

// TitleForLevel returns the title of the highest threshold not above level.
func TitleForLevel(level int) string {
	title := levelTitles[0].title
	for _, lt := range levelTitles {
		if level >= lt.minLevel {
			title = lt.title
		}
	}
	return title
}

// LevelUp reports the effect of an experience gain.
type LevelUp struct {
	// Amount is the experience granted.
	Amount int
	// LeveledUp is true when at least one level was gained.
	LeveledUp bool
	// NewLevel is the level after the gain; zero unless LeveledUp.
	NewLevel int
	// NewTitle is set when a level crossed a title threshold. It replaces
	// any title earned from a quest.
	NewTitle string
}

// GainExperience adds amount and applies every level-up it pays for.
// Excess experience at MaxLevel is discarded.
//
// Precondition: amount should be positive; non-positive amounts are ignored.
// Postcondition: Level ≤ MaxLevel and, below the cap, Experience < ExperienceToNext.
func (p *Progress) GainExperience(amount int) LevelUp {
	res := LevelUp{Amount: amount}
	if amount <= 0 {
		return res
	}
	s := p.state
	if s.Level >= MaxLevel {
		return res
	}
	s.Experience += amount
	for s.Experience >= s.ExperienceToNext && s.Level < MaxLevel {
		s.Experience -= s.ExperienceToNext
		s.Level++
		s.ExperienceToNext = XPForLevel(s.Level)
		if title := TitleForLevel(s.Level); title != TitleForLevel(s.Level-1) {
			s.Title = title
			res.NewTitle = title
		}
		res.LeveledUp = true
		res.NewLevel = s.Level
	}
	if s.Level >= MaxLevel {
		s.Experience = 0
	}
	p.touch()
	return res
}
