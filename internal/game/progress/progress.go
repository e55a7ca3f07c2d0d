package progress

import (
	"maps"
	"slices"
	"time"
)

// Progress owns the live State for one player.
// It is not safe for concurrent use; the game loop is single-threaded.
type Progress struct {
	state    *State
	defaults Defaults
	dirty    bool
	now      func() time.Time
}

// New wraps s. A nil s starts a fresh record from d.
func New(s *State, d Defaults) *Progress {
	if s == nil {
		s = NewState(d)
	}
	return &Progress{state: s, defaults: d, now: time.Now}
}

// Snapshot returns a deep copy of the current record for persistence.
func (p *Progress) Snapshot() *State {
	return p.state.Clone()
}

// Dirty reports whether the record changed since the last MarkClean.
func (p *Progress) Dirty() bool { return p.dirty }

// MarkClean clears the dirty flag after a successful save.
func (p *Progress) MarkClean() { p.dirty = false }

// Reset discards everything and starts a fresh record.
func (p *Progress) Reset() {
	p.state = NewState(p.defaults)
	p.touch()
}

func (p *Progress) touch() {
	p.dirty = true
	p.state.UpdatedAt = p.now().UTC()
}

func (p *Progress) PlayerID() string          { return p.state.PlayerID }
func (p *Progress) Name() string              { return p.state.Name }
func (p *Progress) Title() string             { return p.state.Title }
func (p *Progress) Level() int                { return p.state.Level }
func (p *Progress) Experience() int           { return p.state.Experience }
func (p *Progress) ExperienceToNext() int     { return p.state.ExperienceToNext }
func (p *Progress) Location() string          { return p.state.CurrentLocation }
func (p *Progress) Era() string               { return p.state.CurrentEra }
func (p *Progress) TimeTravels() int          { return p.state.TimeTravelsPerformed }
func (p *Progress) Stats() map[string]int     { return maps.Clone(p.state.Stats) }
func (p *Progress) Stat(name string) int      { return p.state.Stats[name] }
func (p *Progress) Inventory() []string       { return slices.Clone(p.state.Inventory) }
func (p *Progress) Visited() []string         { return slices.Clone(p.state.SectionsVisited) }
func (p *Progress) ActiveQuests() []string    { return slices.Clone(p.state.ActiveQuests) }
func (p *Progress) CompletedQuests() []string { return slices.Clone(p.state.CompletedQuests) }

func (p *Progress) HasItem(id string) bool        { return slices.Contains(p.state.Inventory, id) }
func (p *Progress) HasVisited(name string) bool   { return slices.Contains(p.state.SectionsVisited, name) }
func (p *Progress) HasSpokenTo(npc string) bool   { return slices.Contains(p.state.NPCsSpokenTo, npc) }
func (p *Progress) IsActive(quest string) bool    { return slices.Contains(p.state.ActiveQuests, quest) }
func (p *Progress) IsCompleted(quest string) bool { return slices.Contains(p.state.CompletedQuests, quest) }
func (p *Progress) HasSolved(puzzle string) bool  { return slices.Contains(p.state.SolvedPuzzles, puzzle) }

// HasLearned reports whether the topic was already discussed with npc.
func (p *Progress) HasLearned(npc, topic string) bool {
	return slices.Contains(p.state.TopicsLearned, topicKey(npc, topic))
}

// SetName renames the player.
func (p *Progress) SetName(name string) {
	if name == "" || name == p.state.Name {
		return
	}
	p.state.Name = name
	p.touch()
}

// SetTitle overrides the level title, as quest rewards may.
func (p *Progress) SetTitle(title string) {
	if title == "" || title == p.state.Title {
		return
	}
	p.state.Title = title
	p.touch()
}

// MoveTo sets the current location. The first visit to a section records it
// and grants XPNewSection.
//
// Postcondition: Location() == name and HasVisited(name).
func (p *Progress) MoveTo(name string) (discovered bool, lv LevelUp) {
	p.state.CurrentLocation = name
	p.touch()
	if p.HasVisited(name) {
		return false, LevelUp{}
	}
	p.state.SectionsVisited = append(p.state.SectionsVisited, name)
	return true, p.GainExperience(XPNewSection)
}

// Relocate places the player without counting a visit or a time travel. It
// repairs a saved position that no longer exists in the world.
func (p *Progress) Relocate(location, era string) {
	if location != "" {
		p.state.CurrentLocation = location
	}
	if era != "" {
		p.state.CurrentEra = era
	}
	p.touch()
}

// SetEra changes the current era and counts the time travel. The first time
// travel ever grants XPFirstTimeTravel.
func (p *Progress) SetEra(era string) (first bool, lv LevelUp) {
	p.state.CurrentEra = era
	p.state.TimeTravelsPerformed++
	p.touch()
	if p.state.TimeTravelsPerformed != 1 {
		return false, LevelUp{}
	}
	return true, p.GainExperience(XPFirstTimeTravel)
}

// AddItem adds id to the inventory, granting XPNewItem when it is new.
func (p *Progress) AddItem(id string) (added bool, lv LevelUp) {
	if id == "" || p.HasItem(id) {
		return false, LevelUp{}
	}
	p.state.Inventory = append(p.state.Inventory, id)
	p.touch()
	return true, p.GainExperience(XPNewItem)
}

// BoostStat raises a known stat by amount, clamped to MaxStatValue.
// Unknown stat names are ignored and report ok false.
func (p *Progress) BoostStat(name string, amount int) (value int, ok bool) {
	cur, ok := p.state.Stats[name]
	if !ok {
		return 0, false
	}
	value = clampStat(cur + amount)
	if value != cur {
		p.state.Stats[name] = value
		p.touch()
	}
	return value, true
}

// TalkTo records a conversation with npc. The first one grants XPFirstNPCTalk.
func (p *Progress) TalkTo(npc string) (first bool, lv LevelUp) {
	if p.HasSpokenTo(npc) {
		return false, LevelUp{}
	}
	p.state.NPCsSpokenTo = append(p.state.NPCsSpokenTo, npc)
	p.touch()
	return true, p.GainExperience(XPFirstNPCTalk)
}

// LearnTopic records that npc explained topic. Reports whether it was new.
func (p *Progress) LearnTopic(npc, topic string) bool {
	key := topicKey(npc, topic)
	if slices.Contains(p.state.TopicsLearned, key) {
		return false
	}
	p.state.TopicsLearned = append(p.state.TopicsLearned, key)
	p.touch()
	return true
}

// RecordPuzzleSolved marks puzzle solved. Reports whether it was new.
func (p *Progress) RecordPuzzleSolved(puzzle string) bool {
	if p.HasSolved(puzzle) {
		return false
	}
	p.state.SolvedPuzzles = append(p.state.SolvedPuzzles, puzzle)
	p.touch()
	return true
}

// StartQuest activates quest with fresh step progress.
//
// Postcondition: Returns false, changing nothing, when quest is already
// active or completed.
func (p *Progress) StartQuest(quest string) bool {
	if p.IsActive(quest) || p.IsCompleted(quest) {
		return false
	}
	p.state.ActiveQuests = append(p.state.ActiveQuests, quest)
	p.state.QuestProgress[quest] = &QuestProgress{Completed: []int{}}
	p.touch()
	return true
}

// CompleteQuest moves quest from active to completed. It tolerates a quest
// that was never active.
//
// Postcondition: IsCompleted(quest) and !IsActive(quest).
func (p *Progress) CompleteQuest(quest string) {
	p.state.ActiveQuests = slices.DeleteFunc(p.state.ActiveQuests, func(id string) bool { return id == quest })
	if !p.IsCompleted(quest) {
		p.state.CompletedQuests = append(p.state.CompletedQuests, quest)
	}
	p.touch()
}

// ResetQuest forgets everything about quest so it can be offered again.
func (p *Progress) ResetQuest(quest string) {
	p.state.ActiveQuests = slices.DeleteFunc(p.state.ActiveQuests, func(id string) bool { return id == quest })
	p.state.CompletedQuests = slices.DeleteFunc(p.state.CompletedQuests, func(id string) bool { return id == quest })
	delete(p.state.QuestProgress, quest)
	p.touch()
}

// QuestProgress returns a copy of the step progress for quest.
func (p *Progress) QuestProgress(quest string) (QuestProgress, bool) {
	qp, ok := p.state.QuestProgress[quest]
	if !ok || qp == nil {
		return QuestProgress{}, false
	}
	return QuestProgress{CurrentStep: qp.CurrentStep, Completed: slices.Clone(qp.Completed)}, true
}

// SetQuestProgress stores step progress computed by the quest engine.
func (p *Progress) SetQuestProgress(quest string, qp QuestProgress) {
	if qp.Completed == nil {
		qp.Completed = []int{}
	}
	p.state.QuestProgress[quest] = &QuestProgress{CurrentStep: qp.CurrentStep, Completed: slices.Clone(qp.Completed)}
	p.touch()
}

func topicKey(npc, topic string) string { return npc + "_" + topic }
