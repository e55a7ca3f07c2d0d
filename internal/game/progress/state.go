// Package progress holds the single player's mutable progress record and its
// experience and leveling arithmetic. Mutations return their effect and mark
// the record dirty; persisting it is the caller's decision.
package progress

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SaveVersion is the format version written into every record.
const SaveVersion = "1.0.0"

// Default stat names; each starts at DefaultStatValue.
const (
	StatFundamentals    = "fundamentals"
	StatLibrary         = "library"
	StatMetaprogramming = "metaprogramming"
	StatModernCpp       = "modernCpp"

	DefaultStatValue = 10
	MaxStatValue     = 100
)

// QuestProgress tracks how far a single active quest has advanced.
type QuestProgress struct {
	// CurrentStep indexes the step the player is working on.
	CurrentStep int `json:"currentStep"`
	// Completed lists finished step indices in completion order.
	Completed []int `json:"completed"`
}

// State is the serialized progress record. Set-like fields are ordered slices
// without duplicates so that discovery order survives a save.
type State struct {
	Version   string    `json:"version"`
	PlayerID  string    `json:"playerId"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `json:"name"`
	Title string `json:"title"`

	Level            int `json:"level"`
	Experience       int `json:"experience"`
	ExperienceToNext int `json:"experienceToNext"`

	Stats map[string]int `json:"stats"`

	CurrentLocation string `json:"currentLocation"`
	CurrentEra      string `json:"currentEra"`

	Inventory            []string `json:"inventory"`
	SectionsVisited      []string `json:"sectionsVisited"`
	TimeTravelsPerformed int      `json:"timeTravelsPerformed"`
	NPCsSpokenTo         []string `json:"npcsSpokenTo"`
	TopicsLearned        []string `json:"topicsLearned"`
	SolvedPuzzles        []string `json:"solvedPuzzles"`

	ActiveQuests    []string                  `json:"activeQuests"`
	CompletedQuests []string                  `json:"completedQuests"`
	QuestProgress   map[string]*QuestProgress `json:"questProgress"`
}

// Defaults configures the starting position of a fresh record.
type Defaults struct {
	StartLocation string
	StartEra      string
}

// DefaultDefaults starts new players at the introduction in C++23.
var DefaultDefaults = Defaults{StartLocation: "intro", StartEra: "n4950"}

// NewState returns a fresh record positioned per d.
//
// Postcondition: Level is 1, every collection is empty and non-nil, and
// PlayerID is a new UUID.
func NewState(d Defaults) *State {
	return &State{
		Version:          SaveVersion,
		PlayerID:         uuid.NewString(),
		Name:             "Traveler",
		Title:            TitleForLevel(1),
		Level:            1,
		ExperienceToNext: XPForLevel(1),
		Stats:            defaultStats(),
		CurrentLocation: d.StartLocation,
		CurrentEra:      d.StartEra,
		Inventory:       []string{},
		SectionsVisited: []string{},
		NPCsSpokenTo:    []string{},
		TopicsLearned:   []string{},
		SolvedPuzzles:   []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
		QuestProgress:   map[string]*QuestProgress{},
	}
}

func defaultStats() map[string]int {
	return map[string]int{
		StatFundamentals:    DefaultStatValue,
		StatLibrary:         DefaultStatValue,
		StatMetaprogramming: DefaultStatValue,
		StatModernCpp:       DefaultStatValue,
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Stats = maps.Clone(s.Stats)
	c.Inventory = slices.Clone(s.Inventory)
	c.SectionsVisited = slices.Clone(s.SectionsVisited)
	c.NPCsSpokenTo = slices.Clone(s.NPCsSpokenTo)
	c.TopicsLearned = slices.Clone(s.TopicsLearned)
	c.SolvedPuzzles = slices.Clone(s.SolvedPuzzles)
	c.ActiveQuests = slices.Clone(s.ActiveQuests)
	c.CompletedQuests = slices.Clone(s.CompletedQuests)
	c.QuestProgress = make(map[string]*QuestProgress, len(s.QuestProgress))
	for id, qp := range s.QuestProgress {
		if qp == nil {
			continue
		}
		c.QuestProgress[id] = &QuestProgress{CurrentStep: qp.CurrentStep, Completed: slices.Clone(qp.Completed)}
	}
	return &c
}

// Encode serializes s for a Store.
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding progress: %w", err)
	}
	return data, nil
}

// Decode parses a saved record on top of NewState(d), so fields added since
// the record was written keep their defaults and recognized fields carry
// forward. Stats and quest progress merge key by key.
//
// Postcondition: Returns a normalized State, or an error when data is not a
// JSON object.
func Decode(data []byte, d Defaults) (*State, error) {
	s := NewState(d)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding progress: %w", err)
	}
	s.normalize(d)
	return s, nil
}

// normalize repairs fields a hand-edited or older record may have broken.
func (s *State) normalize(d Defaults) {
	if s.PlayerID == "" {
		s.PlayerID = uuid.NewString()
	}
	if s.Stats == nil {
		s.Stats = map[string]int{}
	}
	for k, v := range defaultStats() {
		if _, ok := s.Stats[k]; !ok {
			s.Stats[k] = v
		}
	}
	for k, v := range s.Stats {
		s.Stats[k] = clampStat(v)
	}

	// The threshold is derived from the level and never trusted from disk.
	s.Level = max(1, min(s.Level, MaxLevel))
	s.ExperienceToNext = XPForLevel(s.Level)
	if s.Level == MaxLevel {
		s.Experience = 0
	} else {
		s.Experience = max(0, min(s.Experience, s.ExperienceToNext-1))
	}
	if s.Title == "" {
		s.Title = TitleForLevel(s.Level)
	}
	if s.CurrentLocation == "" {
		s.CurrentLocation = d.StartLocation
	}
	if s.CurrentEra == "" {
		s.CurrentEra = d.StartEra
	}
	s.Inventory = dedupe(s.Inventory)
	s.SectionsVisited = dedupe(s.SectionsVisited)
	s.NPCsSpokenTo = dedupe(s.NPCsSpokenTo)
	s.TopicsLearned = dedupe(s.TopicsLearned)
	s.SolvedPuzzles = dedupe(s.SolvedPuzzles)
	s.CompletedQuests = dedupe(s.CompletedQuests)
	s.ActiveQuests = slices.DeleteFunc(dedupe(s.ActiveQuests), func(id string) bool {
		return slices.Contains(s.CompletedQuests, id)
	})
	if s.QuestProgress == nil {
		s.QuestProgress = map[string]*QuestProgress{}
	}
	for _, id := range s.ActiveQuests {
		qp := s.QuestProgress[id]
		if qp == nil {
			s.QuestProgress[id] = &QuestProgress{Completed: []int{}}
			continue
		}
		if qp.Completed == nil {
			qp.Completed = []int{}
		}
		qp.CurrentStep = max(0, qp.CurrentStep)
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func clampStat(v int) int {
	return max(0, min(v, MaxStatValue))
}
