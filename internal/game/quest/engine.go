package quest

import (
	"github.com/cory-johannsen/stdquest/internal/game/gameerr"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"go.uber.org/zap"
)

// Lookup resolves content referenced by quest definitions.
type Lookup interface {
	Quest(id string) (*Quest, bool)
	Puzzle(id string) (*Puzzle, bool)
	// ItemName returns the display name of a defined item.
	ItemName(id string) (string, bool)
}

// Grant describes rewards actually applied to the player.
type Grant struct {
	XP      int
	Items   []string // display names
	Title   string
	LevelUp progress.LevelUp
}

func (g *Grant) xp(p *progress.Progress, amount int) {
	if amount <= 0 {
		return
	}
	g.XP += amount
	g.levelUp(p.GainExperience(amount))
}

func (g *Grant) levelUp(lv progress.LevelUp) {
	if lv.LeveledUp {
		g.LevelUp.LeveledUp = true
		g.LevelUp.NewLevel = lv.NewLevel
	}
	if lv.NewTitle != "" {
		g.LevelUp.NewTitle = lv.NewTitle
	}
}

// Event reports one quest step completed by an action.
type Event struct {
	QuestID    string
	QuestTitle string
	// Step is the index of the step just completed.
	Step     int
	Dialogue string
	// StepGrant holds the step's onComplete rewards.
	StepGrant Grant
	// Completed is true when Step was the final step.
	Completed bool
	// QuestGrant holds the quest-level rewards; set only when Completed.
	QuestGrant Grant
	// Objective is the next step's instruction; set only when not Completed.
	Objective string
}

// JournalEntry summarizes an active quest.
type JournalEntry struct {
	Quest       *Quest
	CurrentStep int
	Objective   string
}

// Engine advances quests in response to actions.
type Engine struct {
	lookup Lookup
	logger *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: lookup must be non-nil.
func NewEngine(lookup Lookup, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{lookup: lookup, logger: logger}
}

// CheckProgress evaluates action against the current step of every active
// quest and advances each satisfied quest by exactly one step.
//
// Postcondition: Returns one Event per advanced quest, in activeQuests order.
func (e *Engine) CheckProgress(p *progress.Progress, action Action) []Event {
	var events []Event
	for _, id := range p.ActiveQuests() {
		q, ok := e.lookup.Quest(id)
		if !ok || len(q.Steps) == 0 {
			continue
		}
		qp, ok := p.QuestProgress(id)
		if !ok {
			continue
		}
		step, ok := q.Step(qp.CurrentStep)
		if !ok || step.Target == nil {
			continue
		}
		if !StepCompleted(*step.Target, action) {
			continue
		}
		events = append(events, e.advance(p, q, qp, step))
	}
	return events
}

func (e *Engine) advance(p *progress.Progress, q *Quest, qp progress.QuestProgress, step Step) Event {
	ev := Event{QuestID: q.ID, QuestTitle: q.Title, Step: qp.CurrentStep}
	qp.Completed = append(qp.Completed, qp.CurrentStep)
	qp.CurrentStep++
	p.SetQuestProgress(q.ID, qp)
	ev.Completed = qp.CurrentStep >= len(q.Steps)

	if r := step.OnComplete; r != nil {
		ev.Dialogue = r.Dialogue
		ev.StepGrant.xp(p, r.XP)
		e.grantItem(p, &ev.StepGrant, r.Item)
	}

	e.logger.Info("quest step completed",
		zap.String("quest", q.ID),
		zap.Int("step", ev.Step),
		zap.Bool("quest_complete", ev.Completed),
	)

	if !ev.Completed {
		next, _ := q.Step(qp.CurrentStep)
		ev.Objective = next.Instruction
		return ev
	}

	p.CompleteQuest(q.ID)
	if r := q.Rewards; r != nil {
		ev.QuestGrant.xp(p, r.Experience)
		for _, item := range r.Items {
			e.grantItem(p, &ev.QuestGrant, item)
		}
		if r.Title != "" {
			p.SetTitle(r.Title)
			ev.QuestGrant.Title = r.Title
		}
	}
	return ev
}

// grantItem adds a defined item; references to undefined items are logged
// and skipped.
func (e *Engine) grantItem(p *progress.Progress, g *Grant, id string) {
	if id == "" {
		return
	}
	name, ok := e.lookup.ItemName(id)
	if !ok {
		e.logger.Error("reward references unknown item", zap.String("item", id))
		return
	}
	added, lv := p.AddItem(id)
	if !added {
		return
	}
	g.Items = append(g.Items, name)
	g.levelUp(lv)
}

// CanOffer reports whether q may be offered: it is neither active nor
// completed, the level requirement is met, and every prerequisite is
// completed.
func (e *Engine) CanOffer(p *progress.Progress, q *Quest) bool {
	if p.IsActive(q.ID) || p.IsCompleted(q.ID) {
		return false
	}
	if q.MinLevel > 0 && p.Level() < q.MinLevel {
		return false
	}
	for _, pre := range q.Prerequisites {
		if !p.IsCompleted(pre) {
			return false
		}
	}
	return true
}

// OfferFor returns the first offerable quest among ids, as listed by an NPC.
func (e *Engine) OfferFor(p *progress.Progress, ids []string) (*Quest, bool) {
	for _, id := range ids {
		q, ok := e.lookup.Quest(id)
		if ok && e.CanOffer(p, q) {
			return q, true
		}
	}
	return nil, false
}

// Accept starts q and returns its first objective.
//
// Postcondition: Returns false when q was not offerable.
func (e *Engine) Accept(p *progress.Progress, q *Quest) (objective string, ok bool) {
	if !e.CanOffer(p, q) || !p.StartQuest(q.ID) {
		return "", false
	}
	e.logger.Info("quest accepted", zap.String("quest", q.ID))
	if step, ok := q.Step(0); ok {
		objective = step.Instruction
	}
	return objective, true
}

// Journal lists active quests with their current objective, in activation
// order. Quests without a definition are skipped.
func (e *Engine) Journal(p *progress.Progress) []JournalEntry {
	var entries []JournalEntry
	for _, id := range p.ActiveQuests() {
		q, ok := e.lookup.Quest(id)
		if !ok {
			continue
		}
		qp, _ := p.QuestProgress(id)
		entry := JournalEntry{Quest: q, CurrentStep: qp.CurrentStep}
		if step, ok := q.Step(qp.CurrentStep); ok {
			entry.Objective = step.Instruction
		}
		entries = append(entries, entry)
	}
	return entries
}

// CurrentPuzzle returns the puzzle referenced by the first active quest whose
// current step names one.
//
// Postcondition: Returns a NotFound error when no step needs a puzzle, and a
// ContentError when the referenced puzzle is not defined.
func (e *Engine) CurrentPuzzle(p *progress.Progress) (*Puzzle, *Quest, error) {
	for _, id := range p.ActiveQuests() {
		q, ok := e.lookup.Quest(id)
		if !ok {
			continue
		}
		qp, ok := p.QuestProgress(id)
		if !ok {
			continue
		}
		step, ok := q.Step(qp.CurrentStep)
		if !ok || step.Target == nil || step.Target.Puzzle == "" {
			continue
		}
		pz, ok := e.lookup.Puzzle(step.Target.Puzzle)
		if !ok {
			e.logger.Error("quest step references unknown puzzle",
				zap.String("quest", q.ID),
				zap.Int("step", qp.CurrentStep),
				zap.String("puzzle", step.Target.Puzzle),
			)
			return nil, q, gameerr.New(gameerr.KindContentError, "Puzzle %q not found! This is a content error.", step.Target.Puzzle)
		}
		return pz, q, nil
	}
	return nil, nil, gameerr.New(gameerr.KindNotFound, "No puzzle is currently available.")
}
