package adventure

import (
	"fmt"

	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
)

// Kind tells the presentation layer how to style a Message.
type Kind int

const (
	KindText Kind = iota
	// KindHeading is a location header.
	KindHeading
	// KindNotice reports progress such as experience or discoveries.
	KindNotice
	// KindError is a failed action the player can correct.
	KindError
	// KindDialogue is speech by an NPC.
	KindDialogue
	// KindQuest announces quest offers and progress.
	KindQuest
	// KindDoc is standard text for the current section.
	KindDoc
	// KindSeparator is a horizontal rule; Text is empty.
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindNotice:
		return "notice"
	case KindError:
		return "error"
	case KindDialogue:
		return "dialogue"
	case KindQuest:
		return "quest"
	case KindDoc:
		return "doc"
	case KindSeparator:
		return "separator"
	default:
		return "text"
	}
}

// Message is one line or block of output.
type Message struct {
	Kind Kind
	Text string
}

// Response is the result of handling one input line.
type Response struct {
	Messages []Message
	// Quit is set when the player asked to leave.
	Quit bool
}

// reply accumulates the messages of one command.
type reply struct {
	msgs []Message
}

func (r *reply) add(k Kind, format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	r.msgs = append(r.msgs, Message{Kind: k, Text: text})
}

func (r *reply) text(format string, args ...any)   { r.add(KindText, format, args...) }
func (r *reply) notice(format string, args ...any) { r.add(KindNotice, format, args...) }
func (r *reply) quest(format string, args ...any)  { r.add(KindQuest, format, args...) }
func (r *reply) blank()                            { r.msgs = append(r.msgs, Message{Kind: KindText}) }
func (r *reply) separator()                        { r.msgs = append(r.msgs, Message{Kind: KindSeparator}) }

// fail reports err; game errors carry their own player-facing text.
func (r *reply) fail(err error) {
	r.msgs = append(r.msgs, Message{Kind: KindError, Text: err.Error()})
}

func (r *reply) failf(format string, args ...any) { r.add(KindError, format, args...) }

func (r *reply) levelUp(lv progress.LevelUp) {
	if lv.LeveledUp {
		r.notice("Level up! You are now level %d!", lv.NewLevel)
	}
	if lv.NewTitle != "" {
		r.notice("You are now known as %s.", lv.NewTitle)
	}
}

func (r *reply) grant(g quest.Grant) {
	if g.XP > 0 {
		r.notice("  +%d XP", g.XP)
	}
	for _, name := range g.Items {
		r.notice("  Received: %s", name)
	}
	if g.Title != "" {
		r.notice("  Title earned: %q", g.Title)
	}
	r.levelUp(g.LevelUp)
}

// questEvents renders quest step completions.
func (r *reply) questEvents(events []quest.Event) {
	for _, ev := range events {
		r.blank()
		r.separator()
		if ev.Completed {
			r.quest("Quest complete!")
		} else {
			r.quest("Quest step completed!")
		}
		if ev.Dialogue != "" {
			r.blank()
			r.add(KindDialogue, "%s", ev.Dialogue)
		}
		r.grant(ev.StepGrant)
		if ev.Completed {
			r.blank()
			r.quest("Quest Complete: %s!", ev.QuestTitle)
			r.grant(ev.QuestGrant)
		} else if ev.Objective != "" {
			r.blank()
			r.quest("Current objective:")
			r.quest("  → %s", ev.Objective)
		}
		r.separator()
	}
}
