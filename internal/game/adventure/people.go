package adventure

import (
	"context"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
)

const maxJournalCompleted = 5

// findNPC returns the NPC here matching query, or the only NPC when query is
// empty.
func (g *Game) findNPC(r *reply, query string) (*content.NPC, bool) {
	here := g.catalog.NPCsAt(g.progress.Location())
	if len(here) == 0 {
		r.failf("There is no one here to talk to.")
		return nil, false
	}
	if query == "" {
		if len(here) == 1 {
			return here[0], true
		}
		names := make([]string, 0, len(here))
		for _, n := range here {
			names = append(names, n.Name)
		}
		r.failf("Talk to whom? Here: %s", strings.Join(names, ", "))
		return nil, false
	}
	for _, n := range here {
		if n.Matches(query) {
			return n, true
		}
	}
	r.failf("Cannot find %q here.", query)
	return nil, false
}

func (g *Game) handleTalk(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	npc, ok := g.findNPC(r, in.Text("to", "with"))
	if !ok {
		return
	}
	p := g.progress
	era := p.Era()
	r.add(KindDialogue, "%s: %q", npc.Name, npc.Greeting(era))
	if topics := npc.AvailableTopics(era); len(topics) > 0 {
		r.text("Ask about: %s", strings.Join(topics, ", "))
	}
	first, lv := p.TalkTo(npc.ID)
	if first {
		r.notice("(+%d XP for meeting %s)", progress.XPFirstNPCTalk, npc.Name)
	}
	r.levelUp(lv)

	g.checkQuests(r, quest.Action{Section: p.Location(), Era: era, NPC: npc.ID})

	if q, ok := g.engine.OfferFor(p, npc.Quests); ok {
		g.pendingQuest = q
		r.blank()
		r.quest("Quest Available: %s", q.Title)
		if q.Difficulty != "" {
			r.quest("Difficulty: %s", q.Difficulty)
		}
		if q.MinLevel > 0 {
			r.quest("Required level: %d", q.MinLevel)
		}
		if q.Description != "" {
			r.text("%s", q.Description)
		}
		r.text(`Type "accept" to begin this quest, or "decline" to refuse.`)
	}
}

// handleAsk matches the topic against every NPC here in turn; the first one
// who can answer in the current era responds.
func (g *Game) handleAsk(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	query := in.Text("about")
	if query == "" {
		r.failf("Usage: ask about <topic>")
		return
	}
	p := g.progress
	here := g.catalog.NPCsAt(p.Location())
	if len(here) == 0 {
		r.failf("There is no one here to talk to.")
		return
	}
	era := p.Era()
	for _, npc := range here {
		topic, response, ok := npc.FindTopic(query, era)
		if !ok {
			continue
		}
		r.add(KindDialogue, "%s: %q", npc.Name, response)
		if p.LearnTopic(npc.ID, topic.Key) {
			r.notice("(You learned about %s.)", topic.Key)
		}
		g.checkQuests(r, quest.Action{Section: p.Location(), Era: era, NPC: npc.ID, Topic: topic.Key})
		return
	}
	r.failf("No one here knows about %q.", query)
}

func (g *Game) handleAccept(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	q := g.pendingQuest
	if q == nil {
		r.failf("No quest has been offered.")
		return
	}
	g.pendingQuest = nil
	objective, ok := g.engine.Accept(g.progress, q)
	if !ok {
		r.failf("You can no longer accept %q.", q.Title)
		return
	}
	r.quest("Quest accepted: %s", q.Title)
	if objective != "" {
		r.quest("Current objective:")
		r.quest("  → %s", objective)
	}
}

func (g *Game) handleDecline(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	q := g.pendingQuest
	if q == nil {
		r.failf("No quest has been offered.")
		return
	}
	g.pendingQuest = nil
	r.text("Quest %q declined.", q.Title)
}

func (g *Game) handleQuests(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	p := g.progress
	r.add(KindHeading, "═══ Quest Journal ═══")
	entries := g.engine.Journal(p)
	completed := p.CompletedQuests()
	if len(entries) == 0 && len(completed) == 0 {
		r.text("You have no quests.")
		r.text("Talk to NPCs to discover quests.")
		return
	}
	if len(entries) > 0 {
		r.blank()
		r.text("Active:")
		for _, e := range entries {
			r.quest("%s [%d/%d]", e.Quest.Title, e.CurrentStep, len(e.Quest.Steps))
			if e.Objective != "" {
				r.text("  → %s", e.Objective)
			}
		}
	}
	if len(completed) > 0 {
		r.blank()
		r.text("Completed:")
		for _, id := range completed[:min(len(completed), maxJournalCompleted)] {
			title := id
			if q, ok := g.catalog.Quest(id); ok {
				title = q.Title
			}
			r.text("  ✓ %s", title)
		}
		if extra := len(completed) - maxJournalCompleted; extra > 0 {
			r.text("  ... and %d more", extra)
		}
	}
}
