package adventure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/docs"
	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/gameerr"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"github.com/cory-johannsen/stdquest/internal/game/world"
	"go.uber.org/zap"
)

const (
	maxEnterChoices  = 10
	maxSearchResults = 20
	maxMapEntries    = 15
)

// arrive moves the player to target and describes it. Every movement feeds
// the new section to the quest engine.
func (g *Game) arrive(ctx context.Context, r *reply, target string) {
	discovered, lv := g.progress.MoveTo(target)
	g.logger.Debug("moved", zap.String("section", target), zap.Bool("discovered", discovered))
	if discovered {
		r.notice("(New area discovered! +%d XP)", progress.XPNewSection)
	}
	r.levelUp(lv)
	g.describe(ctx, r, false)
	g.checkQuests(r, quest.Action{Section: target, Era: g.progress.Era()})
}

// describe renders the current location; read appends the section text.
func (g *Game) describe(ctx context.Context, r *reply, read bool) {
	p := g.progress
	s, ok := g.world.Section(p.Location())
	if !ok {
		r.failf("Current location not found.")
		return
	}
	r.blank()
	r.add(KindHeading, "%s  [%s]", s.Label(), s.StableName)
	if realm, ok := g.world.RealmFor(s.StableName); ok {
		r.text("%s, %s", realm.Name, g.world.EraName(p.Era()))
	}
	if s.Description != "" {
		r.text("%s", s.Description)
	}
	if read {
		g.readSection(ctx, r, s)
	}
	if exits := g.world.ExitDescriptions(s.StableName, p.Era()); len(exits) > 0 {
		r.text("Exits: %s", strings.Join(exits, "; "))
	}
	if npcs := g.catalog.NPCsAt(s.StableName); len(npcs) > 0 {
		names := make([]string, 0, len(npcs))
		for _, n := range npcs {
			if _, ok := g.engine.OfferFor(p, n.Quests); ok {
				names = append(names, n.Name+" (has a quest for you!)")
				continue
			}
			names = append(names, n.Name)
		}
		r.text("You see: %s", strings.Join(names, ", "))
	}
	if items := g.catalog.ItemsAt(s.StableName, p.HasItem); len(items) > 0 {
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, fmt.Sprintf("%s (%s)", it.Name, it.Rarity))
		}
		r.text("Items: %s", strings.Join(names, ", "))
	}
}

func (g *Game) readSection(ctx context.Context, r *reply, s *world.Section) {
	if g.docs == nil {
		return
	}
	text, err := g.docs.Section(ctx, g.progress.Era(), s.Chapter, s.StableName)
	if err != nil {
		if !errors.Is(err, docs.ErrUnavailable) {
			g.logger.Warn("reading section text", zap.String("section", s.StableName), zap.Error(err))
		}
		r.blank()
		r.add(KindDoc, "Content not available in this era.")
		return
	}
	r.blank()
	r.add(KindDoc, "%s", docs.PlainLinks(text))
	r.blank()
}

func (g *Game) handleLook(ctx context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	g.describe(ctx, r, true)
	g.checkQuests(r, quest.Action{Section: g.progress.Location(), Era: g.progress.Era(), Read: true})
}

func (g *Game) handleMove(ctx context.Context, r *reply, cmd *command.Command, in command.ParseResult) {
	word := cmd.Name
	if cmd.Name == "go" {
		if len(in.Args) == 0 {
			r.failf("Go where? Usage: go <north|south|east|west>")
			return
		}
		word = in.Args[0]
	}
	dir, ok := world.ParseDirection(word)
	if !ok {
		r.failf("%q is not a direction. Use north, south, east, or west.", word)
		return
	}
	target, err := g.world.Navigate(g.progress.Location(), dir, g.progress.Era())
	if err != nil {
		r.fail(err)
		return
	}
	r.text("You travel %s...", dir)
	g.arrive(ctx, r, target)
}

func (g *Game) handleEnter(ctx context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	p := g.progress
	if in.RawArgs == "" {
		s, ok := g.world.Section(p.Location())
		if !ok || len(s.Children) == 0 {
			r.failf("There is nothing to enter here.")
			return
		}
		r.text("You can enter:")
		for _, c := range s.Children[:min(len(s.Children), maxEnterChoices)] {
			label := c
			if cs, ok := g.world.Section(c); ok {
				label = fmt.Sprintf("%s (%s)", cs.Label(), c)
			}
			r.text("  %s", label)
		}
		if extra := len(s.Children) - maxEnterChoices; extra > 0 {
			r.text("  ... and %d more", extra)
		}
		return
	}
	target, err := g.world.Enter(p.Location(), in.RawArgs, p.Era())
	if err != nil {
		r.fail(err)
		return
	}
	r.text("You enter %s...", g.label(target))
	g.arrive(ctx, r, target)
}

func (g *Game) handleExit(ctx context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	target, err := g.world.Exit(g.progress.Location(), g.progress.Era())
	if err != nil {
		r.fail(err)
		return
	}
	r.text("You exit to the parent area...")
	g.arrive(ctx, r, target)
}

func (g *Game) handleWarp(ctx context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs == "" {
		r.failf("Warp where? Usage: warp <visited section>")
		return
	}
	target, err := g.world.Warp(in.RawArgs, g.progress.Era(), g.progress.Visited())
	if err != nil {
		r.fail(err)
		return
	}
	r.text("You warp through space to %s...", g.label(target))
	g.arrive(ctx, r, target)
}

func (g *Game) handleGoto(ctx context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs == "" {
		r.failf("Goto where? Usage: goto <stable.name>")
		return
	}
	g.gotoTarget(ctx, r, in.RawArgs)
}

func (g *Game) gotoTarget(ctx context.Context, r *reply, target string) {
	dest, err := g.world.Goto(target, g.progress.Era())
	if err != nil {
		r.fail(err)
		if errors.Is(err, gameerr.ErrNoMatch) {
			r.text(`Use "search <term>" to find sections.`)
		}
		return
	}
	r.text("Going to %s...", g.label(dest))
	g.arrive(ctx, r, dest)
}

func (g *Game) handleSearch(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	term := in.RawArgs
	if term == "" {
		r.failf("Search for what? Usage: search <term>")
		return
	}
	era := g.progress.Era()
	results := g.world.Search(term, era)
	if len(results) == 0 {
		r.text("No sections found matching %q in %s.", term, g.world.EraName(era))
		return
	}
	r.text("Found %d sections matching %q:", len(results), term)
	for _, s := range results[:min(len(results), maxSearchResults)] {
		r.text("  [[%s]] - %s", s.StableName, s.HeadingTitle())
	}
	if extra := len(results) - maxSearchResults; extra > 0 {
		r.text("  ... and %d more", extra)
	}
}

func (g *Game) handleMap(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	p := g.progress
	realm, ok := g.world.RealmFor(p.Location())
	if !ok {
		r.failf("You are off the map.")
		return
	}
	r.add(KindHeading, "═══ %s ═══", realm.Name)
	if realm.Description != "" {
		r.text("%s", realm.Description)
	}
	shown := 0
	for _, name := range realm.Sections {
		if !g.world.IsAvailableInEra(name, p.Era()) {
			continue
		}
		if shown == maxMapEntries {
			shown++
			break
		}
		shown++
		marker := "  "
		switch {
		case name == p.Location():
			marker = "@ "
		case p.HasVisited(name):
			marker = "* "
		}
		r.text("%s%s (%s)", marker, g.label(name), name)
	}
	if shown > maxMapEntries {
		r.text("  ... and more")
	}
	r.text("@ you are here, * visited")
}

func (g *Game) handleWhere(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	p := g.progress
	r.text("Location: %s", strings.Join(g.world.Path(p.Location()), " > "))
	r.text("Stable name: %s", p.Location())
	r.text("Era: %s (%s)", g.world.EraName(p.Era()), p.Era())
	if realm, ok := g.world.RealmFor(p.Location()); ok {
		r.text("Realm: %s", realm.Name)
	}
}

func (g *Game) label(name string) string {
	if s, ok := g.world.Section(name); ok {
		return s.Label()
	}
	return name
}
