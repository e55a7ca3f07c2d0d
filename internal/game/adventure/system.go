package adventure

import (
	"context"
	"fmt"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"go.uber.org/zap"
)

const statBarWidth = 20

func (g *Game) handleStats(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	p := g.progress
	r.add(KindHeading, "%s - Level %d %s", p.Name(), p.Level(), p.Title())
	if p.Level() >= progress.MaxLevel {
		r.text("XP: max level")
	} else {
		r.text("XP: %d/%d", p.Experience(), p.ExperienceToNext())
	}
	r.blank()
	stats := p.Stats()
	for _, name := range []string{progress.StatFundamentals, progress.StatLibrary, progress.StatMetaprogramming, progress.StatModernCpp} {
		r.text("%-16s %s %3d", name, statBar(stats[name]), stats[name])
	}
	r.blank()
	r.text("Sections visited: %d/%d", len(p.Visited()), g.world.SectionCount())
	r.text("Time travels: %d", p.TimeTravels())
	r.text("Items: %d", len(p.Inventory()))
	r.text("Quests: %d active, %d completed", len(p.ActiveQuests()), len(p.CompletedQuests()))
}

func statBar(value int) string {
	filled := value * statBarWidth / progress.MaxStatValue
	filled = max(0, min(filled, statBarWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", statBarWidth-filled) + "]"
}

func (g *Game) handleHelp(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs != "" {
		cmd, ok := g.commands.Resolve(in.Args[0])
		if !ok {
			r.failf("No help for %q.", in.Args[0])
			return
		}
		r.text("%s - %s", cmd.Usage, cmd.Help)
		if len(cmd.Aliases) > 0 {
			r.text("Aliases: %s", strings.Join(cmd.Aliases, ", "))
		}
		return
	}
	r.add(KindHeading, "═══ Commands ═══")
	byCategory := g.commands.CommandsByCategory()
	for _, category := range command.Categories() {
		cmds := byCategory[category]
		if len(cmds) == 0 {
			continue
		}
		r.blank()
		r.text("%s:", strings.ToUpper(category[:1])+category[1:])
		for _, cmd := range cmds {
			usage := cmd.Usage
			if len(cmd.Aliases) > 0 {
				usage = fmt.Sprintf("%s (%s)", usage, strings.Join(cmd.Aliases, ", "))
			}
			r.text("  %-28s %s", usage, cmd.Help)
		}
	}
	r.blank()
	r.text("You can also type a stable name such as [[class.copy]] to go there.")
}

func (g *Game) handleSave(ctx context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	data, err := progress.Encode(g.progress.Snapshot())
	if err == nil {
		err = g.store.Save(ctx, data)
	}
	if err != nil {
		g.logger.Error("saving progress", zap.Error(err))
		r.failf("Could not save: %v", err)
		return
	}
	g.progress.MarkClean()
	r.notice("Game saved.")
}

func (g *Game) handleReset(ctx context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if !strings.EqualFold(in.RawArgs, "confirm") {
		r.failf("This erases all of your progress.")
		r.text(`Type "reset confirm" to start over.`)
		return
	}
	if err := g.store.Reset(ctx); err != nil {
		g.logger.Error("resetting progress", zap.Error(err))
		r.failf("Could not reset: %v", err)
		return
	}
	g.progress.Reset()
	g.progress.MarkClean()
	g.pendingQuest = nil
	g.puzzle = nil
	g.logger.Info("progress reset", zap.String("player", g.progress.PlayerID()))
	r.notice("Progress reset. Your journey begins anew.")
	g.describe(ctx, r, false)
}
