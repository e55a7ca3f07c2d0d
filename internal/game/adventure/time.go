package adventure

import (
	"context"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"go.uber.org/zap"
)

func (g *Game) handleTimeshift(ctx context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs == "" {
		g.listEras(r)
		r.text("Usage: timeshift <era>")
		return
	}
	era, ok := g.world.ResolveEra(in.RawArgs)
	if !ok {
		r.failf("Unknown era %q.", in.RawArgs)
		g.listEras(r)
		return
	}
	g.travel(ctx, r, era)
}

func (g *Game) handleBack(ctx context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	era, ok := g.world.PreviousEra(g.progress.Era())
	if !ok {
		r.failf("You are already in the earliest era (%s).", g.world.EraName(g.progress.Era()))
		return
	}
	g.travel(ctx, r, era)
}

func (g *Game) handleForward(ctx context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	era, ok := g.world.NextEra(g.progress.Era())
	if !ok {
		r.failf("You are already in the latest era (%s).", g.world.EraName(g.progress.Era()))
		return
	}
	g.travel(ctx, r, era)
}

func (g *Game) handleEra(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	r.text("Current era: %s (%s)", g.world.EraName(g.progress.Era()), g.progress.Era())
	r.text("Time travels performed: %d", g.progress.TimeTravels())
	g.listEras(r)
}

func (g *Game) listEras(r *reply) {
	var names []string
	for _, e := range g.world.Eras() {
		name := e.Name
		if e.Tag == g.progress.Era() {
			name = "[" + name + "]"
		}
		names = append(names, name)
	}
	r.text("Eras: %s", strings.Join(names, " → "))
}

// travel shifts the player into era. When the current section does not exist
// there the player lands on its alias instead.
func (g *Game) travel(ctx context.Context, r *reply, era string) {
	p := g.progress
	if era == p.Era() {
		r.failf("You are already in %s.", g.world.EraName(era))
		return
	}
	shift, err := g.world.Timeshift(p.Location(), era)
	if err != nil {
		r.fail(err)
		return
	}

	r.text("*The world ripples as you shift through time...*")
	from := p.Era()
	first, lv := p.SetEra(era)
	g.logger.Info("time travel",
		zap.String("from", from),
		zap.String("to", era),
		zap.String("section", shift.Target),
		zap.Bool("aliased", shift.Aliased),
	)
	r.text("You arrive in %s.", g.world.EraName(era))
	if first {
		r.notice("(First time travel! +%d XP)", progress.XPFirstTimeTravel)
		r.notice("You have unlocked the Chrono Compass.")
	}
	r.levelUp(lv)

	if shift.Aliased {
		r.notice("%s", shift.Message)
		discovered, lv := p.MoveTo(shift.Target)
		if discovered {
			r.notice("(New area discovered! +%d XP)", progress.XPNewSection)
		}
		r.levelUp(lv)
	}
	g.describe(ctx, r, false)
	g.checkQuests(r, quest.Action{Section: p.Location(), Era: era})
}
