package adventure

import (
	"context"
	"slices"

	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (g *Game) handleInventory(_ context.Context, r *reply, _ *command.Command, _ command.ParseResult) {
	owned := g.progress.Inventory()
	if len(owned) == 0 {
		r.text("Your inventory is empty.")
		return
	}
	r.add(KindHeading, "═══ Inventory (%d) ═══", len(owned))
	byCategory := map[string][]string{}
	for _, id := range owned {
		it, ok := g.catalog.Item(id)
		if !ok {
			byCategory["unknown"] = append(byCategory["unknown"], id)
			continue
		}
		category := it.Category
		if category == "" {
			category = "misc"
		}
		byCategory[category] = append(byCategory[category], it.Name)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	title := cases.Title(language.English)
	for _, c := range categories {
		r.text("%s:", title.String(c))
		for _, name := range byCategory[c] {
			r.text("  - %s", name)
		}
	}
}

// findItem matches query against owned items first, then items lying here.
func (g *Game) findItem(query string) (*content.Item, bool) {
	p := g.progress
	for _, id := range p.Inventory() {
		if it, ok := g.catalog.Item(id); ok && it.Matches(query) {
			return it, true
		}
	}
	for _, it := range g.catalog.ItemsAt(p.Location(), p.HasItem) {
		if it.Matches(query) {
			return it, true
		}
	}
	return nil, false
}

func (g *Game) handleExamine(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	if in.RawArgs == "" {
		r.failf("Examine what? Usage: examine <item>")
		return
	}
	it, ok := g.findItem(in.RawArgs)
	if !ok {
		r.failf("You don't see %q here or in your inventory.", in.RawArgs)
		return
	}
	r.add(KindHeading, "%s (%s %s)", it.Name, it.Rarity, it.Category)
	if it.Description != "" {
		r.text("%s", it.Description)
	}
	if it.Lore != "" {
		r.add(KindDoc, "%s", it.Lore)
	}
	if it.SourceSection != "" {
		r.text("Found in [[%s]].", it.SourceSection)
	}
	if it.Effects != nil {
		for _, stat := range sortedKeys(it.Effects.StatBoost) {
			r.text("Effect: +%d %s", it.Effects.StatBoost[stat], stat)
		}
	}
}

func (g *Game) handleTake(_ context.Context, r *reply, _ *command.Command, in command.ParseResult) {
	p := g.progress
	here := g.catalog.ItemsAt(p.Location(), p.HasItem)
	if len(here) == 0 {
		r.failf("There is nothing here to take.")
		return
	}
	var it *content.Item
	if in.RawArgs == "" {
		it = here[0]
	} else {
		for _, candidate := range here {
			if candidate.Matches(in.RawArgs) {
				it = candidate
				break
			}
		}
	}
	if it == nil {
		r.failf("There is no %q here.", in.RawArgs)
		return
	}
	added, lv := p.AddItem(it.ID)
	if !added {
		r.failf("You already have %s.", it.Name)
		return
	}
	g.logger.Info("item taken", zap.String("item", it.ID), zap.String("section", p.Location()))
	r.notice("You take %s. (+%d XP)", it.Name, progress.XPNewItem)
	if it.Effects != nil {
		for _, stat := range sortedKeys(it.Effects.StatBoost) {
			amount := it.Effects.StatBoost[stat]
			if _, ok := p.BoostStat(stat, amount); ok {
				r.notice("  +%d %s", amount, stat)
			}
		}
	}
	r.levelUp(lv)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
