// Package main provides a content linter that checks quests, NPCs, items,
// and puzzles against the world map.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/config"
	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/world"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Parse()

	start := time.Now()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	m, err := world.LoadMapFromFile(cfg.Content.WorldMap, cfg.Game.EraOrder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	catalog := content.Load(content.Dirs{
		Quests:  cfg.Content.QuestsDir,
		NPCs:    cfg.Content.NPCsDir,
		Items:   cfg.Content.ItemsDir,
		Puzzles: cfg.Content.PuzzlesDir,
	}, zap.NewNop())

	report := content.Lint(catalog, m)
	for _, e := range report.Errors {
		fmt.Printf("ERROR   %s\n", e)
	}
	for _, w := range report.Warnings {
		fmt.Printf("WARNING %s\n", w)
	}
	fmt.Printf("%d quests, %d npcs, %d items, %d puzzles: %d errors, %d warnings [%s]\n",
		len(catalog.Quests()), len(catalog.NPCs()), len(catalog.Items()), len(catalog.Puzzles()),
		len(report.Errors), len(report.Warnings), time.Since(start).Round(time.Millisecond))

	if !report.OK() || (*strict && len(report.Warnings) > 0) {
		os.Exit(1)
	}
}
