// Package main provides the stdquest binary: an exploration game through the
// sections and eras of the C++ standard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/config"
	"github.com/cory-johannsen/stdquest/internal/docs"
	"github.com/cory-johannsen/stdquest/internal/frontend/console"
	"github.com/cory-johannsen/stdquest/internal/frontend/render"
	"github.com/cory-johannsen/stdquest/internal/frontend/tui"
	"github.com/cory-johannsen/stdquest/internal/game/adventure"
	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/world"
	"github.com/cory-johannsen/stdquest/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and STDQUEST_ environment overrides")
	useTUI := flag.Bool("tui", false, "run the full-screen terminal interface")
	plain := flag.Bool("plain", false, "disable colored output")
	slot := flag.String("slot", "", "save slot override for the sqlite and postgres drivers")
	name := flag.String("name", "", "player name for a new save")
	listOnly := flag.Bool("slots", false, "list the save slots of the sqlite or postgres store and exit")
	allowContentErrors := flag.Bool("allow-content-errors", false, "start even when quest, NPC, item or puzzle content fails lint")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *slot != "" {
		cfg.Persistence.Slot = *slot
	}
	if *useTUI && cfg.Logging.File == "" {
		// stderr would draw over the alt screen.
		cfg.Logging.File = "stdquest.log"
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listOnly {
		slots, err := listSlots(ctx, cfg)
		if err != nil {
			logger.Fatal("listing save slots", zap.Error(err))
		}
		for _, s := range slots {
			fmt.Println(s)
		}
		return
	}

	// Load world
	worldStart := time.Now()
	m, err := world.LoadMapFromFile(cfg.Content.WorldMap, cfg.Game.EraOrder)
	if err != nil {
		logger.Fatal("loading world map", zap.String("path", cfg.Content.WorldMap), zap.Error(err))
	}
	logger.Info("world loaded",
		zap.Int("sections", m.SectionCount()),
		zap.Int("eras", len(m.Eras())),
		zap.Duration("elapsed", time.Since(worldStart)),
	)
	if _, ok := m.Section(cfg.Game.StartLocation); !ok {
		logger.Fatal("start location not in world map", zap.String("start_location", cfg.Game.StartLocation))
	}

	catalog := content.Load(content.Dirs{
		Quests:  cfg.Content.QuestsDir,
		NPCs:    cfg.Content.NPCsDir,
		Items:   cfg.Content.ItemsDir,
		Puzzles: cfg.Content.PuzzlesDir,
	}, logger)
	if err := checkContent(content.Lint(catalog, m), *allowContentErrors, logger); err != nil {
		logger.Fatal("content failed lint", zap.Error(err))
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening progress store", zap.String("driver", cfg.Persistence.Driver), zap.Error(err))
	}
	defer closeStore()

	defaults := progress.Defaults{StartLocation: cfg.Game.StartLocation, StartEra: cfg.Game.StartEra}
	p := loadProgress(ctx, store, defaults, logger)
	if *name != "" && len(p.Visited()) == 0 {
		p.SetName(*name)
	}
	playerLogger := observability.ForPlayer(logger, p.PlayerID(), cfg.Persistence.Slot)

	var source docs.Source
	if cfg.Content.DocsDir != "" {
		source = docs.NewDirSource(cfg.Content.DocsDir)
	}

	game, err := adventure.New(adventure.Config{
		World:         m,
		Catalog:       catalog,
		Progress:      p,
		Store:         store,
		Docs:          source,
		StartLocation: cfg.Game.StartLocation,
		Logger:        playerLogger,
	})
	if err != nil {
		logger.Fatal("creating game", zap.Error(err))
	}
	logger.Info("game ready", zap.Duration("elapsed", time.Since(start)))

	renderer := render.New()
	if *plain {
		renderer = render.NewPlain()
	}
	if *useTUI {
		err = tui.Run(ctx, game, renderer)
	} else {
		err = console.Run(ctx, game, os.Stdin, os.Stdout, renderer, playerLogger)
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("session ended with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// A signal skips the quit command; save whatever is pending.
	if err := progress.Persist(context.Background(), store, p); err != nil {
		logger.Error("final save", zap.Error(err))
	}
	logger.Info("session ended", zap.Duration("played", time.Since(start)))
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefaults()
	}
	return config.Load(path)
}
