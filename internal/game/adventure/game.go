// Package adventure runs the exploration game: it interprets player
// commands, moves the player through the world and across eras, and routes
// every quest-relevant action through the quest engine.
package adventure

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/docs"
	"github.com/cory-johannsen/stdquest/internal/game/command"
	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"github.com/cory-johannsen/stdquest/internal/game/world"
	"go.uber.org/zap"
)

// Config wires a Game to its collaborators.
type Config struct {
	World    *world.Map
	Catalog  *content.Catalog
	Progress *progress.Progress
	Store    progress.Store
	// Docs supplies section text; nil disables it.
	Docs docs.Source
	// Random shuffles matching puzzles; nil uses crypto/rand.
	Random quest.Source
	// StartLocation replaces a saved location that no longer exists.
	StartLocation string
	Logger        *zap.Logger
}

// Game is a single-player session. It is not safe for concurrent use: one
// command is fully handled before the next.
type Game struct {
	world    *world.Map
	catalog  *content.Catalog
	engine   *quest.Engine
	progress *progress.Progress
	store    progress.Store
	docs     docs.Source
	random   quest.Source
	commands *command.Registry
	start    string
	logger   *zap.Logger

	pendingQuest *quest.Quest
	puzzle       *quest.PuzzleSession
}

type handlerFunc func(g *Game, ctx context.Context, r *reply, cmd *command.Command, in command.ParseResult)

var handlers = map[string]handlerFunc{
	command.HandlerLook:      (*Game).handleLook,
	command.HandlerMove:      (*Game).handleMove,
	command.HandlerEnter:     (*Game).handleEnter,
	command.HandlerExit:      (*Game).handleExit,
	command.HandlerWarp:      (*Game).handleWarp,
	command.HandlerGoto:      (*Game).handleGoto,
	command.HandlerSearch:    (*Game).handleSearch,
	command.HandlerMap:       (*Game).handleMap,
	command.HandlerWhere:     (*Game).handleWhere,
	command.HandlerTimeshift: (*Game).handleTimeshift,
	command.HandlerEra:       (*Game).handleEra,
	command.HandlerBack:      (*Game).handleBack,
	command.HandlerForward:   (*Game).handleForward,
	command.HandlerTalk:      (*Game).handleTalk,
	command.HandlerAsk:       (*Game).handleAsk,
	command.HandlerAccept:    (*Game).handleAccept,
	command.HandlerDecline:   (*Game).handleDecline,
	command.HandlerQuests:    (*Game).handleQuests,
	command.HandlerPuzzle:    (*Game).handlePuzzle,
	command.HandlerAnswer:    (*Game).handleAnswer,
	command.HandlerHint:      (*Game).handleHint,
	command.HandlerInventory: (*Game).handleInventory,
	command.HandlerExamine:   (*Game).handleExamine,
	command.HandlerTake:      (*Game).handleTake,
	command.HandlerStats:     (*Game).handleStats,
	command.HandlerHelp:      (*Game).handleHelp,
	command.HandlerSave:      (*Game).handleSave,
	command.HandlerReset:     (*Game).handleReset,
}

// New creates a Game.
//
// Precondition: cfg.World, cfg.Catalog, cfg.Progress, and cfg.Store must be non-nil.
func New(cfg Config) (*Game, error) {
	if cfg.World == nil || cfg.Catalog == nil || cfg.Progress == nil || cfg.Store == nil {
		return nil, errors.New("adventure: world, catalog, progress, and store are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := cfg.StartLocation
	if start == "" {
		start = progress.DefaultDefaults.StartLocation
	}
	random := cfg.Random
	if random == nil {
		random = quest.NewCryptoSource()
	}
	return &Game{
		world:    cfg.World,
		catalog:  cfg.Catalog,
		engine:   quest.NewEngine(cfg.Catalog, logger),
		progress: cfg.Progress,
		store:    cfg.Store,
		docs:     cfg.Docs,
		random:   random,
		commands: command.DefaultRegistry(),
		start:    start,
		logger:   logger,
	}, nil
}

// Progress exposes the live player progress.
func (g *Game) Progress() *progress.Progress { return g.progress }

// Start greets the player and describes the current location. A saved
// location or era that no longer exists is replaced by the start position.
func (g *Game) Start(ctx context.Context) Response {
	r := &reply{}
	p := g.progress
	if _, ok := g.world.Section(p.Location()); !ok {
		g.logger.Warn("saved location not found, moving to start", zap.String("location", p.Location()))
		p.Relocate(g.start, "")
	}
	if !g.world.HasEra(p.Era()) {
		if eras := g.world.Eras(); len(eras) > 0 {
			g.logger.Warn("saved era not found, moving to latest", zap.String("era", p.Era()))
			p.Relocate("", eras[len(eras)-1].Tag)
		}
	}

	r.text("Welcome, %s. You stand within the C++ standard, across every era it has known.", p.Name())
	r.text(`Type "help" for commands.`)
	if !p.HasVisited(p.Location()) {
		_, lv := p.MoveTo(p.Location())
		r.levelUp(lv)
	}
	g.describe(ctx, r, false)
	g.persist(ctx, r)
	return Response{Messages: r.msgs}
}

// Handle interprets one line of input and persists progress if it changed.
func (g *Game) Handle(ctx context.Context, line string) Response {
	in := command.Parse(line)
	if in.Command == "" {
		return Response{}
	}
	r := &reply{}
	cmd, ok := g.commands.Resolve(in.Command)
	switch {
	case ok && cmd.Handler == command.HandlerQuit:
		g.persist(ctx, r)
		r.text("Goodbye, %s.", g.progress.Name())
		return Response{Messages: r.msgs, Quit: true}
	case ok:
		handlers[cmd.Handler](g, ctx, r, cmd, in)
	case g.looksLikeSection(line):
		g.gotoTarget(ctx, r, strings.TrimSpace(line))
	default:
		r.failf("I don't understand %q. Type \"help\" for commands.", strings.TrimSpace(line))
	}
	g.persist(ctx, r)
	return Response{Messages: r.msgs}
}

// looksLikeSection reports whether a bare input line names a section.
func (g *Game) looksLikeSection(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "[[") && strings.HasSuffix(line, "]]") {
		return true
	}
	if strings.ContainsAny(line, " \t") {
		return false
	}
	_, ok := g.world.Section(line)
	return ok || strings.Contains(line, ".")
}

// persist saves dirty progress. Failure is reported but never fatal.
func (g *Game) persist(ctx context.Context, r *reply) {
	if err := progress.Persist(ctx, g.store, g.progress); err != nil {
		g.logger.Warn("saving progress", zap.Error(err))
		r.failf("Warning: progress could not be saved.")
	}
}

// Status is a snapshot of the player for display.
type Status struct {
	Name       string
	Title      string
	Level      int
	Experience int
	ToNext     int
	Location   string
	Section    string
	Era        string
	Items      int
	Quests     []string
}

// Status returns the current player summary.
func (g *Game) Status() Status {
	p := g.progress
	st := Status{
		Name:       p.Name(),
		Title:      p.Title(),
		Level:      p.Level(),
		Experience: p.Experience(),
		ToNext:     p.ExperienceToNext(),
		Location:   g.label(p.Location()),
		Section:    p.Location(),
		Era:        g.world.EraName(p.Era()),
		Items:      len(p.Inventory()),
	}
	for _, e := range g.engine.Journal(p) {
		st.Quests = append(st.Quests, e.Quest.Title)
	}
	return st
}

// StatusLine summarizes the player for a prompt.
func (g *Game) StatusLine() string {
	st := g.Status()
	return fmt.Sprintf("[%s] %s | Lv %d %s | %d/%d XP",
		st.Era, st.Location, st.Level, st.Title, st.Experience, st.ToNext)
}

// checkQuests feeds action to the quest engine and renders what advanced.
func (g *Game) checkQuests(r *reply, action quest.Action) {
	r.questEvents(g.engine.CheckProgress(g.progress, action))
}
