// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands in help output.
const (
	CategoryNavigation  = "navigation"
	CategoryTime        = "time travel"
	CategoryInteraction = "interaction"
	CategoryQuests      = "quests"
	CategoryPuzzles     = "puzzles"
	CategoryItems       = "items"
	CategoryPlayer      = "player"
	CategorySystem      = "system"
)

// Handler identifiers mapping commands to game actions.
const (
	HandlerLook      = "look"
	HandlerMove      = "move"
	HandlerEnter     = "enter"
	HandlerExit      = "exit"
	HandlerWarp      = "warp"
	HandlerGoto      = "goto"
	HandlerSearch    = "search"
	HandlerMap       = "map"
	HandlerWhere     = "where"
	HandlerTimeshift = "timeshift"
	HandlerEra       = "era"
	HandlerBack      = "back"
	HandlerForward   = "forward"
	HandlerTalk      = "talk"
	HandlerAsk       = "ask"
	HandlerAccept    = "accept"
	HandlerDecline   = "decline"
	HandlerQuests    = "quests"
	HandlerPuzzle    = "puzzle"
	HandlerAnswer    = "answer"
	HandlerHint      = "hint"
	HandlerInventory = "inventory"
	HandlerExamine   = "examine"
	HandlerTake      = "take"
	HandlerStats     = "stats"
	HandlerHelp      = "help"
	HandlerSave      = "save"
	HandlerReset     = "reset"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "goto <name>".
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command in help output.
	Category string
	// Handler names the game action the command triggers.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "look", Aliases: []string{"l"}, Usage: "look", Help: "View current location", Category: CategoryNavigation, Handler: HandlerLook},
		{Name: "go", Usage: "go <direction>", Help: "Move north/south/east/west", Category: CategoryNavigation, Handler: HandlerMove},
		{Name: "north", Aliases: []string{"n"}, Usage: "north", Help: "Move north", Category: CategoryNavigation, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Usage: "south", Help: "Move south", Category: CategoryNavigation, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e"}, Usage: "east", Help: "Move east", Category: CategoryNavigation, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w"}, Usage: "west", Help: "Move west", Category: CategoryNavigation, Handler: HandlerMove},
		{Name: "enter", Usage: "enter <area>", Help: "Enter a sub-section", Category: CategoryNavigation, Handler: HandlerEnter},
		{Name: "exit", Aliases: []string{"leave"}, Usage: "exit", Help: "Return to parent section", Category: CategoryNavigation, Handler: HandlerExit},
		{Name: "goto", Aliases: []string{"g"}, Usage: "goto <name>", Help: "Jump to any [[stable.name]]", Category: CategoryNavigation, Handler: HandlerGoto},
		{Name: "search", Aliases: []string{"find"}, Usage: "search <term>", Help: "Find sections by name or title", Category: CategoryNavigation, Handler: HandlerSearch},
		{Name: "warp", Usage: "warp <location>", Help: "Fast travel to a visited location", Category: CategoryNavigation, Handler: HandlerWarp},
		{Name: "map", Usage: "map", Help: "Show current realm overview", Category: CategoryNavigation, Handler: HandlerMap},
		{Name: "where", Aliases: []string{"whereami"}, Usage: "where", Help: "Show location in hierarchy", Category: CategoryNavigation, Handler: HandlerWhere},

		{Name: "timeshift", Aliases: []string{"ts"}, Usage: "timeshift <era>", Help: "Travel to era (cpp11/14/17/20/23/26)", Category: CategoryTime, Handler: HandlerTimeshift},
		{Name: "era", Usage: "era", Help: "Show current era and list available", Category: CategoryTime, Handler: HandlerEra},
		{Name: "back", Aliases: []string{"["}, Usage: "[", Help: "Warp to the previous era", Category: CategoryTime, Handler: HandlerBack},
		{Name: "forward", Aliases: []string{"]"}, Usage: "]", Help: "Warp to the next era", Category: CategoryTime, Handler: HandlerForward},

		{Name: "talk", Usage: "talk [npc]", Help: "Talk to an NPC", Category: CategoryInteraction, Handler: HandlerTalk},
		{Name: "ask", Usage: "ask about <topic>", Help: "Ask an NPC about a topic", Category: CategoryInteraction, Handler: HandlerAsk},

		{Name: "quests", Aliases: []string{"quest", "journal"}, Usage: "quests", Help: "View active and completed quests", Category: CategoryQuests, Handler: HandlerQuests},
		{Name: "accept", Usage: "accept", Help: "Accept an offered quest", Category: CategoryQuests, Handler: HandlerAccept},
		{Name: "decline", Usage: "decline", Help: "Decline an offered quest", Category: CategoryQuests, Handler: HandlerDecline},

		{Name: "puzzle", Aliases: []string{"solve"}, Usage: "puzzle", Help: "Start or show the current puzzle", Category: CategoryPuzzles, Handler: HandlerPuzzle},
		{Name: "answer", Usage: "answer <response>", Help: "Submit your answer", Category: CategoryPuzzles, Handler: HandlerAnswer},
		{Name: "hint", Usage: "hint", Help: "Get a hint for the puzzle", Category: CategoryPuzzles, Handler: HandlerHint},

		{Name: "inventory", Aliases: []string{"inv", "i"}, Usage: "inventory", Help: "View your items", Category: CategoryItems, Handler: HandlerInventory},
		{Name: "examine", Aliases: []string{"x"}, Usage: "examine <item>", Help: "Look at an item", Category: CategoryItems, Handler: HandlerExamine},
		{Name: "take", Aliases: []string{"get"}, Usage: "take <item>", Help: "Pick up an item", Category: CategoryItems, Handler: HandlerTake},

		{Name: "stats", Aliases: []string{"status"}, Usage: "stats", Help: "View character stats", Category: CategoryPlayer, Handler: HandlerStats},

		{Name: "help", Aliases: []string{"h", "?"}, Usage: "help", Help: "Show this help", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "save", Usage: "save", Help: "Force save game", Category: CategorySystem, Handler: HandlerSave},
		{Name: "reset", Usage: "reset confirm", Help: "Reset game to initial state", Category: CategorySystem, Handler: HandlerReset},
		{Name: "quit", Aliases: []string{"q"}, Usage: "quit", Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// Categories returns the help categories in display order.
func Categories() []string {
	return []string{
		CategoryNavigation,
		CategoryTime,
		CategoryInteraction,
		CategoryQuests,
		CategoryPuzzles,
		CategoryItems,
		CategoryPlayer,
		CategorySystem,
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west":
		return true
	default:
		return false
	}
}
