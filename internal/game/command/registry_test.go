package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		name    string
		handler string
	}{
		{"look", "look", HandlerLook},
		{"l", "look", HandlerLook},
		{"LOOK", "look", HandlerLook},
		{"north", "north", HandlerMove},
		{"n", "north", HandlerMove},
		{"s", "south", HandlerMove},
		{"e", "east", HandlerMove},
		{"w", "west", HandlerMove},
		{"leave", "exit", HandlerExit},
		{"g", "goto", HandlerGoto},
		{"find", "search", HandlerSearch},
		{"[", "back", HandlerBack},
		{"]", "forward", HandlerForward},
		{"journal", "quests", HandlerQuests},
		{"solve", "puzzle", HandlerPuzzle},
		{"get", "take", HandlerTake},
		{"i", "inventory", HandlerInventory},
		{"status", "stats", HandlerStats},
		{"?", "help", HandlerHelp},
		{"q", "quit", HandlerQuit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, ok := r.Resolve(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.name, cmd.Name)
			assert.Equal(t, tt.handler, cmd.Handler)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, ok := DefaultRegistry().Resolve("attack")
	assert.False(t, ok)
}

func TestNewRegistry_ReportsEveryConflict(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "look", Aliases: []string{"l"}, Handler: "a"},
		{Name: "look", Handler: "b"},
		{Name: "list", Aliases: []string{"l"}, Handler: "c"},
		{Name: "nothing"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate command name "look"`)
	assert.Contains(t, err.Error(), `duplicate alias "l": used by "look" and "list"`)
	assert.Contains(t, err.Error(), `command "nothing" has no handler`)
}

func TestCommands_RegistrationOrder(t *testing.T) {
	cmds := DefaultRegistry().Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, "look", cmds[0].Name)
	assert.Equal(t, "quit", cmds[len(cmds)-1].Name)

	cmds[0] = nil
	assert.NotNil(t, DefaultRegistry().Commands()[0], "Commands returns a copy")
}

func TestCommandsByCategory(t *testing.T) {
	cats := DefaultRegistry().CommandsByCategory()

	assert.Len(t, cats, len(Categories()))
	for _, c := range Categories() {
		assert.NotEmpty(t, cats[c], "category %q", c)
	}
	require.Len(t, cats[CategoryTime], 4)
	assert.Equal(t, "timeshift", cats[CategoryTime][0].Name)
}

func TestBuiltinCommands_HaveUsageAndHelp(t *testing.T) {
	for _, cmd := range BuiltinCommands() {
		assert.NotEmpty(t, cmd.Usage, "command %q", cmd.Name)
		assert.NotEmpty(t, cmd.Help, "command %q", cmd.Name)
	}
}

func TestIsMovementCommand(t *testing.T) {
	for _, name := range []string{"north", "south", "east", "west"} {
		assert.True(t, IsMovementCommand(name), name)
	}
	assert.False(t, IsMovementCommand("up"))
	assert.False(t, IsMovementCommand("look"))
}

func TestPropertyEveryWordResolvesToItsCommand(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	rapid.Check(t, func(t *rapid.T) {
		cmd := cmds[rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd")]
		words := append([]string{cmd.Name}, cmd.Aliases...)
		word := words[rapid.IntRange(0, len(words)-1).Draw(t, "word")]

		got, ok := r.Resolve(word)
		if !ok || got.Name != cmd.Name {
			t.Fatalf("%q resolved to %v, want %q", word, got, cmd.Name)
		}
	})
}
