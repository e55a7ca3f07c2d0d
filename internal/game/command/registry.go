package command

import (
	"errors"
	"fmt"
	"strings"
)

// Registry resolves verbs and their aliases to commands.
type Registry struct {
	byWord  map[string]*Command
	ordered []*Command
}

// NewRegistry indexes cmds by name and alias.
//
// Precondition: names and aliases are lowercase.
// Postcondition: Returns a Registry, or an error listing every command
// without a handler and every word claimed twice.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{byWord: make(map[string]*Command, 2*len(cmds))}
	var errs []error
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Handler == "" {
			errs = append(errs, fmt.Errorf("command %q has no handler", cmd.Name))
		}
		for j, word := range append([]string{cmd.Name}, cmd.Aliases...) {
			prev, taken := r.byWord[word]
			switch {
			case taken && j == 0:
				errs = append(errs, fmt.Errorf("duplicate command name %q: already used by %q", word, prev.Name))
			case taken:
				errs = append(errs, fmt.Errorf("duplicate alias %q: used by %q and %q", word, prev.Name, cmd.Name))
			default:
				r.byWord[word] = cmd
			}
		}
		r.ordered = append(r.ordered, cmd)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRegistry returns a Registry of BuiltinCommands. It panics if the
// builtin table is inconsistent.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias, ignoring case.
func (r *Registry) Resolve(word string) (*Command, bool) {
	cmd, ok := r.byWord[strings.ToLower(word)]
	return cmd, ok
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// CommandsByCategory groups Commands by category, keeping registration order
// within each group.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	groups := make(map[string][]*Command)
	for _, cmd := range r.ordered {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}
	return groups
}
