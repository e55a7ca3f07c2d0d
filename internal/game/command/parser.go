package command

import (
	"slices"
	"strings"
	"unicode"
)

// ParseResult is one line of player input split into a verb and arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining words. Case is kept: stable names and puzzle
	// answers are compared by their consumers.
	Args []string
	// RawArgs is everything after the verb with inner spacing preserved.
	RawArgs string
}

// Parse splits line at its first run of whitespace.
//
// Postcondition: Command is empty iff line is blank; Args is nil when there
// are no arguments.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}
	cut := strings.IndexFunc(line, unicode.IsSpace)
	if cut < 0 {
		return ParseResult{Command: strings.ToLower(line)}
	}
	rest := strings.TrimSpace(line[cut:])
	return ParseResult{
		Command: strings.ToLower(line[:cut]),
		Args:    strings.Fields(rest),
		RawArgs: rest,
	}
}

// Text returns RawArgs without one leading filler word, so "ask about
// lambdas" and "ask lambdas" both yield "lambdas".
func (r ParseResult) Text(fillers ...string) string {
	if len(r.Args) == 0 || !slices.Contains(fillers, strings.ToLower(r.Args[0])) {
		return r.RawArgs
	}
	return strings.TrimSpace(r.RawArgs[len(r.Args[0]):])
}
