package world

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/gameerr"
)

const (
	maxWarpCandidates = 5
	maxGotoCandidates = 10
)

func (m *Map) current(name string) (*Section, error) {
	s, ok := m.sections[name]
	if !ok {
		return nil, gameerr.New(gameerr.KindNotFound, "Current location not found.")
	}
	return s, nil
}

func (m *Map) unavailable(target, era string) error {
	return gameerr.New(gameerr.KindNotAvailableInEra, "%s doesn't exist in %s.", m.label(target), m.EraName(era))
}

// Navigate follows the connection in dir from the section from.
//
// Postcondition: Returns the target stable name, or an error of kind
// NotFound, NoSuchConnection, or NotAvailableInEra.
func (m *Map) Navigate(from string, dir Direction, era string) (string, error) {
	s, err := m.current(from)
	if err != nil {
		return "", err
	}
	target := s.Connections[dir]
	if target == "" {
		return "", gameerr.New(gameerr.KindNoSuchConnection, "You cannot go %s from here.", dir)
	}
	if !m.IsAvailableInEra(target, era) {
		return "", m.unavailable(target, era)
	}
	return target, nil
}

// Enter moves into a child of from. The child is matched by exact stable
// name (case-insensitive), then by display name containing child, then by
// stable name containing child. The first match in child order wins; an
// ambiguous partial is not an error.
//
// Postcondition: Returns the child stable name, or an error of kind
// NotFound, NothingToEnter, NoMatch, or NotAvailableInEra.
func (m *Map) Enter(from, child, era string) (string, error) {
	s, err := m.current(from)
	if err != nil {
		return "", err
	}
	if len(s.Children) == 0 {
		return "", gameerr.New(gameerr.KindNothingToEnter, "There is nothing to enter here.")
	}

	want := strings.ToLower(strings.TrimSpace(child))
	target := ""
	matchers := []func(string) bool{
		func(c string) bool { return strings.ToLower(c) == want },
		func(c string) bool {
			cs, ok := m.sections[c]
			return ok && strings.Contains(strings.ToLower(cs.DisplayName), want)
		},
		func(c string) bool { return strings.Contains(strings.ToLower(c), want) },
	}
	for _, match := range matchers {
		if i := slices.IndexFunc(s.Children, match); i >= 0 {
			target = s.Children[i]
			break
		}
	}
	if target == "" {
		return "", gameerr.New(gameerr.KindNoMatch, "Cannot find %q to enter.", child)
	}
	if !m.IsAvailableInEra(target, era) {
		return "", m.unavailable(target, era)
	}
	return target, nil
}

// Exit moves to the parent of from.
//
// Postcondition: Returns the parent stable name, or an error of kind
// NotFound, NoParent, or NotAvailableInEra.
func (m *Map) Exit(from, era string) (string, error) {
	s, err := m.current(from)
	if err != nil {
		return "", err
	}
	if s.Parent == "" {
		return "", gameerr.New(gameerr.KindNoParent, "There is nowhere to exit to from here.")
	}
	if !m.IsAvailableInEra(s.Parent, era) {
		return "", gameerr.New(gameerr.KindNotAvailableInEra, "The parent area doesn't exist in %s.", m.EraName(era))
	}
	return s.Parent, nil
}

// Warp fast-travels to a previously visited section. An exact stable name
// must be in visited; otherwise target is matched against visited only,
// by stable name or display name containing it (case-insensitive).
//
// Postcondition: A returned target is always a member of visited. Errors are
// of kind NotDiscovered, NoMatch, Ambiguous, or NotAvailableInEra.
func (m *Map) Warp(target, era string, visited []string) (string, error) {
	if _, ok := m.sections[target]; ok {
		if !slices.Contains(visited, target) {
			return "", gameerr.New(gameerr.KindNotDiscovered, "You haven't discovered %s yet.", target)
		}
		if !m.IsAvailableInEra(target, era) {
			return "", m.unavailable(target, era)
		}
		return target, nil
	}

	want := strings.ToLower(target)
	var matches []string
	for _, name := range visited {
		if slices.Contains(matches, name) {
			continue
		}
		s, ok := m.sections[name]
		if strings.Contains(strings.ToLower(name), want) ||
			(ok && strings.Contains(strings.ToLower(s.DisplayName), want)) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", gameerr.New(gameerr.KindNoMatch, "Cannot find %q in visited locations.", target)
	case 1:
	default:
		return "", m.ambiguous(matches, maxWarpCandidates)
	}

	if !m.IsAvailableInEra(matches[0], era) {
		return "", m.unavailable(matches[0], era)
	}
	return matches[0], nil
}

func (m *Map) ambiguous(matches []string, limit int) error {
	names := make([]string, 0, limit)
	for _, name := range matches[:min(len(matches), limit)] {
		names = append(names, m.label(name))
	}
	msg := fmt.Sprintf("Multiple matches: %s. Be more specific.", strings.Join(names, ", "))
	if extra := len(matches) - limit; extra > 0 {
		msg = fmt.Sprintf("Multiple matches: %s and %d more. Be more specific.", strings.Join(names, ", "), extra)
	}
	return &gameerr.Error{Kind: gameerr.KindAmbiguous, Message: msg, Candidates: matches}
}

// normalizeGotoTarget strips wiki brackets and joins words with dots, so
// "[[class.copy]]" and "class copy" both name class.copy.
func normalizeGotoTarget(target string) string {
	target = strings.Join(strings.Fields(target), ".")
	target = strings.TrimLeft(target, "[")
	return strings.TrimRight(target, "]")
}

// Goto jumps to any section, discovered or not. An exact stable name wins;
// otherwise sections whose stable name or display name contain target are
// considered.
//
// Postcondition: Returns the target stable name, or an error of kind
// NoMatch, Ambiguous, or NotAvailableInEra.
func (m *Map) Goto(target, era string) (string, error) {
	target = normalizeGotoTarget(target)
	if _, ok := m.sections[target]; !ok {
		want := strings.ToLower(target)
		var matches []string
		for _, name := range m.names {
			s := m.sections[name]
			if strings.Contains(strings.ToLower(name), want) ||
				strings.Contains(strings.ToLower(s.DisplayName), want) {
				matches = append(matches, name)
			}
		}
		switch len(matches) {
		case 0:
			return "", gameerr.New(gameerr.KindNoMatch, "Section %q not found.", target)
		case 1:
			target = matches[0]
		default:
			return "", m.ambiguous(matches, maxGotoCandidates)
		}
	}
	if !m.IsAvailableInEra(target, era) {
		return "", m.unavailable(target, era)
	}
	return target, nil
}

// Search returns the sections available in era whose stable name, title, or
// display name contain term, ignoring case, in lexical order.
func (m *Map) Search(term, era string) []*Section {
	want := strings.ToLower(strings.TrimSpace(term))
	if want == "" {
		return nil
	}
	var out []*Section
	for _, name := range m.names {
		s := m.sections[name]
		if !s.InEra(era) {
			continue
		}
		if strings.Contains(strings.ToLower(name), want) ||
			strings.Contains(strings.ToLower(s.Title), want) ||
			strings.Contains(strings.ToLower(s.DisplayName), want) {
			out = append(out, s)
		}
	}
	return out
}

// Timeshift finds where a player standing in current ends up in targetEra.
// The section itself is preferred; otherwise the first alias available in
// targetEra stands in for it.
//
// Postcondition: Returns a Shift, or an error of kind NoEquivalent.
func (m *Map) Timeshift(current, targetEra string) (Shift, error) {
	if m.IsAvailableInEra(current, targetEra) {
		return Shift{Target: current}, nil
	}
	alias, ok := m.aliases.Resolve(current, func(a string) bool {
		return m.IsAvailableInEra(a, targetEra)
	})
	if !ok {
		return Shift{}, gameerr.New(gameerr.KindNoEquivalent,
			"%q doesn't exist in %s and has no known equivalent.", m.label(current), m.EraName(targetEra))
	}

	from := current
	if s, ok := m.sections[current]; ok {
		from = s.HeadingTitle()
	}
	return Shift{
		Target:  alias,
		Aliased: true,
		Message: fmt.Sprintf("Section %q was renamed to %q in %s.", from, m.sections[alias].HeadingTitle(), m.EraName(targetEra)),
	}, nil
}
