package world

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Map is the loaded world graph. It is never mutated after NewMap returns,
// so it is safe for concurrent reads.
type Map struct {
	sections map[string]*Section
	realms   map[string]*Realm
	eras     []Era
	eraNames map[string]string
	aliases  AliasTable
	// names holds every stable name sorted, for deterministic scans.
	names []string
}

// NewMap builds a Map from decoded world data and validates its invariants.
//
// Precondition: eras must be in chronological order.
// Postcondition: Returns a validated Map, or an error joining every violation.
func NewMap(sections []*Section, realms []*Realm, eras []Era, aliases AliasTable) (*Map, error) {
	m := &Map{
		sections: make(map[string]*Section, len(sections)),
		realms:   make(map[string]*Realm, len(realms)),
		eras:     slices.Clone(eras),
		eraNames: make(map[string]string, len(eras)),
		aliases:  aliases,
	}
	if m.aliases == nil {
		m.aliases = AliasTable{}
	}

	for _, e := range eras {
		if _, dup := m.eraNames[e.Tag]; dup {
			return nil, fmt.Errorf("duplicate era tag %q", e.Tag)
		}
		m.eraNames[e.Tag] = e.Name
	}
	for _, s := range sections {
		if s.StableName == "" {
			return nil, errors.New("section stable name must not be empty")
		}
		if _, dup := m.sections[s.StableName]; dup {
			return nil, fmt.Errorf("duplicate section %q", s.StableName)
		}
		s.index()
		m.sections[s.StableName] = s
		m.names = append(m.names, s.StableName)
	}
	sort.Strings(m.names)
	for _, r := range realms {
		if _, dup := m.realms[r.Key]; dup {
			return nil, fmt.Errorf("duplicate realm %q", r.Key)
		}
		m.realms[r.Key] = r
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the graph invariants: bidirectional tree consistency,
// connection and alias targets exist, realm membership agrees with section
// realms, and every era tag is known.
//
// Postcondition: Returns nil if valid, or an error joining every violation.
func (m *Map) Validate() error {
	var errs []error
	for _, name := range m.names {
		s := m.sections[name]
		if s.Parent != "" {
			p, ok := m.sections[s.Parent]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("section %q: parent %q not found", name, s.Parent))
			case !slices.Contains(p.Children, name):
				errs = append(errs, fmt.Errorf("section %q: parent %q does not list it as a child", name, s.Parent))
			}
		}
		for _, c := range s.Children {
			if _, ok := m.sections[c]; !ok {
				errs = append(errs, fmt.Errorf("section %q: child %q not found", name, c))
			}
		}
		for _, dir := range CardinalDirections {
			target := s.Connections[dir]
			if target == "" {
				continue
			}
			if _, ok := m.sections[target]; !ok {
				errs = append(errs, fmt.Errorf("section %q: %s connection targets unknown section %q", name, dir, target))
			}
		}
		for dir := range s.Connections {
			if !slices.Contains(CardinalDirections, dir) {
				errs = append(errs, fmt.Errorf("section %q: unknown direction %q", name, dir))
			}
		}
		for _, e := range s.AvailableIn {
			if _, ok := m.eraNames[e]; !ok {
				errs = append(errs, fmt.Errorf("section %q: unknown era %q", name, e))
			}
		}
		if len(m.realms) > 0 && s.Realm != "" {
			if _, ok := m.realms[s.Realm]; !ok {
				errs = append(errs, fmt.Errorf("section %q: realm %q not found", name, s.Realm))
			}
		}
	}
	for key, r := range m.realms {
		for _, name := range r.Sections {
			s, ok := m.sections[name]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("realm %q: section %q not found", key, name))
			case s.Realm != key:
				errs = append(errs, fmt.Errorf("realm %q: section %q belongs to realm %q", key, name, s.Realm))
			}
		}
	}
	for from, targets := range m.aliases {
		for _, to := range targets {
			if _, ok := m.sections[to]; !ok {
				errs = append(errs, fmt.Errorf("alias %q -> %q: target section not found", from, to))
			}
		}
	}
	return errors.Join(errs...)
}

// Section returns the section with the given stable name.
//
// Postcondition: Returns (section, true) if found, or (nil, false) otherwise.
func (m *Map) Section(name string) (*Section, bool) {
	s, ok := m.sections[name]
	return s, ok
}

// IsAvailableInEra reports whether name exists in era. Unknown names are
// never available.
func (m *Map) IsAvailableInEra(name, era string) bool {
	s, ok := m.sections[name]
	if !ok {
		return false
	}
	return s.InEra(era)
}

// label returns the display name of name, or name itself when unknown.
func (m *Map) label(name string) string {
	if s, ok := m.sections[name]; ok {
		return s.Label()
	}
	return name
}

// SectionCount returns the number of sections.
func (m *Map) SectionCount() int { return len(m.sections) }

// StableNames returns every stable name in lexical order.
func (m *Map) StableNames() []string { return slices.Clone(m.names) }

// Realm returns the realm with the given key.
func (m *Map) Realm(key string) (*Realm, bool) {
	r, ok := m.realms[key]
	return r, ok
}

// RealmFor returns the realm the named section belongs to.
func (m *Map) RealmFor(name string) (*Realm, bool) {
	s, ok := m.sections[name]
	if !ok {
		return nil, false
	}
	return m.Realm(s.Realm)
}

// RealmKeys returns every realm key in lexical order.
func (m *Map) RealmKeys() []string {
	keys := make([]string, 0, len(m.realms))
	for k := range m.realms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Eras returns the eras in chronological order.
func (m *Map) Eras() []Era { return slices.Clone(m.eras) }

// EraName returns the display name of tag, falling back to the tag itself.
func (m *Map) EraName(tag string) string {
	if n, ok := m.eraNames[tag]; ok && n != "" {
		return n
	}
	return tag
}

// HasEra reports whether tag is a known era.
func (m *Map) HasEra(tag string) bool {
	_, ok := m.eraNames[tag]
	return ok
}

// ResolveEra maps player input to an era tag. It accepts the tag itself, the
// display name ("C++17"), or the compact display name ("cpp17"), ignoring case.
func (m *Map) ResolveEra(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	for _, e := range m.eras {
		name := strings.ToLower(e.Name)
		if in == strings.ToLower(e.Tag) || in == name || in == strings.ReplaceAll(name, "+", "p") {
			return e.Tag, true
		}
	}
	return "", false
}

// PreviousEra returns the era before tag in chronological order.
//
// Postcondition: Returns ("", false) when tag is the earliest or unknown.
func (m *Map) PreviousEra(tag string) (string, bool) {
	i := m.eraIndex(tag)
	if i <= 0 {
		return "", false
	}
	return m.eras[i-1].Tag, true
}

// NextEra returns the era after tag in chronological order.
//
// Postcondition: Returns ("", false) when tag is the latest or unknown.
func (m *Map) NextEra(tag string) (string, bool) {
	i := m.eraIndex(tag)
	if i < 0 || i >= len(m.eras)-1 {
		return "", false
	}
	return m.eras[i+1].Tag, true
}

func (m *Map) eraIndex(tag string) int {
	for i, e := range m.eras {
		if e.Tag == tag {
			return i
		}
	}
	return -1
}

// Aliases returns the alias candidates of name in priority order.
func (m *Map) Aliases(name string) []string {
	return slices.Clone(m.aliases.Candidates(name))
}

// AliasForEra returns an equivalent of name that exists in era: name itself
// if available, else the first alias available in era. One hop only.
//
// Postcondition: Returns ("", false) when no equivalent exists.
func (m *Map) AliasForEra(name, era string) (string, bool) {
	if m.IsAvailableInEra(name, era) {
		return name, true
	}
	return m.aliases.Resolve(name, func(alias string) bool {
		return m.IsAvailableInEra(alias, era)
	})
}

// Exits returns the directional connections whose targets exist, together
// with the children and parent of name.
//
// Postcondition: Returns a zero Exits when name is unknown.
func (m *Map) Exits(name string) Exits {
	s, ok := m.sections[name]
	if !ok {
		return Exits{}
	}
	exits := Exits{
		Children: slices.Clone(s.Children),
		Parent:   s.Parent,
	}
	for _, dir := range CardinalDirections {
		target := s.Connections[dir]
		if target == "" {
			continue
		}
		t, ok := m.sections[target]
		if !ok {
			continue
		}
		exits.Directions = append(exits.Directions, DirectionalExit{
			Direction:   dir,
			Target:      target,
			DisplayName: t.DisplayName,
		})
	}
	return exits
}

// maxListedChildren bounds the children named in an exit summary.
const maxListedChildren = 5

// ExitDescriptions describes the exits of name that exist in era: directions
// first, then a children summary, then the parent.
func (m *Map) ExitDescriptions(name, era string) []string {
	exits := m.Exits(name)
	var out []string

	for _, e := range exits.Directions {
		if m.IsAvailableInEra(e.Target, era) {
			out = append(out, fmt.Sprintf("%s to %s", e.Direction, e.DisplayName))
		}
	}

	var children []string
	for _, c := range exits.Children {
		if m.IsAvailableInEra(c, era) {
			children = append(children, c)
		}
	}
	if len(children) > 0 {
		shown := make([]string, 0, maxListedChildren+1)
		for _, c := range children[:min(len(children), maxListedChildren)] {
			shown = append(shown, m.label(c))
		}
		if extra := len(children) - maxListedChildren; extra > 0 {
			shown = append(shown, fmt.Sprintf("+%d more", extra))
		}
		out = append(out, "enter: "+strings.Join(shown, ", "))
	}

	if exits.Parent != "" && m.IsAvailableInEra(exits.Parent, era) {
		out = append(out, "exit to "+m.label(exits.Parent))
	}
	return out
}

// Path returns display names from the outermost ancestor down to name.
//
// Postcondition: Returns nil when name is unknown.
func (m *Map) Path(name string) []string {
	s, ok := m.sections[name]
	if !ok {
		return nil
	}
	path := []string{s.Label()}
	seen := map[string]bool{name: true}
	for cur := s.Parent; cur != "" && !seen[cur]; {
		p, ok := m.sections[cur]
		if !ok {
			break
		}
		seen[cur] = true
		path = append([]string{p.Label()}, path...)
		cur = p.Parent
	}
	return path
}
