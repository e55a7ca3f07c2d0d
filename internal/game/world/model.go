// Package world provides the era-aware section graph: sections, realms, eras,
// directional connections, and cross-era stable name aliases.
package world

import "strings"

// Direction is a cardinal direction used by section connections.
type Direction string

// Cardinal directions.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// CardinalDirections lists the directions in the order exits are reported.
var CardinalDirections = []Direction{North, South, East, West}

// ParseDirection resolves a full or single-letter direction name.
//
// Postcondition: Returns (dir, true) for north/south/east/west and n/s/e/w
// in any case, or ("", false) otherwise.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, true
	case "south", "s":
		return South, true
	case "east", "e":
		return East, true
	case "west", "w":
		return West, true
	default:
		return "", false
	}
}

// Section is a node in the world graph. One section exists per stable name
// across every era; AvailableIn records the eras where it is present.
type Section struct {
	// StableName is the unique dotted key, e.g. "class.copy".
	StableName string
	// DisplayName is the short label shown in exits and lists.
	DisplayName string
	// Title is the heading of the underlying document section.
	Title string
	// Description is presentation text, opaque to the engine.
	Description string
	// Realm is the key of the realm grouping this section.
	Realm string
	// Chapter names the document file that holds the section text.
	Chapter string
	// Parent is the enclosing section; empty for chapter roots.
	Parent string
	// Children are the enclosed sections in document order.
	Children []string
	// Connections maps a direction to a target stable name. Empty targets
	// mean no connection.
	Connections map[Direction]string
	// AvailableIn lists the era tags this section exists in.
	AvailableIn []string

	eras map[string]struct{}
}

// InEra reports whether the section exists in the given era.
func (s *Section) InEra(era string) bool {
	if s.eras == nil {
		for _, e := range s.AvailableIn {
			if e == era {
				return true
			}
		}
		return false
	}
	_, ok := s.eras[era]
	return ok
}

// Label returns the display name, falling back to the stable name.
func (s *Section) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.StableName
}

// HeadingTitle returns the title, falling back to the stable name.
func (s *Section) HeadingTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.StableName
}

func (s *Section) index() {
	s.eras = make(map[string]struct{}, len(s.AvailableIn))
	for _, e := range s.AvailableIn {
		s.eras[e] = struct{}{}
	}
}

// Realm groups sections for map overviews.
type Realm struct {
	Key         string
	Name        string
	Description string
	Theme       string
	// Sections are the member stable names in document order.
	Sections []string
}

// Era is a tagged snapshot of the documentation corpus.
type Era struct {
	// Tag is the document number, e.g. "n4950".
	Tag string
	// Name is the display name, e.g. "C++23".
	Name string
}

// DirectionalExit is a connection whose target section exists.
type DirectionalExit struct {
	Direction   Direction
	Target      string
	DisplayName string
}

// Exits describes every way out of a section, ignoring eras.
type Exits struct {
	Directions []DirectionalExit
	Children   []string
	Parent     string
}

// Shift is the outcome of a successful timeshift.
type Shift struct {
	// Target is the section the player occupies in the new era.
	Target string
	// Aliased is true when Target differs from the starting section.
	Aliased bool
	// Message announces the rename when Aliased is true.
	Message string
}
