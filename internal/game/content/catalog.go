package content

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/stdquest/internal/game/quest"
)

// Catalog indexes loaded content by id. Lists keep load order.
type Catalog struct {
	quests  []*quest.Quest
	npcs    []*NPC
	items   []*Item
	puzzles []*quest.Puzzle

	questByID  map[string]*quest.Quest
	npcByID    map[string]*NPC
	itemByID   map[string]*Item
	puzzleByID map[string]*quest.Puzzle
}

// NewCatalog indexes the given content. Entries without an id are dropped.
//
// Postcondition: Always returns a usable Catalog. On a duplicate id the first
// definition wins and the error lists every duplicate.
func NewCatalog(quests []*quest.Quest, npcs []*NPC, items []*Item, puzzles []*quest.Puzzle) (*Catalog, error) {
	c := &Catalog{
		questByID:  make(map[string]*quest.Quest),
		npcByID:    make(map[string]*NPC),
		itemByID:   make(map[string]*Item),
		puzzleByID: make(map[string]*quest.Puzzle),
	}
	var errs []error
	for _, q := range quests {
		if add(c.questByID, q.ID, q, "quest", &errs) {
			c.quests = append(c.quests, q)
		}
	}
	for _, n := range npcs {
		if add(c.npcByID, n.ID, n, "npc", &errs) {
			c.npcs = append(c.npcs, n)
		}
	}
	for _, it := range items {
		if add(c.itemByID, it.ID, it, "item", &errs) {
			c.items = append(c.items, it)
		}
	}
	for _, p := range puzzles {
		if add(c.puzzleByID, p.ID, p, "puzzle", &errs) {
			c.puzzles = append(c.puzzles, p)
		}
	}
	return c, errors.Join(errs...)
}

func add[T any](index map[string]T, id string, v T, kind string, errs *[]error) bool {
	if id == "" {
		return false
	}
	if _, dup := index[id]; dup {
		*errs = append(*errs, fmt.Errorf("%s %q defined more than once", kind, id))
		return false
	}
	index[id] = v
	return true
}

func (c *Catalog) Quest(id string) (*quest.Quest, bool) {
	q, ok := c.questByID[id]
	return q, ok
}

func (c *Catalog) Puzzle(id string) (*quest.Puzzle, bool) {
	p, ok := c.puzzleByID[id]
	return p, ok
}

func (c *Catalog) NPC(id string) (*NPC, bool) {
	n, ok := c.npcByID[id]
	return n, ok
}

func (c *Catalog) Item(id string) (*Item, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// ItemName returns the display name of a defined item.
func (c *Catalog) ItemName(id string) (string, bool) {
	it, ok := c.itemByID[id]
	if !ok {
		return "", false
	}
	return it.Name, true
}

func (c *Catalog) Quests() []*quest.Quest   { return c.quests }
func (c *Catalog) NPCs() []*NPC             { return c.npcs }
func (c *Catalog) Items() []*Item           { return c.items }
func (c *Catalog) Puzzles() []*quest.Puzzle { return c.puzzles }

// NPCsAt returns the NPCs present in section, in load order.
func (c *Catalog) NPCsAt(section string) []*NPC {
	var out []*NPC
	for _, n := range c.npcs {
		if n.IsAt(section) {
			out = append(out, n)
		}
	}
	return out
}

// ItemsAt returns the items found in section that owned does not report as
// already collected.
func (c *Catalog) ItemsAt(section string, owned func(id string) bool) []*Item {
	var out []*Item
	for _, it := range c.items {
		if it.SourceSection == section && (owned == nil || !owned(it.ID)) {
			out = append(out, it)
		}
	}
	return out
}
