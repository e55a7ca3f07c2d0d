package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cory-johannsen/stdquest/internal/game/quest"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Dirs names the directories holding each kind of content.
type Dirs struct {
	Quests  string
	NPCs    string
	Items   string
	Puzzles string
}

// decodeDocument parses data as either a single T or a sequence of T.
func decodeDocument[T any](data []byte) ([]*T, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, nil
	}
	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var out []*T
		if err := doc.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
	v := new(T)
	if err := doc.Decode(v); err != nil {
		return nil, err
	}
	return []*T{v}, nil
}

// loadDir reads every *.yaml and *.yml file in dir, sorted by name.
//
// Postcondition: Returns everything that parsed, together with the joined
// errors of files that did not.
func loadDir[T any](dir string) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []*T
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %q: %w", path, err))
			continue
		}
		vs, err := decodeDocument[T](data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parsing %q: %w", path, err))
			continue
		}
		out = append(out, vs...)
	}
	return out, errors.Join(errs...)
}

// LoadQuestsFromBytes parses one or more quests from YAML.
func LoadQuestsFromBytes(data []byte) ([]*quest.Quest, error) {
	qs, err := decodeDocument[quest.Quest](data)
	if err != nil {
		return nil, fmt.Errorf("parsing quest YAML: %w", err)
	}
	for _, q := range qs {
		if q.ID == "" {
			return nil, fmt.Errorf("quest: id must not be empty")
		}
	}
	return qs, nil
}

// LoadNPCsFromBytes parses one or more NPCs from YAML.
func LoadNPCsFromBytes(data []byte) ([]*NPC, error) {
	ns, err := decodeDocument[NPC](data)
	if err != nil {
		return nil, fmt.Errorf("parsing npc YAML: %w", err)
	}
	for _, n := range ns {
		if n.ID == "" {
			return nil, fmt.Errorf("npc: id must not be empty")
		}
	}
	return ns, nil
}

// Load reads every content directory. A missing or unreadable directory and
// files that fail to parse are logged and skipped; content is optional.
//
// Postcondition: Always returns a usable Catalog.
func Load(dirs Dirs, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	quests := loadKind[quest.Quest](dirs.Quests, "quests", logger)
	npcs := loadKind[NPC](dirs.NPCs, "npcs", logger)
	items := loadKind[Item](dirs.Items, "items", logger)
	puzzles := loadKind[quest.Puzzle](dirs.Puzzles, "puzzles", logger)

	cat, err := NewCatalog(quests, npcs, items, puzzles)
	if err != nil {
		logger.Warn("duplicate content ids, keeping first definition", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("quests", len(cat.quests)),
		zap.Int("npcs", len(cat.npcs)),
		zap.Int("items", len(cat.items)),
		zap.Int("puzzles", len(cat.puzzles)),
	)
	return cat
}

func loadKind[T any](dir, kind string, logger *zap.Logger) []*T {
	if dir == "" {
		return nil
	}
	vs, err := loadDir[T](dir)
	if err != nil {
		logger.Warn("content partially unavailable", zap.String("kind", kind), zap.Error(err))
	}
	return vs
}
