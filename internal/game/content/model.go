// Package content loads the externally authored quests, NPCs, items, and
// puzzles and indexes them for the game.
package content

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Everywhere in an NPC's locations places it in every section.
const Everywhere = "*"

// ItemEffects are applied when an item is picked up.
type ItemEffects struct {
	StatBoost map[string]int `yaml:"statBoost,omitempty"`
}

// Item is a collectible found in a section.
type Item struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Category      string       `yaml:"category"`
	Rarity        string       `yaml:"rarity"`
	Description   string       `yaml:"description"`
	Lore          string       `yaml:"lore,omitempty"`
	SourceSection string       `yaml:"sourceSection"`
	Effects       *ItemEffects `yaml:"effects,omitempty"`
}

// Matches reports whether query names the item by display name or id.
func (it *Item) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(it.ID, q)
}

// EraText is text that may vary by era. In YAML it is either a plain string
// or a mapping of era tag to text with an optional "default" key.
type EraText struct {
	Default string
	ByEra   map[string]string
}

// For returns the text for era, falling back to Default.
func (t EraText) For(era string) string {
	if s, ok := t.ByEra[era]; ok && s != "" {
		return s
	}
	return t.Default
}

func (t *EraText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&t.Default)
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return err
		}
		t.Default = m["default"]
		delete(m, "default")
		t.ByEra = m
		return nil
	}
	return fmt.Errorf("line %d: expected string or era mapping", node.Line)
}

// Topic is one thing an NPC can be asked about.
type Topic struct {
	Key string
	// Text holds the era-specific responses. A mapping's "response" key
	// is treated as a second default.
	Text EraText
	// RequiresEra restricts the topic to one era when set.
	RequiresEra string
}

// AvailableIn reports whether the topic can be discussed in era.
func (t Topic) AvailableIn(era string) bool {
	return t.RequiresEra == "" || t.RequiresEra == era
}

// Response returns the answer for era, or "" when there is none.
func (t Topic) Response(era string) string {
	if !t.AvailableIn(era) {
		return ""
	}
	return t.Text.For(era)
}

// Dialogue is an NPC's greeting and topics. Topics keep their authored order.
type Dialogue struct {
	Greeting EraText
	Topics   []Topic
}

func (d *Dialogue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dialogue must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "greeting":
			if err := val.Decode(&d.Greeting); err != nil {
				return fmt.Errorf("greeting: %w", err)
			}
		case "topics":
			topics, err := decodeTopics(val)
			if err != nil {
				return err
			}
			d.Topics = topics
		}
	}
	return nil
}

func decodeTopics(node *yaml.Node) ([]Topic, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: topics must be a mapping", node.Line)
	}
	topics := make([]Topic, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		t := Topic{Key: key.Value}
		if val.Kind == yaml.MappingNode {
			var m map[string]string
			if err := val.Decode(&m); err != nil {
				return nil, fmt.Errorf("topic %q: %w", key.Value, err)
			}
			t.RequiresEra = m["requiresEra"]
			t.Text.Default = m["default"]
			if t.Text.Default == "" {
				t.Text.Default = m["response"]
			}
			for _, k := range []string{"requiresEra", "default", "response"} {
				delete(m, k)
			}
			t.Text.ByEra = m
		} else if err := val.Decode(&t.Text); err != nil {
			return nil, fmt.Errorf("topic %q: %w", key.Value, err)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// NPC is a character stationed in one or more sections.
type NPC struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Locations []string `yaml:"locations"`
	Dialogue  Dialogue `yaml:"dialogue"`
	Quests    []string `yaml:"quests,omitempty"`
}

// IsAt reports whether the NPC is present in section.
func (n *NPC) IsAt(section string) bool {
	return slices.Contains(n.Locations, Everywhere) || slices.Contains(n.Locations, section)
}

// Matches reports whether query names the NPC by display name or id.
func (n *NPC) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Name), q) || strings.Contains(strings.ToLower(n.ID), q)
}

// Greeting returns the greeting for era, or "Hello." when none is authored.
func (n *NPC) Greeting(era string) string {
	if g := n.Dialogue.Greeting.For(era); g != "" {
		return g
	}
	return "Hello."
}

// AvailableTopics lists the topic keys that can be discussed in era.
func (n *NPC) AvailableTopics(era string) []string {
	var keys []string
	for _, t := range n.Dialogue.Topics {
		if t.AvailableIn(era) {
			keys = append(keys, t.Key)
		}
	}
	return keys
}

// HasTopic reports whether key is an authored topic.
func (n *NPC) HasTopic(key string) bool {
	return slices.ContainsFunc(n.Dialogue.Topics, func(t Topic) bool { return t.Key == key })
}

// FindTopic returns the first topic whose key and query contain one another,
// ignoring case, and that has a response in era.
func (n *NPC) FindTopic(query, era string) (Topic, string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Topic{}, "", false
	}
	for _, t := range n.Dialogue.Topics {
		k := strings.ToLower(t.Key)
		if !strings.Contains(k, q) && !strings.Contains(q, k) {
			continue
		}
		if resp := t.Response(era); resp != "" {
			return t, resp, true
		}
	}
	return Topic{}, "", false
}
