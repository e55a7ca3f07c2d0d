package world

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed world-map.schema.json
var worldMapSchema string

var compiledSchema = jsonschema.MustCompileString("world-map.schema.json", worldMapSchema)

// jsonWorldMap is the top-level structure of world-map.json.
type jsonWorldMap struct {
	Version           string                 `json:"version"`
	Sections          map[string]jsonSection `json:"sections"`
	Realms            map[string]jsonRealm   `json:"realms"`
	Eras              eraList                `json:"eras"`
	StableNameAliases map[string][]string    `json:"stableNameAliases"`
}

type jsonSection struct {
	StableName  string            `json:"stableName"`
	DisplayName string            `json:"displayName"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Realm       string            `json:"realm"`
	Chapter     string            `json:"chapter"`
	Parent      string            `json:"parent"`
	Children    []string          `json:"children"`
	Connections map[string]string `json:"connections"`
	AvailableIn []string          `json:"availableIn"`
}

type jsonRealm struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Theme       string   `json:"theme"`
	Sections    []string `json:"sections"`
}

// eraList decodes the "eras" object preserving key order, which is the
// chronological order when no explicit order is configured.
type eraList []Era

// UnmarshalJSON reads a JSON object of tag → name pairs in document order.
func (l *eraList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("eras: expected object, got %v", tok)
	}
	var out eraList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("eras: %v: %w", keyTok, err)
		}
		out = append(out, Era{Tag: keyTok.(string), Name: name})
	}
	*l = out
	return nil
}

// LoadMapFromFile reads, schema-checks, and validates a world-map.json file.
//
// Precondition: path must point to a world-map JSON document.
// Postcondition: Returns a validated Map or a non-nil error.
func LoadMapFromFile(path string, eraOrder []string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world map %s: %w", path, err)
	}
	return LoadMapFromBytes(data, eraOrder)
}

// LoadMapFromBytes parses a world map from JSON bytes. When eraOrder is
// non-empty it fixes the chronological order of eras; eras it omits follow in
// document order.
//
// Precondition: data must be JSON conforming to the world-map schema.
// Postcondition: Returns a validated Map or a non-nil error.
func LoadMapFromBytes(data []byte, eraOrder []string) (*Map, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing world map JSON: %w", err)
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("world map does not match schema: %w", err)
	}

	var file jsonWorldMap
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding world map: %w", err)
	}

	eras, err := orderEras(file.Eras, eraOrder)
	if err != nil {
		return nil, err
	}

	sections, realms := convertJSONMap(file)
	m, err := NewMap(sections, realms, eras, AliasTable(file.StableNameAliases))
	if err != nil {
		return nil, fmt.Errorf("validating world map: %w", err)
	}
	return m, nil
}

func orderEras(eras []Era, order []string) ([]Era, error) {
	if len(order) == 0 {
		return eras, nil
	}
	byTag := make(map[string]Era, len(eras))
	for _, e := range eras {
		byTag[e.Tag] = e
	}
	out := make([]Era, 0, len(eras))
	var unknown []string
	for _, tag := range order {
		e, ok := byTag[tag]
		if !ok {
			unknown = append(unknown, tag)
			continue
		}
		out = append(out, e)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("era order names unknown eras: %s", strings.Join(unknown, ", "))
	}
	for _, e := range eras {
		if !slices.Contains(order, e.Tag) {
			out = append(out, e)
		}
	}
	return out, nil
}

// convertJSONMap converts the decoded JSON structures into domain types.
func convertJSONMap(file jsonWorldMap) ([]*Section, []*Realm) {
	sections := make([]*Section, 0, len(file.Sections))
	for key, js := range file.Sections {
		name := js.StableName
		if name == "" {
			name = key
		}
		s := &Section{
			StableName:  name,
			DisplayName: js.DisplayName,
			Title:       js.Title,
			Description: strings.TrimSpace(js.Description),
			Realm:       js.Realm,
			Chapter:     js.Chapter,
			Parent:      js.Parent,
			Children:    js.Children,
			Connections: make(map[Direction]string, len(js.Connections)),
			AvailableIn: js.AvailableIn,
		}
		for dir, target := range js.Connections {
			if target != "" {
				s.Connections[Direction(dir)] = target
			}
		}
		sections = append(sections, s)
	}

	realms := make([]*Realm, 0, len(file.Realms))
	for key, jr := range file.Realms {
		realms = append(realms, &Realm{
			Key:         key,
			Name:        jr.Name,
			Description: strings.TrimSpace(jr.Description),
			Theme:       jr.Theme,
			Sections:    jr.Sections,
		})
	}
	return sections, realms
}
