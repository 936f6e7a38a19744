// Package languages maps Judge0 language ids to display names and CLI aliases.
package languages

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var defaultCatalog []byte

// Language is one selectable language.
type Language struct {
	ID      int      `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// Catalog is an ordered set of languages.
type Catalog struct {
	Languages []Language `yaml:"languages"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded language catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading language catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing language catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(c.Languages))
	for _, l := range c.Languages {
		if l.ID <= 0 {
			return nil, fmt.Errorf("language %q has invalid id %d", l.Name, l.ID)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate language id %d", l.ID)
		}
		seen[l.ID] = true
	}
	return &c, nil
}

// ByID returns the language with the given Judge0 id.
func (c *Catalog) ByID(id int) (Language, bool) {
	for _, l := range c.Languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve turns a numeric id or a case-insensitive alias into a language id.
// Numeric ids are accepted even when they are not in the catalog.
func (c *Catalog) Resolve(nameOrID string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return 0, fmt.Errorf("language is required")
	}
	if id, err := strconv.Atoi(key); err == nil {
		return id, nil
	}
	for _, l := range c.Languages {
		for _, a := range l.Aliases {
			if strings.ToLower(a) == key {
				return l.ID, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown language: %s", nameOrID)
}

// Names returns the first alias of every language, for help text.
func (c *Catalog) Names() []string {
	var names []string
	for _, l := range c.Languages {
		if len(l.Aliases) > 0 {
			names = append(names, l.Aliases[0])
		}
	}
	return names
}
