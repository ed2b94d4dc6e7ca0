package commands

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CannedCommand is a fixed-reply command configured entirely in YAML.
type CannedCommand struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
	Reply    string   `yaml:"reply"`
}

// Catalog binds trigger phrases to built-in commands and declares the
// canned ones.
type Catalog struct {
	Welcome  string              `yaml:"welcome"`
	Triggers map[string][]string `yaml:"triggers"`
	Canned   []CannedCommand     `yaml:"canned"`
}

// DefaultCatalog parses the embedded catalog. The embedded file is part
// of the build, so a parse failure is a programming error.
func DefaultCatalog() *Catalog {
	cat, err := parseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return cat
}

// LoadCatalog reads a catalog file and fills anything it leaves out from
// the embedded defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}

	def := DefaultCatalog()
	if cat.Welcome == "" {
		cat.Welcome = def.Welcome
	}
	if cat.Triggers == nil {
		cat.Triggers = map[string][]string{}
	}
	for name, phrases := range def.Triggers {
		if _, ok := cat.Triggers[name]; !ok {
			cat.Triggers[name] = phrases
		}
	}
	if len(cat.Canned) == 0 {
		cat.Canned = def.Canned
	}
	return cat, nil
}

func parseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &cat, nil
}
