// Package persona holds the catalog of simulated user profiles that
// condition the think-aloud narration. Profiles are loaded once at
// startup and never mutated.
package persona

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile describes one simulated user.
type Profile struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Age    int      `yaml:"age,omitempty"`
	Traits []string `yaml:"traits,omitempty"`
	Goal   string   `yaml:"goal"`

	// Behavioural metadata. TechLevel is 1 (novice) to 5 (expert).
	TechLevel            int        `yaml:"tech_level,omitempty"`
	Device               string     `yaml:"device,omitempty"`
	Disabilities         []string   `yaml:"disabilities,omitempty"`
	FrustrationThreshold string     `yaml:"frustration_threshold,omitempty"` // low | medium | high
	TimeConstraint       string     `yaml:"time_constraint,omitempty"`       // relaxed | normal | hurried
	Behaviors            *Behaviors `yaml:"behaviors,omitempty"`

	// Narrative, when set, replaces the generated persona narrative
	// in the compiled prompt.
	Narrative string `yaml:"narrative,omitempty"`
}

type Behaviors struct {
	ReadsInstructions bool `yaml:"reads_instructions"`
	UsesHelp          bool `yaml:"uses_help"`
	AbandonsQuickly   bool `yaml:"abandons_quickly"`
}

// Catalog is an immutable ordered list of profiles.
type Catalog struct {
	profiles []Profile
}

// NewCatalog builds a catalog from YAML. The file holds a top-level
// "personas" list. Duplicate or empty ids are rejected.
func NewCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Personas []Profile `yaml:"personas"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse persona catalog: %w", err)
	}
	if len(doc.Personas) == 0 {
		return nil, fmt.Errorf("persona catalog is empty")
	}
	seen := make(map[string]bool, len(doc.Personas))
	for _, p := range doc.Personas {
		if p.ID == "" {
			return nil, fmt.Errorf("persona %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate persona id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &Catalog{profiles: doc.Personas}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultPersonas)
	if err != nil {
		// The embedded catalog is validated by tests; this is unreachable
		// short of a corrupted build.
		panic(fmt.Sprintf("persona: embedded catalog invalid: %v", err))
	}
	return c
}

// Lookup returns the profile for id, or the first profile in the
// catalog when the id is unknown or empty.
func (c *Catalog) Lookup(id string) Profile {
	for _, p := range c.profiles {
		if p.ID == id {
			return p
		}
	}
	return c.profiles[0]
}

// All returns the profiles in catalog order. The returned slice is a
// copy; callers may not mutate catalog state.
func (c *Catalog) All() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}
