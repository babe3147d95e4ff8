package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/turnbattle/internal/model"
)

//go:embed roster.yaml
var defaultRosterYAML []byte

// ErrInvalidRoster is returned when a roster entry fails validation.
var ErrInvalidRoster = errors.New("invalid roster entry")

// Roster is a list of combatant templates a host can field.
type Roster struct {
	Combatants []model.Combatant `yaml:"combatants"`
}

// DefaultRoster parses the embedded sample roster.
func DefaultRoster() (*Roster, error) {
	return ParseRoster(defaultRosterYAML)
}

// LoadRoster reads a roster from a YAML file.
func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return ParseRoster(raw)
}

// ParseRoster decodes and validates a roster. Entries with hp 0 start at
// full health.
func ParseRoster(raw []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decoding roster: %w", err)
	}
	if len(r.Combatants) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 combatants, got %d", ErrInvalidRoster, len(r.Combatants))
	}
	for i := range r.Combatants {
		c := &r.Combatants[i]
		if c.HP == 0 {
			c.HP = c.MaxHP
		}
		if err := validateCombatant(c); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

// Field returns a fresh copy of template i with the given battle id.
func (r *Roster) Field(i int, id model.CombatantID) *model.Combatant {
	c := r.Combatants[i%len(r.Combatants)].Clone()
	c.ID = id
	return c
}

// Validate checks every move a roster entry knows against the catalog.
func (r *Roster) Validate(moves *MoveCatalog) error {
	for _, c := range r.Combatants {
		if len(c.Moves) == 0 {
			return fmt.Errorf("%w: %s knows no moves", ErrInvalidRoster, c.Name)
		}
		for _, id := range c.Moves {
			if _, ok := moves.Move(id); !ok {
				return fmt.Errorf("%w: %s knows unknown move %q", ErrInvalidRoster, c.Name, id)
			}
		}
	}
	return nil
}

func validateCombatant(c *model.Combatant) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidRoster)
	case c.Level < 1 || c.Level > 100:
		return fmt.Errorf("%w: %s level %d", ErrInvalidRoster, c.Name, c.Level)
	case c.MaxHP <= 0 || c.HP < 0 || c.HP > c.MaxHP:
		return fmt.Errorf("%w: %s hp %d/%d", ErrInvalidRoster, c.Name, c.HP, c.MaxHP)
	case len(c.Types) == 0 || len(c.Types) > 2:
		return fmt.Errorf("%w: %s has %d types", ErrInvalidRoster, c.Name, len(c.Types))
	}
	for _, t := range c.Types {
		if !t.Valid() {
			return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidRoster, c.Name, t)
		}
	}
	return nil
}
