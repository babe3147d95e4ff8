package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/turnbattle/internal/model"
)

//go:embed moves.yaml
var defaultMovesYAML []byte

// ErrInvalidMove is returned when a catalog entry fails validation.
var ErrInvalidMove = errors.New("invalid move definition")

// MoveCatalog is a read-only move lookup keyed by move id.
type MoveCatalog struct {
	moves map[string]*model.Move
}

type moveFile struct {
	Moves []model.Move `yaml:"moves"`
}

// DefaultMoveCatalog parses the embedded move list.
func DefaultMoveCatalog() (*MoveCatalog, error) {
	return ParseMoveCatalog(defaultMovesYAML)
}

// LoadMoveCatalog reads a YAML move list from path.
func LoadMoveCatalog(path string) (*MoveCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading move catalog %s: %w", path, err)
	}
	c, err := ParseMoveCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing move catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseMoveCatalog builds a catalog from YAML bytes.
func ParseMoveCatalog(raw []byte) (*MoveCatalog, error) {
	var f moveFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding moves: %w", err)
	}

	c := &MoveCatalog{moves: make(map[string]*model.Move, len(f.Moves))}
	for i := range f.Moves {
		m := f.Moves[i]
		if err := validateMove(&m); err != nil {
			return nil, err
		}
		if _, dup := c.moves[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidMove, m.ID)
		}
		c.moves[m.ID] = &m
	}

	slog.Debug("move catalog loaded", "moves", len(c.moves))
	return c, nil
}

// NewMoveCatalog builds a catalog from already-constructed moves.
// Used by tests and hosts that generate move data in code.
func NewMoveCatalog(moves ...*model.Move) *MoveCatalog {
	c := &MoveCatalog{moves: make(map[string]*model.Move, len(moves))}
	for _, m := range moves {
		c.moves[m.ID] = m
	}
	return c
}

// Move returns the move with the given id.
func (c *MoveCatalog) Move(id string) (*model.Move, bool) {
	m, ok := c.moves[id]
	return m, ok
}

// IDs returns all move ids, sorted.
func (c *MoveCatalog) IDs() []string {
	return slices.Sorted(maps.Keys(c.moves))
}

// Len returns the number of moves.
func (c *MoveCatalog) Len() int { return len(c.moves) }

func validateMove(m *model.Move) error {
	if m.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidMove)
	}
	if !m.Type.Valid() {
		return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidMove, m.ID, m.Type)
	}
	switch m.Category {
	case model.CategoryPhysical, model.CategorySpecial:
		if m.BasePower() <= 0 {
			return fmt.Errorf("%w: %s is %s with no power", ErrInvalidMove, m.ID, m.Category)
		}
	case model.CategoryStatus:
	default:
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidMove, m.ID, m.Category)
	}
	if m.Accuracy != nil && (*m.Accuracy < 1 || *m.Accuracy > 100) {
		return fmt.Errorf("%w: %s accuracy %d not in [1, 100]", ErrInvalidMove, m.ID, *m.Accuracy)
	}
	return nil
}
