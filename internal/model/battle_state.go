package model

import (
	"maps"
	"math"
	"slices"
)

// BattleState is the full mutable state of one battle.
// Created once by the host and mutated in place for the battle's lifetime.
// Not safe for concurrent use.
type BattleState struct {
	Combatants map[CombatantID]*Combatant `yaml:"combatants" json:"combatants"`
	TurnNumber int                        `yaml:"turn_number" json:"turnNumber"`
}

// NewBattleState builds a state at turn 0 from the given combatants.
func NewBattleState(combatants ...*Combatant) *BattleState {
	s := &BattleState{
		Combatants: make(map[CombatantID]*Combatant, len(combatants)),
	}
	for _, c := range combatants {
		s.Combatants[c.ID] = c
	}
	return s
}

// Combatant returns the combatant with the given id, or nil.
func (s *BattleState) Combatant(id CombatantID) *Combatant {
	return s.Combatants[id]
}

// IDs returns all combatant ids in ascending order.
func (s *BattleState) IDs() []CombatantID {
	return slices.Sorted(maps.Keys(s.Combatants))
}

// Living returns the ids of combatants with HP > 0, ascending.
func (s *BattleState) Living() []CombatantID {
	ids := s.IDs()
	out := ids[:0]
	for _, id := range ids {
		if !s.Combatants[id].IsFainted() {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy suitable as a replay snapshot.
func (s *BattleState) Clone() *BattleState {
	cp := &BattleState{
		Combatants: make(map[CombatantID]*Combatant, len(s.Combatants)),
		TurnNumber: s.TurnNumber,
	}
	for id, c := range s.Combatants {
		cp.Combatants[id] = c.Clone()
	}
	return cp
}

// HPPercent computes round(hp/maxHP * 10000) / 100.
func HPPercent(hp, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return math.Round(float64(hp)/float64(maxHP)*10000) / 100
}
