package model

import "slices"

// CombatantID identifies a combatant within one battle.
type CombatantID int

// Stats holds the computed (not base) stat values.
type Stats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"spAttack"`
	SpDefense int `yaml:"sp_defense" json:"spDefense"`
	Speed     int `yaml:"speed" json:"speed"`
}

// StatStages holds in-battle stage modifiers in [-6, +6].
// Tracked in state; the damage formula does not apply them yet.
type StatStages struct {
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"spAttack"`
	SpDefense int `yaml:"sp_defense" json:"spDefense"`
	Speed     int `yaml:"speed" json:"speed"`
	Accuracy  int `yaml:"accuracy" json:"accuracy"`
	Evasion   int `yaml:"evasion" json:"evasion"`
}

// Combatant is a battling entity. Only the battle effect applier mutates
// HP, Status and HeldItem once a battle has started.
//
// Invariant: 0 <= HP <= MaxHP.
type Combatant struct {
	ID         CombatantID `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Level      int         `yaml:"level" json:"level"`
	HP         int         `yaml:"hp" json:"hp"`
	MaxHP      int         `yaml:"max_hp" json:"maxHp"`
	Stats      Stats       `yaml:"stats" json:"stats"`
	StatStages StatStages  `yaml:"stat_stages" json:"statStages"`
	Types      []Type      `yaml:"types" json:"types"`
	Status     Status      `yaml:"status" json:"status,omitempty"`
	Ability    string      `yaml:"ability" json:"ability,omitempty"`
	HeldItem   string      `yaml:"held_item" json:"heldItem,omitempty"`
	Moves      []string    `yaml:"moves" json:"moves"`
}

// IsFainted reports whether the combatant has no HP left.
func (c *Combatant) IsFainted() bool {
	return c.HP <= 0
}

// HasType reports whether t is one of the combatant's types.
func (c *Combatant) HasType(t Type) bool {
	return slices.Contains(c.Types, t)
}

// HPPercent returns HP as a percentage of MaxHP rounded to two decimals.
func (c *Combatant) HPPercent() float64 {
	return HPPercent(c.HP, c.MaxHP)
}

// Clone returns a deep copy.
func (c *Combatant) Clone() *Combatant {
	cp := *c
	cp.Types = slices.Clone(c.Types)
	cp.Moves = slices.Clone(c.Moves)
	return &cp
}
