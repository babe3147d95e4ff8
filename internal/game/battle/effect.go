package battle

import "github.com/udisondev/turnbattle/internal/model"

// EffectKind names an Effect variant.
type EffectKind string

const (
	EffectUseMove     EffectKind = "useMove"
	EffectApplyDamage EffectKind = "applyDamage"
	EffectHeal        EffectKind = "heal"
	EffectSetStatus   EffectKind = "setStatus"
	EffectConsumeItem EffectKind = "consumeItem"
)

// Effect is a pending state mutation. The set of variants is closed: only
// the types in this file implement it.
//
// Every effect carries an id unique within its causal chain; trigger guard
// keys are built from it.
type Effect interface {
	EffectID() string
	Kind() EffectKind
	// Subject is the combatant the effect is applied to.
	Subject() model.CombatantID
	isEffect()
}

// UseMove makes User perform MoveID.
type UseMove struct {
	ID     string
	User   model.CombatantID
	MoveID string
}

// ApplyDamage removes Amount hp from Target.
type ApplyDamage struct {
	ID     string
	Target model.CombatantID
	Amount int
}

// Heal restores up to Amount hp to Target.
type Heal struct {
	ID     string
	Target model.CombatantID
	Amount int
}

// SetStatus inflicts Status on Target unless it already has one.
type SetStatus struct {
	ID     string
	Target model.CombatantID
	Status model.Status
}

// ConsumeItem removes Item from Target if Target holds it.
type ConsumeItem struct {
	ID     string
	Target model.CombatantID
	Item   string
}

func (e UseMove) EffectID() string     { return e.ID }
func (e ApplyDamage) EffectID() string { return e.ID }
func (e Heal) EffectID() string        { return e.ID }
func (e SetStatus) EffectID() string   { return e.ID }
func (e ConsumeItem) EffectID() string { return e.ID }

func (UseMove) Kind() EffectKind     { return EffectUseMove }
func (ApplyDamage) Kind() EffectKind { return EffectApplyDamage }
func (Heal) Kind() EffectKind        { return EffectHeal }
func (SetStatus) Kind() EffectKind   { return EffectSetStatus }
func (ConsumeItem) Kind() EffectKind { return EffectConsumeItem }

func (e UseMove) Subject() model.CombatantID     { return e.User }
func (e ApplyDamage) Subject() model.CombatantID { return e.Target }
func (e Heal) Subject() model.CombatantID        { return e.Target }
func (e SetStatus) Subject() model.CombatantID   { return e.Target }
func (e ConsumeItem) Subject() model.CombatantID { return e.Target }

func (UseMove) isEffect()     {}
func (ApplyDamage) isEffect() {}
func (Heal) isEffect()        {}
func (SetStatus) isEffect()   {}
func (ConsumeItem) isEffect() {}
