// Package battle resolves battle turns.
//
// A Battle owns the mutable BattleState and the TriggerGuard for one battle
// session. ExecuteTurn orders the planned actions and feeds them through the
// effect queue; ApplyEffect is the only code that mutates a combatant.
//
// Everything here is synchronous and single-threaded. A Battle must not be
// used from more than one goroutine.
package battle

import (
	"github.com/udisondev/turnbattle/internal/game/damage"
	"github.com/udisondev/turnbattle/internal/model"
)

// MoveLookup resolves move reference data by id.
type MoveLookup interface {
	Move(id string) (*model.Move, bool)
}

// Battle is one battle session.
type Battle struct {
	state *model.BattleState
	guard *TriggerGuard
	moves MoveLookup
	chart damage.TypeChart
}

// New creates a session over state. The state is mutated in place by every
// subsequent call.
func New(state *model.BattleState, moves MoveLookup, chart damage.TypeChart) *Battle {
	return &Battle{
		state: state,
		guard: NewTriggerGuard(),
		moves: moves,
		chart: chart,
	}
}

// State returns the live battle state.
func (b *Battle) State() *model.BattleState { return b.state }

// Guard returns the session's trigger guard.
func (b *Battle) Guard() *TriggerGuard { return b.guard }

// Finished reports whether at most one combatant is still standing.
func (b *Battle) Finished() bool {
	return len(b.state.Living()) <= 1
}

// Winner returns the last combatant standing, if there is exactly one.
func (b *Battle) Winner() (model.CombatantID, bool) {
	living := b.state.Living()
	if len(living) != 1 {
		return 0, false
	}
	return living[0], true
}

// opponentOf applies the fixed-opponent rule: the lowest-id living
// combatant other than user. Returns nil when nobody is left.
func (b *Battle) opponentOf(user model.CombatantID) *model.Combatant {
	for _, id := range b.state.Living() {
		if id != user {
			return b.state.Combatant(id)
		}
	}
	return nil
}
