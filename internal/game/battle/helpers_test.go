package battle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// newCombatant returns a level 50 combatant with 200 hp and 100 in every
// other stat.
func newCombatant(id model.CombatantID, speed int, types ...model.Type) *model.Combatant {
	if len(types) == 0 {
		types = []model.Type{model.TypeWater}
	}
	return &model.Combatant{
		ID:    id,
		Name:  "test",
		Level: 50,
		HP:    200,
		MaxHP: 200,
		Stats: model.Stats{
			HP:        200,
			Attack:    100,
			Defense:   100,
			SpAttack:  100,
			SpDefense: 100,
			Speed:     speed,
		},
		Types: types,
		Moves: []string{"tackle"},
	}
}

func newTestBattle(t testing.TB, combatants ...*model.Combatant) *Battle {
	t.Helper()
	moves, err := data.DefaultMoveCatalog()
	require.NoError(t, err)
	return New(model.NewBattleState(combatants...), moves, data.DefaultTypeChart())
}

// script builds a replay context from purpose/value pairs.
func script(pairs ...any) *rng.Replay {
	events := make([]rng.Event, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		events = append(events, rng.Event{Purpose: pairs[i].(rng.Purpose), Value: pairs[i+1].(int)})
	}
	return rng.NewReplay(events)
}

// hit is the draw sequence of a non-critical damaging hit.
func hit(roll int) []any {
	return []any{rng.PurposeAccuracyRoll, 1, rng.PurposeCriticalRoll, 16, rng.PurposeDamageRoll, roll}
}

func concat(parts ...[]any) []any {
	var out []any
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func eventKinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind()
	}
	return out
}

func purposes(events []rng.Event) []rng.Purpose {
	out := make([]rng.Purpose, len(events))
	for i, ev := range events {
		out[i] = ev.Purpose
	}
	return out
}
