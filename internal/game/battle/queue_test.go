package battle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// traceApply records the id of every applied effect as a UseMoveEvent and
// returns the derived effects configured for it.
func traceApply(derived map[string][]Effect) applyFunc {
	return func(target *model.Combatant, eff Effect, _ rng.Context) (ApplyResult, error) {
		return ApplyResult{
			Events:         []Event{UseMoveEvent{Combatant: target.ID, MoveID: eff.EffectID()}},
			DerivedEffects: derived[eff.EffectID()],
		}, nil
	}
}

func tracedIDs(events []Event) []string {
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.(UseMoveEvent).MoveID)
	}
	return ids
}

func mark(id string) Effect { return Heal{ID: id, Target: 1} }

func TestRunQueue_DerivedBeforeSiblings(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100))
	derived := map[string][]Effect{
		"a":  {mark("a1"), mark("a2")},
		"a1": {mark("a1x")},
		"b":  {mark("b1")},
	}

	res, err := b.runQueue([]Effect{mark("a"), mark("b"), mark("c")}, script(), traceApply(derived))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b", "b1", "c"}, tracedIDs(res.Events))
}

func TestRunQueue_TriggeredAfterQueuedSiblings(t *testing.T) {
	berry := newCombatant(2, 100)
	berry.HP, berry.HeldItem = 110, "sitrusBerry"
	b := newTestBattle(t, newCombatant(1, 100), berry)

	res, err := b.RunQueue([]Effect{
		ApplyDamage{ID: "d1", Target: 2, Amount: 20},
		ApplyDamage{ID: "d2", Target: 1, Amount: 5},
	}, script())
	require.NoError(t, err)

	assert.Equal(t, []Event{
		DamageDealtEvent{Target: 2, Amount: 20, NewHP: 90, NewHPPercent: 45},
		ItemActivatedEvent{Combatant: 2, Item: "sitrusBerry"},
		DamageDealtEvent{Target: 1, Amount: 5, NewHP: 195, NewHPPercent: 97.5},
		HealedEvent{Combatant: 2, Amount: 50, NewHP: 140},
		ItemConsumedEvent{Combatant: 2, Item: "sitrusBerry"},
	}, res.Events)
}

func TestRunQueue_BerryScenario(t *testing.T) {
	berry := newCombatant(2, 100)
	berry.HP, berry.HeldItem = 110, "sitrusBerry"
	b := newTestBattle(t, newCombatant(1, 100), berry)

	res, err := b.RunQueue([]Effect{ApplyDamage{ID: "hit-1", Target: 2, Amount: 20}}, script())
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventDamageDealt, EventItemActivated, EventHealed, EventItemConsumed}, eventKinds(res.Events))
	assert.Equal(t, 140, berry.HP)
	assert.Empty(t, berry.HeldItem)

	res, err = b.RunQueue([]Effect{ApplyDamage{ID: "hit-2", Target: 2, Amount: 60}}, script())
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventDamageDealt}, eventKinds(res.Events))
	assert.Equal(t, 80, berry.HP)
}

func TestRunQueue_GuardSurvivesAcrossRuns(t *testing.T) {
	berry := newCombatant(2, 100)
	berry.HP, berry.HeldItem = 60, "oranBerry"
	b := newTestBattle(t, newCombatant(1, 100), berry)

	_, err := b.RunQueue([]Effect{ApplyDamage{ID: "hit", Target: 2, Amount: 10}}, script())
	require.NoError(t, err)
	assert.Equal(t, 60, berry.HP)

	// Same cause id again with the item handed back: the key already fired.
	berry.HeldItem = "oranBerry"
	res, err := b.RunQueue([]Effect{ApplyDamage{ID: "hit", Target: 2, Amount: 10}}, script())
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventDamageDealt}, eventKinds(res.Events))
	assert.Equal(t, "oranBerry", berry.HeldItem)
}

func TestRunQueue_FaintSuppressesTriggers(t *testing.T) {
	berry := newCombatant(2, 100)
	berry.HP, berry.HeldItem = 30, "oranBerry"
	b := newTestBattle(t, newCombatant(1, 100), berry)

	res, err := b.RunQueue([]Effect{ApplyDamage{ID: "ko", Target: 2, Amount: 30}}, script())
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventDamageDealt, EventFainted}, eventKinds(res.Events))
	assert.Equal(t, "oranBerry", berry.HeldItem)
	assert.Zero(t, b.Guard().Len())
}

func TestRunQueue_UseMoveCascade(t *testing.T) {
	foe := newCombatant(2, 100)
	foe.HP, foe.HeldItem = 110, "oranBerry"
	b := newTestBattle(t, newCombatant(1, 100), foe)

	res, err := b.RunQueue([]Effect{UseMove{ID: "m", User: 1, MoveID: "tackle"}}, script(hit(100)...))
	require.NoError(t, err)

	assert.Equal(t, []Event{
		UseMoveEvent{Combatant: 1, MoveID: "tackle"},
		DamageDealtEvent{Target: 2, Amount: 19, NewHP: 91, NewHPPercent: 45.5},
		ItemActivatedEvent{Combatant: 2, Item: "oranBerry"},
		HealedEvent{Combatant: 2, Amount: 10, NewHP: 101},
		ItemConsumedEvent{Combatant: 2, Item: "oranBerry"},
	}, res.Events)
	assert.Len(t, res.RngEvents, 3)
	assert.True(t, b.Guard().HasFired("m/damage", 2, "oranBerry"))
}

func TestRunQueue_MissingTarget(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100))

	_, err := b.RunQueue([]Effect{ApplyDamage{ID: "d", Target: 9, Amount: 1}}, script())
	require.ErrorIs(t, err, ErrCombatantNotFound)
}

func TestRunQueue_StopsOnApplyError(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100))
	boom := errors.New("boom")
	calls := 0
	apply := func(*model.Combatant, Effect, rng.Context) (ApplyResult, error) {
		calls++
		return ApplyResult{}, boom
	}

	_, err := b.runQueue([]Effect{mark("a"), mark("b")}, script(), apply)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
