package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

func plan(actions ...Action) TurnPlan { return TurnPlan{Actions: actions} }

func TestExecuteTurn_SpeedOrder(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 50), newCombatant(2, 100))

	res, err := b.ExecuteTurn(plan(
		UseMoveAction(1, "tackle"),
		UseMoveAction(2, "tackle"),
	), script(concat(hit(100), hit(100))...))
	require.NoError(t, err)

	assert.Equal(t, []Event{
		TurnStartEvent{TurnNumber: 1},
		UseMoveEvent{Combatant: 2, MoveID: "tackle"},
		DamageDealtEvent{Target: 1, Amount: 19, NewHP: 181, NewHPPercent: 90.5},
		UseMoveEvent{Combatant: 1, MoveID: "tackle"},
		DamageDealtEvent{Target: 2, Amount: 19, NewHP: 181, NewHPPercent: 90.5},
	}, res.Events)
	assert.Len(t, res.RngEvents, 6)
	assert.Equal(t, 1, b.State().TurnNumber)
}

func TestExecuteTurn_PriorityBeatsSpeed(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 10), newCombatant(2, 100))

	res, err := b.ExecuteTurn(plan(
		UseMoveAction(1, "aqua_jet"),
		UseMoveAction(2, "tackle"),
	), script(concat(hit(100), hit(100))...))
	require.NoError(t, err)

	kinds := eventKinds(res.Events)
	require.Equal(t, []EventKind{EventTurnStart, EventUseMove, EventDamageDealt, EventUseMove, EventDamageDealt}, kinds)
	assert.Equal(t, UseMoveEvent{Combatant: 1, MoveID: "aqua_jet"}, res.Events[1])
}

func TestExecuteTurn_SpeedTieOrder(t *testing.T) {
	tests := []struct {
		name  string
		tie   int
		first model.CombatantID
	}{
		{"zero keeps id order", 0, 1},
		{"one reverses", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBattle(t, newCombatant(1, 80), newCombatant(2, 80))
			draws := concat([]any{rng.PurposeSpeedTie, tt.tie}, hit(100), hit(100))

			res, err := b.ExecuteTurn(plan(
				UseMoveAction(2, "tackle"),
				UseMoveAction(1, "tackle"),
			), script(draws...))
			require.NoError(t, err)

			assert.Equal(t, UseMoveEvent{Combatant: tt.first, MoveID: "tackle"}, res.Events[1])
			assert.Equal(t, rng.Event{Purpose: rng.PurposeSpeedTie, Value: tt.tie}, res.RngEvents[0])
		})
	}
}

func TestExecuteTurn_FaintedActionsExcluded(t *testing.T) {
	down := newCombatant(2, 200)
	down.HP = 0
	b := newTestBattle(t, newCombatant(1, 50), down, newCombatant(3, 50))

	res, err := b.ExecuteTurn(plan(
		UseMoveAction(1, "tackle"),
		UseMoveAction(2, "tackle"),
	), script(hit(100)...))
	require.NoError(t, err)

	assert.Equal(t, []Event{
		TurnStartEvent{TurnNumber: 1},
		UseMoveEvent{Combatant: 1, MoveID: "tackle"},
		DamageDealtEvent{Target: 3, Amount: 19, NewHP: 181, NewHPPercent: 90.5},
	}, res.Events)
}

func TestExecuteTurn_KnockedOutBeforeActing(t *testing.T) {
	slow := newCombatant(2, 10)
	slow.HP = 10
	b := newTestBattle(t, newCombatant(1, 100), slow)

	res, err := b.ExecuteTurn(plan(
		UseMoveAction(1, "tackle"),
		UseMoveAction(2, "tackle"),
	), script(hit(100)...))
	require.NoError(t, err)

	assert.Equal(t, []Event{
		TurnStartEvent{TurnNumber: 1},
		UseMoveEvent{Combatant: 1, MoveID: "tackle"},
		DamageDealtEvent{Target: 2, Amount: 10, NewHP: 0, NewHPPercent: 0},
		FaintedEvent{Combatant: 2},
	}, res.Events)
	assert.True(t, b.Finished())
	winner, ok := b.Winner()
	require.True(t, ok)
	assert.Equal(t, model.CombatantID(1), winner)
}

func TestExecuteTurn_PlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		plan    TurnPlan
		wantErr error
	}{
		{"switch", plan(UseMoveAction(1, "tackle"), Action{Kind: ActionSwitch, Combatant: 2, SwitchTo: 3}), ErrSwitchNotImplemented},
		{"unknown kind", plan(Action{Kind: "flee", Combatant: 1}), ErrUnknownAction},
		{"missing combatant", plan(UseMoveAction(7, "tackle")), ErrCombatantNotFound},
		{"duplicate", plan(UseMoveAction(1, "tackle"), UseMoveAction(1, "tackle")), ErrDuplicateAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBattle(t, newCombatant(1, 100), newCombatant(2, 100))

			res, err := b.ExecuteTurn(tt.plan, script())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, res.Events)
			assert.Zero(t, b.State().TurnNumber, "rejected plan leaves state untouched")
		})
	}
}

func TestExecuteTurn_NilContext(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100), newCombatant(2, 90))

	res, err := b.ExecuteTurn(plan(UseMoveAction(1, "tackle"), UseMoveAction(2, "tackle")), nil)
	require.NoError(t, err)
	assert.Equal(t, TurnStartEvent{TurnNumber: 1}, res.Events[0])
	assert.NotEmpty(t, res.RngEvents)
}

func TestExecuteTurn_EmptyPlan(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100))

	res, err := b.ExecuteTurn(plan(), script())
	require.NoError(t, err)
	assert.Equal(t, []Event{TurnStartEvent{TurnNumber: 1}}, res.Events)
	assert.Empty(t, res.RngEvents)
}

func TestOrderActions_OneDrawPerTiedGroup(t *testing.T) {
	tests := []struct {
		name      string
		speeds    []int
		wantDraws int
	}{
		{"no tie", []int{100, 90, 80}, 0},
		{"two way", []int{100, 100}, 1},
		{"three way", []int{100, 100, 100}, 1},
		{"six way", []int{70, 70, 70, 70, 70, 70}, 1},
		{"two groups", []int{100, 100, 50, 50, 50}, 2},
		{"tie below a leader", []int{120, 60, 60}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cs []*model.Combatant
			var actions []Action
			for i, s := range tt.speeds {
				id := model.CombatantID(i + 1)
				cs = append(cs, newCombatant(id, s))
				actions = append(actions, UseMoveAction(id, "tackle"))
			}
			b := newTestBattle(t, cs...)
			live := rng.NewLive(7)

			ordered, draws, err := b.orderActions(actions, live)
			require.NoError(t, err)
			assert.Len(t, ordered, len(actions))
			assert.Len(t, draws, tt.wantDraws)
			assert.Len(t, live.Log(), tt.wantDraws)
			for _, d := range draws {
				assert.Equal(t, rng.PurposeSpeedTie, d.Purpose)
			}
		})
	}
}

func TestOrderActions_ReversesWholeGroup(t *testing.T) {
	b := newTestBattle(t,
		newCombatant(1, 60), newCombatant(2, 60), newCombatant(3, 60), newCombatant(4, 90))
	actions := []Action{
		UseMoveAction(3, "tackle"),
		UseMoveAction(1, "tackle"),
		UseMoveAction(4, "tackle"),
		UseMoveAction(2, "tackle"),
	}

	ids := func(as []Action) []model.CombatantID {
		out := make([]model.CombatantID, len(as))
		for i, a := range as {
			out[i] = a.Combatant
		}
		return out
	}

	keep, _, err := b.orderActions(actions, script(rng.PurposeSpeedTie, 0))
	require.NoError(t, err)
	assert.Equal(t, []model.CombatantID{4, 1, 2, 3}, ids(keep))

	rev, _, err := b.orderActions(actions, script(rng.PurposeSpeedTie, 1))
	require.NoError(t, err)
	assert.Equal(t, []model.CombatantID{4, 3, 2, 1}, ids(rev))
}

func TestOrderActions_UnknownMoveSortsAsPriorityZero(t *testing.T) {
	b := newTestBattle(t, newCombatant(1, 100), newCombatant(2, 10))

	ordered, _, err := b.orderActions([]Action{
		UseMoveAction(1, "splash"),
		UseMoveAction(2, "aqua_jet"),
	}, script())
	require.NoError(t, err)
	assert.Equal(t, model.CombatantID(2), ordered[0].Combatant)
	assert.Equal(t, model.CombatantID(1), ordered[1].Combatant)
}

func TestExecuteTurn_ReplayReproducesLiveRun(t *testing.T) {
	build := func() *model.BattleState {
		a := newCombatant(1, 80, model.TypeGround, model.TypeDragon)
		a.Moves = []string{"earthquake", "stone_edge"}
		d := newCombatant(2, 80, model.TypeWater)
		d.HeldItem = "sitrusBerry"
		d.Moves = []string{"ice_beam", "hydro_pump"}
		return model.NewBattleState(a, d)
	}
	plans := []TurnPlan{
		plan(UseMoveAction(1, "earthquake"), UseMoveAction(2, "ice_beam")),
		plan(UseMoveAction(1, "stone_edge"), UseMoveAction(2, "hydro_pump")),
		plan(UseMoveAction(1, "earthquake"), UseMoveAction(2, "hydro_pump")),
		plan(UseMoveAction(1, "earthquake"), UseMoveAction(2, "ice_beam")),
	}

	run := func(state *model.BattleState, rc rng.Context) []Event {
		b := newTestBattle(t)
		b.state = state
		var events []Event
		for _, p := range plans {
			res, err := b.ExecuteTurn(p, rc)
			require.NoError(t, err)
			events = append(events, res.Events...)
		}
		return events
	}

	liveState := build()
	live := rng.NewLive(20240611)
	liveEvents := run(liveState, live)

	replayState := build()
	replay := rng.NewReplay(live.Log())
	replayEvents := run(replayState, replay)

	assert.Equal(t, liveEvents, replayEvents)
	assert.Equal(t, liveState, replayState)
	assert.Zero(t, replay.Remaining())
}
