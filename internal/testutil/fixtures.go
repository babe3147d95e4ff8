package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/game/battle"
	"github.com/udisondev/turnbattle/internal/model"
)

// Catalog возвращает встроенный каталог приёмов.
func Catalog(tb testing.TB) *data.MoveCatalog {
	tb.Helper()

	moves, err := data.DefaultMoveCatalog()
	require.NoError(tb, err)
	return moves
}

// Duel собирает состояние боя из двух записей встроенного ростера.
// Бойцы получают id 1 и 2.
func Duel(tb testing.TB, first, second int) *model.BattleState {
	tb.Helper()

	roster, err := data.DefaultRoster()
	require.NoError(tb, err)
	return model.NewBattleState(roster.Field(first, 1), roster.Field(second, 2))
}

// FirstMovePlans строит n ходов, в которых каждый боец использует свой
// первый приём.
func FirstMovePlans(state *model.BattleState, n int) []battle.TurnPlan {
	plans := make([]battle.TurnPlan, n)
	for i := range plans {
		for _, id := range state.IDs() {
			c := state.Combatant(id)
			plans[i].Actions = append(plans[i].Actions, battle.UseMoveAction(id, c.Moves[0]))
		}
	}
	return plans
}
