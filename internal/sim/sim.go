// Package sim runs batches of independent battles for the simulator host.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/turnbattle/internal/config"
	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/game/battle"
	"github.com/udisondev/turnbattle/internal/game/replay"
	"github.com/udisondev/turnbattle/internal/model"
	"github.com/udisondev/turnbattle/internal/random"
)

// Store persists finished recordings.
type Store interface {
	Save(ctx context.Context, rec *replay.Recording) (uuid.UUID, error)
}

// Outcome is the result of one simulated battle.
type Outcome struct {
	Index     int
	ID        uuid.UUID // uuid.Nil when no store is configured
	Recording *replay.Recording
}

// Runner plays cfg.Battles battles on up to cfg.Workers goroutines.
// Each battle owns its state, guard and rng context; nothing is shared
// between workers except read-only reference data.
type Runner struct {
	cfg    config.Simulator
	roster *data.Roster
	deps   replay.Deps
	store  Store
}

// NewRunner creates a Runner. store may be nil.
func NewRunner(cfg config.Simulator, roster *data.Roster, deps replay.Deps, store Store) *Runner {
	return &Runner{cfg: cfg, roster: roster, deps: deps, store: store}
}

// Run plays all battles. The first failure cancels the remaining ones.
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, r.cfg.Battles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := range r.cfg.Battles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.runOne(gctx, i)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *Runner) runOne(ctx context.Context, i int) (Outcome, error) {
	seed, err := r.seedFor(i)
	if err != nil {
		return Outcome{}, err
	}

	first, second := Pairing(i, len(r.roster.Combatants))
	initial := model.NewBattleState(r.roster.Field(first, 1), r.roster.Field(second, 2))
	plans := CyclePlans(initial, r.cfg.MaxTurns)

	rec, err := replay.Record(initial, plans, seed, r.deps)
	if err != nil {
		return Outcome{}, fmt.Errorf("recording: %w", err)
	}

	if r.cfg.VerifyReplay {
		if err := replay.Verify(rec, r.deps); err != nil {
			return Outcome{}, fmt.Errorf("verifying: %w", err)
		}
	}

	out := Outcome{Index: i, Recording: rec}
	if r.store != nil {
		id, err := r.store.Save(ctx, rec)
		if err != nil {
			return Outcome{}, fmt.Errorf("saving: %w", err)
		}
		out.ID = id
	}

	winner, decided := rec.Winner()
	slog.Info("battle finished",
		"battle", i,
		"seed", seed,
		"combatants", [2]string{initial.Combatant(1).Name, initial.Combatant(2).Name},
		"turns", rec.Turns(),
		"decided", decided,
		"winner", winner,
		"fingerprint", rec.Fingerprint,
	)
	return out, nil
}

func (r *Runner) seedFor(i int) (int64, error) {
	if r.cfg.Seed != 0 {
		return r.cfg.Seed + int64(i), nil
	}
	return random.NewSeed()
}

// Pairing picks two distinct roster entries for battle i. With a roster
// of one, the entry fights a copy of itself.
func Pairing(i, n int) (int, int) {
	first := i % n
	if n < 2 {
		return first, first
	}
	second := (first + 1 + (i/n)%(n-1)) % n
	return first, second
}

// CyclePlans builds turns plans in which every combatant cycles through
// its known moves in order.
func CyclePlans(state *model.BattleState, turns int) []battle.TurnPlan {
	plans := make([]battle.TurnPlan, turns)
	for t := range plans {
		for _, id := range state.IDs() {
			c := state.Combatant(id)
			if len(c.Moves) == 0 {
				continue
			}
			plans[t].Actions = append(plans[t].Actions, battle.UseMoveAction(id, c.Moves[t%len(c.Moves)]))
		}
	}
	return plans
}
