// Package replay records battles and verifies that a recorded rng log
// reproduces them exactly.
package replay

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/turnbattle/internal/game/battle"
	"github.com/udisondev/turnbattle/internal/game/damage"
	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// ErrDiverged is returned when a replay does not reproduce its recording.
var ErrDiverged = errors.New("replay diverged from recording")

// Deps is the reference data a battle runs against. A replay must use the
// same data as the recording.
type Deps struct {
	Moves battle.MoveLookup
	Chart damage.TypeChart
}

// Recording is everything needed to replay one battle and check the result.
type Recording struct {
	Seed        int64              `json:"seed"`
	Initial     *model.BattleState `json:"initial"`
	Plans       []battle.TurnPlan  `json:"plans"`
	Rng         []rng.Event        `json:"rng"`
	Events      []battle.Event     `json:"-"`
	Final       *model.BattleState `json:"final"`
	Fingerprint string             `json:"fingerprint"`
}

// Turns returns the number of executed turns.
func (r *Recording) Turns() int { return len(r.Plans) }

// Winner returns the last combatant standing in the final state.
func (r *Recording) Winner() (model.CombatantID, bool) {
	living := r.Final.Living()
	if len(living) != 1 {
		return 0, false
	}
	return living[0], true
}

// Record plays plans from initial with a Live context seeded by seed.
// initial is not modified. Play stops early once the battle is decided;
// Plans holds only the turns that ran.
func Record(initial *model.BattleState, plans []battle.TurnPlan, seed int64, deps Deps) (*Recording, error) {
	live := rng.NewLive(seed)
	state := initial.Clone()
	b := battle.New(state, deps.Moves, deps.Chart)

	rec := &Recording{
		Seed:    seed,
		Initial: initial.Clone(),
	}
	for i, p := range plans {
		if b.Finished() {
			break
		}
		res, err := b.ExecuteTurn(p, live)
		if err != nil {
			return nil, fmt.Errorf("recording turn %d: %w", i+1, err)
		}
		rec.Plans = append(rec.Plans, p)
		rec.Events = append(rec.Events, res.Events...)
	}

	fp, err := Fingerprint(rec.Events)
	if err != nil {
		return nil, fmt.Errorf("recording: %w", err)
	}
	rec.Rng = live.Log()
	rec.Final = state
	rec.Fingerprint = fp

	slog.Debug("battle recorded",
		"seed", seed,
		"turns", rec.Turns(),
		"draws", len(rec.Rng),
		"events", len(rec.Events),
		"fingerprint", fp,
	)
	return rec, nil
}

// Verify replays rec against a fresh copy of its initial state and checks
// that the event stream, the final state and the rng log all match.
func Verify(rec *Recording, deps Deps) error {
	replay := rng.NewReplay(rec.Rng)
	state := rec.Initial.Clone()
	b := battle.New(state, deps.Moves, deps.Chart)

	var events []battle.Event
	for i, p := range rec.Plans {
		res, err := b.ExecuteTurn(p, replay)
		if err != nil {
			return fmt.Errorf("replaying turn %d: %w", i+1, err)
		}
		events = append(events, res.Events...)
	}

	if n := replay.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d unused rng draws", ErrDiverged, n)
	}
	fp, err := Fingerprint(events)
	if err != nil {
		return fmt.Errorf("replaying: %w", err)
	}
	if fp != rec.Fingerprint {
		return fmt.Errorf("%w: fingerprint %s, recorded %s", ErrDiverged, fp, rec.Fingerprint)
	}
	if !reflect.DeepEqual(state, rec.Final) {
		return fmt.Errorf("%w: final state differs", ErrDiverged)
	}
	return nil
}

// Fingerprint is the hex BLAKE2b-256 digest of the JSON-encoded events.
func Fingerprint(events []battle.Event) (string, error) {
	raw, err := battle.MarshalEvents(events)
	if err != nil {
		return "", fmt.Errorf("fingerprinting events: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
