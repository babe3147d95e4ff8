package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/turnbattle/internal/game/damage"
	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// ApplyResult is what one applied effect produced.
type ApplyResult struct {
	Events          []Event
	RngEvents       []rng.Event
	TriggerRequests []TriggerRequest
	DerivedEffects  []Effect
}

// ApplyEffect applies eff to target. This is the only place a combatant is
// mutated. Draws made while applying are returned in RngEvents.
//
// Data no-ops (unknown move, nobody to hit, fainted heal target, duplicate
// status, item mismatch) return a result without error. Unknown effect variants, a
// target that is not eff's subject, negative amounts and rng failures are
// returned as errors.
func (b *Battle) ApplyEffect(target *model.Combatant, eff Effect, rc rng.Context) (ApplyResult, error) {
	var res ApplyResult
	if target == nil || target.ID != eff.Subject() {
		return res, fmt.Errorf("apply %s %q: %w", eff.Kind(), eff.EffectID(), ErrTargetMismatch)
	}

	var err error
	switch e := eff.(type) {
	case UseMove:
		err = b.applyUseMove(target, e, rc, &res)
	case ApplyDamage:
		err = applyDamage(target, e, &res)
	case Heal:
		err = applyHeal(target, e, &res)
	case SetStatus:
		applySetStatus(target, e, &res)
	case ConsumeItem:
		applyConsumeItem(target, e, &res)
	default:
		err = fmt.Errorf("apply %T: %w", eff, ErrUnknownEffect)
	}
	return res, err
}

func (b *Battle) applyUseMove(user *model.Combatant, e UseMove, rc rng.Context, res *ApplyResult) error {
	// Knocked out earlier in the turn.
	if user.IsFainted() {
		return nil
	}

	res.Events = append(res.Events, UseMoveEvent{Combatant: user.ID, MoveID: e.MoveID})

	move, ok := b.moves.Move(e.MoveID)
	if !ok {
		slog.Debug("unknown move, skipping", "combatant", user.ID, "move", e.MoveID)
		return nil
	}
	defender := b.opponentOf(user.ID)
	if defender == nil {
		return nil
	}

	draw := func(p rng.Purpose) (int, error) {
		v, err := rc.Draw(p)
		if err != nil {
			return 0, fmt.Errorf("use move %q: %w", e.ID, err)
		}
		res.RngEvents = append(res.RngEvents, rng.Event{Purpose: p, Value: v})
		return v, nil
	}

	acc, err := draw(rng.PurposeAccuracyRoll)
	if err != nil {
		return err
	}
	if !move.AlwaysHits() && acc > *move.Accuracy {
		res.Events = append(res.Events, MoveMissedEvent{Combatant: user.ID, Target: defender.ID, MoveID: move.ID})
		return nil
	}

	crit, err := draw(rng.PurposeCriticalRoll)
	if err != nil {
		return err
	}
	isCrit := crit == 1
	if isCrit {
		res.Events = append(res.Events, CriticalHitEvent{Combatant: user.ID, Target: defender.ID})
	}

	if !move.IsDamaging() {
		return nil
	}

	roll, err := draw(rng.PurposeDamageRoll)
	if err != nil {
		return err
	}
	out := damage.Compute(damage.Params{
		Attacker:   user,
		Defender:   defender,
		Move:       move,
		IsCritical: isCrit,
		Weather:    model.WeatherNone,
		RandomRoll: roll,
	}, b.chart)

	slog.Debug("damage computed",
		"attacker", user.ID,
		"defender", defender.ID,
		"move", move.ID,
		"roll", roll,
		"crit", isCrit,
		"effectiveness", out.Effectiveness,
		"stab", out.STAB,
		"damage", out.Damage,
	)

	res.DerivedEffects = append(res.DerivedEffects, ApplyDamage{
		ID:     e.ID + "/damage",
		Target: defender.ID,
		Amount: out.Damage,
	})
	return nil
}

func applyDamage(target *model.Combatant, e ApplyDamage, res *ApplyResult) error {
	if e.Amount < 0 {
		return fmt.Errorf("apply damage %q: %d: %w", e.ID, e.Amount, ErrInvalidAmount)
	}
	before := target.HP
	actual := min(e.Amount, before)
	target.HP = max(0, before-e.Amount)

	res.Events = append(res.Events, DamageDealtEvent{
		Target:       target.ID,
		Amount:       actual,
		NewHP:        target.HP,
		NewHPPercent: target.HPPercent(),
	})

	switch {
	case before > 0 && target.HP == 0:
		res.Events = append(res.Events, FaintedEvent{Combatant: target.ID})
	case target.HP > 0:
		res.TriggerRequests = append(res.TriggerRequests, TriggerRequest{
			Timing:   TimingOnDamage,
			Subjects: []model.CombatantID{target.ID},
			Cause:    e,
			CauseID:  e.ID,
		})
	}
	return nil
}

func applyHeal(target *model.Combatant, e Heal, res *ApplyResult) error {
	if e.Amount < 0 {
		return fmt.Errorf("apply heal %q: %d: %w", e.ID, e.Amount, ErrInvalidAmount)
	}
	// No revival.
	if target.IsFainted() {
		return nil
	}
	actual := min(e.Amount, target.MaxHP-target.HP)
	target.HP += actual
	res.Events = append(res.Events, HealedEvent{Combatant: target.ID, Amount: actual, NewHP: target.HP})
	return nil
}

func applySetStatus(target *model.Combatant, e SetStatus, res *ApplyResult) {
	if target.Status != model.StatusNone || e.Status == model.StatusNone {
		return
	}
	target.Status = e.Status
	res.Events = append(res.Events, StatusInflictedEvent{Target: target.ID, Status: e.Status})
}

func applyConsumeItem(target *model.Combatant, e ConsumeItem, res *ApplyResult) {
	if target.HeldItem == "" || target.HeldItem != e.Item {
		return
	}
	target.HeldItem = ""
	res.Events = append(res.Events, ItemConsumedEvent{Combatant: target.ID, Item: e.Item})
}
