package battle

import (
	"fmt"
	"log/slog"

	"github.com/gammazero/deque"

	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// QueueResult is the ordered output of one queue run.
type QueueResult struct {
	Events    []Event
	RngEvents []rng.Event
}

type applyFunc func(target *model.Combatant, eff Effect, rc rng.Context) (ApplyResult, error)

// RunQueue resolves effects and everything they cascade into.
//
// Derived effects go to the front of the immediate lane so a cascade
// finishes before any waiting sibling. Triggered effects go to the back.
// The deferred lane is drained after the immediate one; nothing schedules
// into it yet.
func (b *Battle) RunQueue(effects []Effect, rc rng.Context) (QueueResult, error) {
	return b.runQueue(effects, rc, b.ApplyEffect)
}

func (b *Battle) runQueue(effects []Effect, rc rng.Context, apply applyFunc) (QueueResult, error) {
	var (
		res       QueueResult
		immediate deque.Deque[Effect]
		deferred  deque.Deque[Effect]
	)
	for _, eff := range effects {
		immediate.PushBack(eff)
	}

	for immediate.Len() > 0 || deferred.Len() > 0 {
		var eff Effect
		if immediate.Len() > 0 {
			eff = immediate.PopFront()
		} else {
			eff = deferred.PopFront()
		}

		target := b.state.Combatant(eff.Subject())
		if target == nil {
			return res, fmt.Errorf("run queue: %s %q targets %d: %w",
				eff.Kind(), eff.EffectID(), eff.Subject(), ErrCombatantNotFound)
		}

		slog.Debug("queue step", "effect", eff.EffectID(), "kind", eff.Kind(), "subject", eff.Subject())

		out, err := apply(target, eff, rc)
		res.Events = append(res.Events, out.Events...)
		res.RngEvents = append(res.RngEvents, out.RngEvents...)
		if err != nil {
			return res, err
		}

		for i := len(out.DerivedEffects) - 1; i >= 0; i-- {
			immediate.PushFront(out.DerivedEffects[i])
		}

		for _, req := range out.TriggerRequests {
			tr := b.EvaluateTrigger(req)
			res.Events = append(res.Events, tr.Events...)
			for _, te := range tr.Effects {
				immediate.PushBack(te)
			}
		}
	}
	return res, nil
}
