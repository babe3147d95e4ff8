package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/turnbattle/internal/model"
)

// TriggerTiming says when a trigger request is evaluated.
type TriggerTiming string

const (
	TimingOnDamage   TriggerTiming = "ON_DAMAGE"
	TimingOnHeal     TriggerTiming = "ON_HEAL"
	TimingTurnEnd    TriggerTiming = "TURN_END"
	TimingOnSwitchIn TriggerTiming = "ON_SWITCH_IN"
	TimingBeforeMove TriggerTiming = "BEFORE_MOVE"
	TimingAfterMove  TriggerTiming = "AFTER_MOVE"
)

// TriggerRequest asks the trigger system to evaluate reactions of the
// listed subjects only.
type TriggerRequest struct {
	Timing   TriggerTiming
	Subjects []model.CombatantID
	Cause    Effect
	CauseID  string
}

// TriggerResult holds what a request produced.
type TriggerResult struct {
	Events  []Event
	Effects []Effect
}

type guardKey struct {
	causeID   string
	subject   model.CombatantID
	triggerID string
}

// TriggerGuard records which (cause, subject, trigger) keys have fired.
// A key fires at most once for the guard's lifetime, which is the whole
// battle session; this is what bounds trigger cascades.
type TriggerGuard struct {
	fired map[guardKey]struct{}
}

// NewTriggerGuard creates an empty guard.
func NewTriggerGuard() *TriggerGuard {
	return &TriggerGuard{fired: make(map[guardKey]struct{})}
}

// HasFired reports whether the key has already fired.
func (g *TriggerGuard) HasFired(causeID string, subject model.CombatantID, triggerID string) bool {
	_, ok := g.fired[guardKey{causeID, subject, triggerID}]
	return ok
}

// MarkFired records the key permanently.
func (g *TriggerGuard) MarkFired(causeID string, subject model.CombatantID, triggerID string) {
	g.fired[guardKey{causeID, subject, triggerID}] = struct{}{}
}

// Len returns the number of keys that have fired.
func (g *TriggerGuard) Len() int { return len(g.fired) }

// ItemReaction is a held-item trigger. Condition is checked after the item
// match; HealAmount is the hp the reaction restores before the item is
// consumed.
//
// A reaction must only produce effects whose ids derive from the causing
// effect id, otherwise the guard cannot bound the cascade.
type ItemReaction struct {
	Timing     TriggerTiming
	Condition  func(c *model.Combatant) bool
	HealAmount func(c *model.Combatant) int
}

// itemReactions maps held item id -> reaction.
var itemReactions = map[string]ItemReaction{}

// RegisterItemReaction registers a reaction for a held item id.
func RegisterItemReaction(item string, r ItemReaction) {
	itemReactions[item] = r
}

// AtOrBelowHalfHP is true when hp <= maxHp/2 (exact, no rounding).
func AtOrBelowHalfHP(c *model.Combatant) bool {
	return 2*c.HP <= c.MaxHP
}

func init() {
	RegisterItemReaction("oranBerry", ItemReaction{
		Timing:     TimingOnDamage,
		Condition:  AtOrBelowHalfHP,
		HealAmount: func(*model.Combatant) int { return 10 },
	})
	RegisterItemReaction("sitrusBerry", ItemReaction{
		Timing:     TimingOnDamage,
		Condition:  AtOrBelowHalfHP,
		HealAmount: func(c *model.Combatant) int { return c.MaxHP / 4 },
	})
}

// EvaluateTrigger runs one request against the session state and guard.
func (b *Battle) EvaluateTrigger(req TriggerRequest) TriggerResult {
	var res TriggerResult
	for _, id := range req.Subjects {
		c := b.state.Combatant(id)
		if c == nil || c.IsFainted() {
			continue
		}
		switch req.Timing {
		case TimingOnDamage:
			b.evaluateHeldItem(c, req, &res)
		default:
			// Other timings have no reactions yet.
		}
	}
	return res
}

func (b *Battle) evaluateHeldItem(c *model.Combatant, req TriggerRequest, res *TriggerResult) {
	item := c.HeldItem
	if item == "" {
		return
	}
	r, ok := itemReactions[item]
	if !ok || r.Timing != req.Timing {
		return
	}
	if !r.Condition(c) {
		return
	}
	if b.guard.HasFired(req.CauseID, c.ID, item) {
		return
	}
	b.guard.MarkFired(req.CauseID, c.ID, item)

	slog.Debug("item reaction fired", "combatant", c.ID, "item", item, "cause", req.CauseID)

	res.Events = append(res.Events, ItemActivatedEvent{Combatant: c.ID, Item: item})
	res.Effects = append(res.Effects,
		Heal{
			ID:     fmt.Sprintf("%s/%s/heal/%d", req.CauseID, item, c.ID),
			Target: c.ID,
			Amount: r.HealAmount(c),
		},
		ConsumeItem{
			ID:     fmt.Sprintf("%s/%s/consume/%d", req.CauseID, item, c.ID),
			Target: c.ID,
			Item:   item,
		},
	)
}
