package battle

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/udisondev/turnbattle/internal/game/rng"
	"github.com/udisondev/turnbattle/internal/model"
)

// ActionKind names a planned action.
type ActionKind string

const (
	ActionUseMove ActionKind = "useMove"
	ActionSwitch  ActionKind = "switch"
)

// Action is one combatant's choice for a turn.
type Action struct {
	Kind      ActionKind        `json:"kind" yaml:"kind"`
	Combatant model.CombatantID `json:"combatant" yaml:"combatant"`
	MoveID    string            `json:"moveId,omitempty" yaml:"move_id,omitempty"`
	SwitchTo  model.CombatantID `json:"switchTo,omitempty" yaml:"switch_to,omitempty"`
}

// UseMoveAction is a shorthand for a move action.
func UseMoveAction(c model.CombatantID, moveID string) Action {
	return Action{Kind: ActionUseMove, Combatant: c, MoveID: moveID}
}

// TurnPlan lists the actions chosen for one turn. Order in the plan does
// not affect execution order.
type TurnPlan struct {
	Actions []Action `json:"actions" yaml:"actions"`
}

// TurnResult is everything one turn produced, in order.
type TurnResult struct {
	Events    []Event
	RngEvents []rng.Event
}

// ExecuteTurn runs one turn: TurnStart, ActionExecution, TurnEnd.
// A nil rc gets a Live context with a random seed; its draws are still
// returned in RngEvents so the turn can be replayed.
//
// The plan is validated before anything is mutated. Errors after that
// point leave the state partially updated; restore from a snapshot.
func (b *Battle) ExecuteTurn(plan TurnPlan, rc rng.Context) (TurnResult, error) {
	var res TurnResult
	if rc == nil {
		live, err := rng.NewLiveRandom()
		if err != nil {
			return res, fmt.Errorf("execute turn: %w", err)
		}
		rc = live
	}

	if err := b.validatePlan(plan); err != nil {
		return res, fmt.Errorf("execute turn %d: %w", b.state.TurnNumber+1, err)
	}

	b.turnStart(&res)

	if err := b.executeActions(plan, rc, &res); err != nil {
		return res, fmt.Errorf("execute turn %d: %w", b.state.TurnNumber, err)
	}

	b.turnEnd(&res)
	return res, nil
}

func (b *Battle) validatePlan(plan TurnPlan) error {
	seen := make(map[model.CombatantID]struct{}, len(plan.Actions))
	for _, a := range plan.Actions {
		switch a.Kind {
		case ActionUseMove:
		case ActionSwitch:
			return fmt.Errorf("combatant %d: %w", a.Combatant, ErrSwitchNotImplemented)
		default:
			return fmt.Errorf("combatant %d: %q: %w", a.Combatant, a.Kind, ErrUnknownAction)
		}
		if b.state.Combatant(a.Combatant) == nil {
			return fmt.Errorf("action for %d: %w", a.Combatant, ErrCombatantNotFound)
		}
		if _, dup := seen[a.Combatant]; dup {
			return fmt.Errorf("combatant %d: %w", a.Combatant, ErrDuplicateAction)
		}
		seen[a.Combatant] = struct{}{}
	}
	return nil
}

func (b *Battle) turnStart(res *TurnResult) {
	b.state.TurnNumber++
	res.Events = append(res.Events, TurnStartEvent{TurnNumber: b.state.TurnNumber})
}

func (b *Battle) executeActions(plan TurnPlan, rc rng.Context, res *TurnResult) error {
	ordered, tieDraws, err := b.orderActions(plan.Actions, rc)
	res.RngEvents = append(res.RngEvents, tieDraws...)
	if err != nil {
		return err
	}

	// Each action gets its own queue pass so a reaction to the first
	// action resolves before the second action starts.
	for _, a := range ordered {
		eff := UseMove{
			ID:     fmt.Sprintf("use-move-%d-%d", a.Combatant, b.state.TurnNumber),
			User:   a.Combatant,
			MoveID: a.MoveID,
		}
		qr, err := b.RunQueue([]Effect{eff}, rc)
		res.Events = append(res.Events, qr.Events...)
		res.RngEvents = append(res.RngEvents, qr.RngEvents...)
		if err != nil {
			return err
		}
	}
	return nil
}

// turnEnd is where weather and status ticks go.
func (b *Battle) turnEnd(*TurnResult) {}

type rankedAction struct {
	action   Action
	priority int
	speed    int
}

func (r rankedAction) tiedWith(o rankedAction) bool {
	return r.priority == o.priority && r.speed == o.speed
}

// orderActions drops actions of fainted combatants and sorts the rest by
// move priority then speed, both descending. Each maximal group tied on
// both keys consumes exactly one speedTie draw: 0 keeps ascending id
// order, 1 reverses it.
func (b *Battle) orderActions(actions []Action, rc rng.Context) ([]Action, []rng.Event, error) {
	ranked := make([]rankedAction, 0, len(actions))
	for _, a := range actions {
		c := b.state.Combatant(a.Combatant)
		if c == nil || c.IsFainted() {
			continue
		}
		r := rankedAction{action: a, speed: c.Stats.Speed}
		if m, ok := b.moves.Move(a.MoveID); ok {
			r.priority = m.Priority
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i], ranked[j]
		if ri.priority != rj.priority {
			return ri.priority > rj.priority
		}
		if ri.speed != rj.speed {
			return ri.speed > rj.speed
		}
		return ri.action.Combatant < rj.action.Combatant
	})

	var draws []rng.Event
	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && ranked[end].tiedWith(ranked[start]) {
			end++
		}
		if end-start > 1 {
			v, err := rc.Draw(rng.PurposeSpeedTie)
			if err != nil {
				return nil, draws, fmt.Errorf("speed tie: %w", err)
			}
			draws = append(draws, rng.Event{Purpose: rng.PurposeSpeedTie, Value: v})
			if v == 1 {
				slices.Reverse(ranked[start:end])
			}
			slog.Debug("speed tie", "size", end-start, "value", v)
		}
		start = end
	}

	ordered := make([]Action, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.action
	}
	return ordered, draws, nil
}
