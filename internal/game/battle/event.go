package battle

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/turnbattle/internal/model"
)

// EventKind names a public event variant.
type EventKind string

const (
	EventTurnStart       EventKind = "TURN_START"
	EventUseMove         EventKind = "USE_MOVE"
	EventMoveMissed      EventKind = "MOVE_MISSED"
	EventCriticalHit     EventKind = "CRITICAL_HIT"
	EventDamageDealt     EventKind = "DAMAGE_DEALT"
	EventHealed          EventKind = "HEALED"
	EventStatusInflicted EventKind = "STATUS_INFLICTED"
	EventFainted         EventKind = "FAINTED"
	EventItemActivated   EventKind = "ITEM_ACTIVATED"
	EventItemConsumed    EventKind = "ITEM_CONSUMED"
)

// Event is an observable outcome. All variants are comparable values, so
// two event streams can be compared with ==.
type Event interface {
	Kind() EventKind
	isEvent()
}

type TurnStartEvent struct {
	TurnNumber int `json:"turnNumber"`
}

type UseMoveEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	MoveID    string            `json:"moveId"`
}

type MoveMissedEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	Target    model.CombatantID `json:"target"`
	MoveID    string            `json:"moveId"`
}

type CriticalHitEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	Target    model.CombatantID `json:"target"`
}

// DamageDealtEvent reports the hp actually removed; overkill is cut off.
type DamageDealtEvent struct {
	Target       model.CombatantID `json:"target"`
	Amount       int               `json:"amount"`
	NewHP        int               `json:"newHp"`
	NewHPPercent float64           `json:"newHpPercent"`
}

// HealedEvent reports the hp actually restored, capped at max hp.
type HealedEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	Amount    int               `json:"amount"`
	NewHP     int               `json:"newHp"`
}

type StatusInflictedEvent struct {
	Target model.CombatantID `json:"target"`
	Status model.Status      `json:"status"`
}

type FaintedEvent struct {
	Combatant model.CombatantID `json:"combatant"`
}

type ItemActivatedEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	Item      string            `json:"item"`
}

type ItemConsumedEvent struct {
	Combatant model.CombatantID `json:"combatant"`
	Item      string            `json:"item"`
}

func (TurnStartEvent) Kind() EventKind       { return EventTurnStart }
func (UseMoveEvent) Kind() EventKind         { return EventUseMove }
func (MoveMissedEvent) Kind() EventKind      { return EventMoveMissed }
func (CriticalHitEvent) Kind() EventKind     { return EventCriticalHit }
func (DamageDealtEvent) Kind() EventKind     { return EventDamageDealt }
func (HealedEvent) Kind() EventKind          { return EventHealed }
func (StatusInflictedEvent) Kind() EventKind { return EventStatusInflicted }
func (FaintedEvent) Kind() EventKind         { return EventFainted }
func (ItemActivatedEvent) Kind() EventKind   { return EventItemActivated }
func (ItemConsumedEvent) Kind() EventKind    { return EventItemConsumed }

func (TurnStartEvent) isEvent()       {}
func (UseMoveEvent) isEvent()         {}
func (MoveMissedEvent) isEvent()      {}
func (CriticalHitEvent) isEvent()     {}
func (DamageDealtEvent) isEvent()     {}
func (HealedEvent) isEvent()          {}
func (StatusInflictedEvent) isEvent() {}
func (FaintedEvent) isEvent()         {}
func (ItemActivatedEvent) isEvent()   {}
func (ItemConsumedEvent) isEvent()    {}

type eventEnvelope struct {
	Type    EventKind       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalEvents encodes a stream as a JSON array of {type, payload}.
func MarshalEvents(events []Event) ([]byte, error) {
	out := make([]eventEnvelope, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("encoding %s event: %w", ev.Kind(), err)
		}
		out = append(out, eventEnvelope{Type: ev.Kind(), Payload: payload})
	}
	return json.Marshal(out)
}

// UnmarshalEvents decodes the output of MarshalEvents.
func UnmarshalEvents(raw []byte) ([]Event, error) {
	var envs []eventEnvelope
	if err := json.Unmarshal(raw, &envs); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	events := make([]Event, 0, len(envs))
	for i, env := range envs {
		ev, err := decodeEvent(env)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(env eventEnvelope) (Event, error) {
	switch env.Type {
	case EventTurnStart:
		return decodeAs[TurnStartEvent](env.Payload)
	case EventUseMove:
		return decodeAs[UseMoveEvent](env.Payload)
	case EventMoveMissed:
		return decodeAs[MoveMissedEvent](env.Payload)
	case EventCriticalHit:
		return decodeAs[CriticalHitEvent](env.Payload)
	case EventDamageDealt:
		return decodeAs[DamageDealtEvent](env.Payload)
	case EventHealed:
		return decodeAs[HealedEvent](env.Payload)
	case EventStatusInflicted:
		return decodeAs[StatusInflictedEvent](env.Payload)
	case EventFainted:
		return decodeAs[FaintedEvent](env.Payload)
	case EventItemActivated:
		return decodeAs[ItemActivatedEvent](env.Payload)
	case EventItemConsumed:
		return decodeAs[ItemConsumedEvent](env.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func decodeAs[T Event](raw json.RawMessage) (Event, error) {
	var ev T
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}
