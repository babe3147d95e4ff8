package rng

import (
	"fmt"
	"slices"
)

// Replay consumes a recorded log in order.
// The cursor is explicit state: it always points at the next unread event.
type Replay struct {
	events []Event
	cursor int
}

// NewReplay creates a Replay context over events. The slice is copied.
func NewReplay(events []Event) *Replay {
	return &Replay{events: slices.Clone(events)}
}

// Draw implements Context.
func (r *Replay) Draw(p Purpose) (int, error) {
	if r.cursor >= len(r.events) {
		return 0, fmt.Errorf("%w: expected %s at index %d, log exhausted", ErrReplayDesync, p, r.cursor)
	}
	ev := r.events[r.cursor]
	if ev.Purpose != p {
		return 0, fmt.Errorf("%w: expected %s at index %d, got %s", ErrReplayDesync, p, r.cursor, ev.Purpose)
	}
	d, err := DomainOf(p)
	if err != nil {
		return 0, err
	}
	if !d.Contains(ev.Value) {
		return 0, fmt.Errorf("%w: %s value %d not in [%d, %d]", ErrOutOfRange, p, ev.Value, d.Min, d.Max)
	}
	r.cursor++
	return ev.Value, nil
}

// Log implements Context. Returns the consumed prefix.
func (r *Replay) Log() []Event {
	return slices.Clone(r.events[:r.cursor])
}

// Cursor returns the index of the next event to consume.
func (r *Replay) Cursor() int { return r.cursor }

// Remaining returns how many events are left unread.
func (r *Replay) Remaining() int { return len(r.events) - r.cursor }
