// Package rng provides the randomness source for battle resolution.
//
// Every random draw goes through a Context tagged with a Purpose. A Live
// context draws from a seeded generator and records each draw; a Replay
// context consumes a recorded log and validates it, so a battle can be
// re-executed with identical results.
package rng

import (
	"errors"
	"fmt"
)

// Purpose tags a draw with what it is used for.
type Purpose string

const (
	PurposeDamageRoll   Purpose = "damageRoll"
	PurposeAccuracyRoll Purpose = "accuracyRoll"
	PurposeCriticalRoll Purpose = "criticalRoll"
	PurposeSpeedTie     Purpose = "speedTie"
)

var (
	// ErrReplayDesync is returned when the next logged draw does not match
	// the purpose the engine asks for, or the log is exhausted.
	ErrReplayDesync = errors.New("rng replay desync")

	// ErrOutOfRange is returned when a replayed value lies outside the
	// domain of its purpose.
	ErrOutOfRange = errors.New("rng value out of range")

	// ErrUnknownPurpose is returned for purposes with no defined domain.
	ErrUnknownPurpose = errors.New("unknown rng purpose")
)

// Event is one recorded draw.
type Event struct {
	Purpose Purpose `json:"purpose" yaml:"purpose"`
	Value   int     `json:"value" yaml:"value"`
}

// Domain is the inclusive value range of a purpose.
type Domain struct {
	Min int
	Max int
}

// Contains reports whether v lies in [Min, Max].
func (d Domain) Contains(v int) bool {
	return v >= d.Min && v <= d.Max
}

var domains = map[Purpose]Domain{
	PurposeDamageRoll:   {Min: 85, Max: 100},
	PurposeAccuracyRoll: {Min: 1, Max: 100},
	PurposeCriticalRoll: {Min: 1, Max: 16},
	PurposeSpeedTie:     {Min: 0, Max: 1},
}

// DomainOf returns the value range for p.
func DomainOf(p Purpose) (Domain, error) {
	d, ok := domains[p]
	if !ok {
		return Domain{}, fmt.Errorf("%w: %q", ErrUnknownPurpose, p)
	}
	return d, nil
}

// Context is the single randomness capability handed to the engine.
// Implementations are not safe for concurrent use.
type Context interface {
	// Draw returns the next value for purpose p.
	Draw(p Purpose) (int, error)
	// Log returns every draw made (Live) or consumed (Replay) so far.
	Log() []Event
}
