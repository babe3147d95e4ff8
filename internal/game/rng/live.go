package rng

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/turnbattle/internal/random"
)

// Source is the generator behind a Live context.
type Source interface {
	IntN(n int) int
}

// Live draws fresh values and appends each one to its log.
type Live struct {
	seed int64
	src  Source
	log  []Event
}

// NewLive creates a Live context over a PCG generator seeded with seed.
// The same seed yields the same sequence of draws.
func NewLive(seed int64) *Live {
	return &Live{
		seed: seed,
		src:  rand.New(rand.NewPCG(uint64(seed), 0)),
	}
}

// NewLiveRandom creates a Live context with a crypto-random seed.
func NewLiveRandom() (*Live, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return nil, fmt.Errorf("seeding live rng: %w", err)
	}
	return NewLive(seed), nil
}

// NewLiveWithSource creates a Live context over an arbitrary source.
// Seed reports 0 for such contexts.
func NewLiveWithSource(src Source) *Live {
	return &Live{src: src}
}

// Seed returns the seed the context was created with.
func (l *Live) Seed() int64 { return l.seed }

// Draw implements Context.
func (l *Live) Draw(p Purpose) (int, error) {
	d, err := DomainOf(p)
	if err != nil {
		return 0, err
	}
	v := d.Min + l.src.IntN(d.Max-d.Min+1)
	l.log = append(l.log, Event{Purpose: p, Value: v})
	return v, nil
}

// Log implements Context.
func (l *Live) Log() []Event {
	return slices.Clone(l.log)
}
