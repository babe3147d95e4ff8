// Package damage implements the Gen 4 damage formula.
//
// Every arithmetic step is floored before the next one, matching the
// cartridge integer arithmetic. A single floating-point evaluation of the
// same expression gives different results and must not be used.
package damage

import (
	"math"

	"github.com/udisondev/turnbattle/internal/model"
)

// STABMultiplier is the same-type attack bonus.
const STABMultiplier = 1.5

// CriticalMultiplier is the Gen 4 critical hit multiplier.
const CriticalMultiplier = 2

// TypeChart resolves single-type effectiveness. Implementations must return
// one of 0, 0.5, 1, 2 and default to 1 for unlisted pairs.
type TypeChart interface {
	Effectiveness(attack, defense model.Type) float64
}

// Params holds everything the formula reads. RandomRoll is in [85, 100]
// and is drawn by the caller.
type Params struct {
	Attacker   *model.Combatant
	Defender   *model.Combatant
	Move       *model.Move
	IsCritical bool
	Weather    model.Weather
	RandomRoll int
}

// Result is the formula output with the multipliers that produced it.
type Result struct {
	Damage        int
	Effectiveness float64
	STAB          bool
}

// Calculate returns only the damage value.
func Calculate(p Params, chart TypeChart) int {
	return Compute(p, chart).Damage
}

// Compute evaluates the formula.
//
//	base = floor(level*2/5) + 2
//	     * power * A / 50 / D * Mod1 + 2
//	     * crit * Mod2 * R / 100 * STAB * Type * Mod3
//
// with a floor after each step. Status moves deal 0, immune targets take 0,
// anything else takes at least 1.
func Compute(p Params, chart TypeChart) Result {
	power := p.Move.BasePower()
	if power == 0 {
		return Result{Effectiveness: 1}
	}

	atk, def := attackDefense(p.Attacker, p.Defender, p.Move.Category)
	if def <= 0 {
		def = 1
	}

	d := floor(float64(p.Attacker.Level*2)/5) + 2
	d *= power
	d = d * atk / 50
	d = d / def
	d = floor(float64(d) * mod1(p))
	d += 2

	if p.IsCritical {
		d *= CriticalMultiplier
	}
	d = floor(float64(d) * mod2(p))
	d = d * p.RandomRoll / 100

	stab := p.Attacker.HasType(p.Move.Type)
	if stab {
		d = floor(float64(d) * STABMultiplier)
	}

	eff := Effectiveness(chart, p.Move.Type, p.Defender.Types)
	d = floor(float64(d) * eff)
	d = floor(float64(d) * mod3(p))

	switch {
	case eff == 0:
		d = 0
	case d == 0:
		d = 1
	}
	return Result{Damage: d, Effectiveness: eff, STAB: stab}
}

// Effectiveness multiplies the chart value of moveType against each
// defender type.
func Effectiveness(chart TypeChart, moveType model.Type, defender []model.Type) float64 {
	eff := 1.0
	for _, t := range defender {
		eff *= chart.Effectiveness(moveType, t)
	}
	return eff
}

func attackDefense(attacker, defender *model.Combatant, c model.Category) (int, int) {
	if c == model.CategorySpecial {
		return attacker.Stats.SpAttack, defender.Stats.SpDefense
	}
	return attacker.Stats.Attack, defender.Stats.Defense
}

// mod1 covers burn, screens, multi-target spread, weather and Flash Fire.
// None are implemented.
func mod1(Params) float64 { return 1.0 }

// mod2 covers Life Orb and Me First.
func mod2(Params) float64 { return 1.0 }

// mod3 covers Solid Rock, Expert Belt, Tinted Lens and resist berries.
func mod3(Params) float64 { return 1.0 }

// floor truncates toward negative infinity. All inputs are non-negative.
func floor(v float64) int {
	return int(math.Floor(v))
}
