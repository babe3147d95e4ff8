package data

import "github.com/udisondev/turnbattle/internal/model"

// TypeChart is an immutable attack-type × defense-type table.
// Pairs absent from the table are neutral (1.0).
type TypeChart struct {
	table map[model.Type]map[model.Type]float64
}

// NewTypeChart wraps a table. The map is used as-is and must not be
// modified afterwards.
func NewTypeChart(table map[model.Type]map[model.Type]float64) *TypeChart {
	return &TypeChart{table: table}
}

// DefaultTypeChart returns the Gen 4 chart (17 types, no Fairy).
func DefaultTypeChart() *TypeChart {
	return NewTypeChart(gen4Chart)
}

// Effectiveness returns one of 0, 0.5, 1, 2.
func (c *TypeChart) Effectiveness(attack, defense model.Type) float64 {
	if row, ok := c.table[attack]; ok {
		if v, ok := row[defense]; ok {
			return v
		}
	}
	return 1
}

var gen4Chart = map[model.Type]map[model.Type]float64{
	model.TypeNormal: {
		model.TypeRock:  0.5,
		model.TypeGhost: 0,
		model.TypeSteel: 0.5,
	},
	model.TypeFire: {
		model.TypeFire:   0.5,
		model.TypeWater:  0.5,
		model.TypeGrass:  2,
		model.TypeIce:    2,
		model.TypeBug:    2,
		model.TypeRock:   0.5,
		model.TypeDragon: 0.5,
		model.TypeSteel:  2,
	},
	model.TypeWater: {
		model.TypeFire:   2,
		model.TypeWater:  0.5,
		model.TypeGrass:  0.5,
		model.TypeGround: 2,
		model.TypeRock:   2,
		model.TypeDragon: 0.5,
	},
	model.TypeElectric: {
		model.TypeWater:    2,
		model.TypeElectric: 0.5,
		model.TypeGrass:    0.5,
		model.TypeGround:   0,
		model.TypeFlying:   2,
		model.TypeDragon:   0.5,
	},
	model.TypeGrass: {
		model.TypeFire:   0.5,
		model.TypeWater:  2,
		model.TypeGrass:  0.5,
		model.TypePoison: 0.5,
		model.TypeGround: 2,
		model.TypeFlying: 0.5,
		model.TypeBug:    0.5,
		model.TypeRock:   2,
		model.TypeDragon: 0.5,
		model.TypeSteel:  0.5,
	},
	model.TypeIce: {
		model.TypeFire:   0.5,
		model.TypeWater:  0.5,
		model.TypeGrass:  2,
		model.TypeIce:    0.5,
		model.TypeGround: 2,
		model.TypeFlying: 2,
		model.TypeDragon: 2,
		model.TypeSteel:  0.5,
	},
	model.TypeFighting: {
		model.TypeNormal:  2,
		model.TypeIce:     2,
		model.TypePoison:  0.5,
		model.TypeFlying:  0.5,
		model.TypePsychic: 0.5,
		model.TypeBug:     0.5,
		model.TypeRock:    2,
		model.TypeGhost:   0,
		model.TypeDark:    2,
		model.TypeSteel:   2,
	},
	model.TypePoison: {
		model.TypeGrass:  2,
		model.TypePoison: 0.5,
		model.TypeGround: 0.5,
		model.TypeRock:   0.5,
		model.TypeGhost:  0.5,
		model.TypeSteel:  0,
	},
	model.TypeGround: {
		model.TypeFire:     2,
		model.TypeElectric: 2,
		model.TypeGrass:    0.5,
		model.TypePoison:   2,
		model.TypeFlying:   0,
		model.TypeBug:      0.5,
		model.TypeRock:     2,
		model.TypeSteel:    2,
	},
	model.TypeFlying: {
		model.TypeElectric: 0.5,
		model.TypeGrass:    2,
		model.TypeFighting: 2,
		model.TypeBug:      2,
		model.TypeRock:     0.5,
		model.TypeSteel:    0.5,
	},
	model.TypePsychic: {
		model.TypeFighting: 2,
		model.TypePoison:   2,
		model.TypePsychic:  0.5,
		model.TypeDark:     0,
		model.TypeSteel:    0.5,
	},
	model.TypeBug: {
		model.TypeFire:     0.5,
		model.TypeGrass:    2,
		model.TypeFighting: 0.5,
		model.TypePoison:   0.5,
		model.TypeFlying:   0.5,
		model.TypePsychic:  2,
		model.TypeGhost:    0.5,
		model.TypeDark:     2,
		model.TypeSteel:    0.5,
	},
	model.TypeRock: {
		model.TypeFire:     2,
		model.TypeIce:      2,
		model.TypeFighting: 0.5,
		model.TypeGround:   0.5,
		model.TypeFlying:   2,
		model.TypeBug:      2,
		model.TypeSteel:    0.5,
	},
	model.TypeGhost: {
		model.TypeNormal:  0,
		model.TypePsychic: 2,
		model.TypeGhost:   2,
		model.TypeDark:    0.5,
		model.TypeSteel:   0.5,
	},
	model.TypeDragon: {
		model.TypeDragon: 2,
		model.TypeSteel:  0.5,
	},
	model.TypeDark: {
		model.TypeFighting: 0.5,
		model.TypePsychic:  2,
		model.TypeGhost:    2,
		model.TypeDark:     0.5,
		model.TypeSteel:    0.5,
	},
	model.TypeSteel: {
		model.TypeFire:     0.5,
		model.TypeWater:    0.5,
		model.TypeElectric: 0.5,
		model.TypeIce:      2,
		model.TypeRock:     2,
		model.TypeSteel:    0.5,
	},
}
