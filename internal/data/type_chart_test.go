package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/turnbattle/internal/model"
)

func TestTypeChart_Lookups(t *testing.T) {
	c := DefaultTypeChart()
	tests := []struct {
		attack, defense model.Type
		want            float64
	}{
		{model.TypeGround, model.TypeFlying, 0},
		{model.TypeGround, model.TypeFire, 2},
		{model.TypeGround, model.TypeSteel, 2},
		{model.TypeWater, model.TypeWater, 0.5},
		{model.TypeNormal, model.TypeGhost, 0},
		{model.TypeNormal, model.TypeNormal, 1},
		{model.TypeDragon, model.TypeFire, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.attack)+"_vs_"+string(tt.defense), func(t *testing.T) {
			assert.Equal(t, tt.want, c.Effectiveness(tt.attack, tt.defense))
		})
	}
}

func TestTypeChart_OnlyCanonicalValues(t *testing.T) {
	c := DefaultTypeChart()
	for _, a := range model.AllTypes {
		for _, d := range model.AllTypes {
			v := c.Effectiveness(a, d)
			assert.Contains(t, []float64{0, 0.5, 1, 2}, v, "%s vs %s", a, d)
		}
	}
}

func TestTypeChart_UnknownTypeIsNeutral(t *testing.T) {
	c := DefaultTypeChart()
	assert.Equal(t, 1.0, c.Effectiveness("fairy", model.TypeDragon))
	assert.Equal(t, 1.0, NewTypeChart(nil).Effectiveness(model.TypeGround, model.TypeFlying))
}
