package model

// Move — неизменяемые справочные данные о приёме.
// Power == nil для status-приёмов, Accuracy == nil означает "всегда попадает".
type Move struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Type         Type     `yaml:"type" json:"type"`
	Category     Category `yaml:"category" json:"category"`
	Power        *int     `yaml:"power" json:"power,omitempty"`
	Accuracy     *int     `yaml:"accuracy" json:"accuracy,omitempty"`
	Priority     int      `yaml:"priority" json:"priority"`
	PP           int      `yaml:"pp" json:"pp"`
	Target       string   `yaml:"target" json:"target"`
	MakesContact bool     `yaml:"makes_contact" json:"makesContact"`
}

// BasePower returns the move power, 0 for status moves.
func (m *Move) BasePower() int {
	if m.Power == nil {
		return 0
	}
	return *m.Power
}

// IsDamaging reports whether the move deals direct damage.
func (m *Move) IsDamaging() bool {
	return m.Category != CategoryStatus && m.BasePower() > 0
}

// AlwaysHits reports whether the move skips the accuracy check.
func (m *Move) AlwaysHits() bool {
	return m.Accuracy == nil
}
