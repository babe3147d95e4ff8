package battle

import "errors"

// Integrity errors. Each one means an upstream construction bug; the call
// aborts and the battle state may be partially mutated.
var (
	ErrUnknownEffect        = errors.New("unknown effect variant")
	ErrUnknownEvent         = errors.New("unknown event variant")
	ErrCombatantNotFound    = errors.New("combatant not found")
	ErrTargetMismatch       = errors.New("effect target does not match combatant")
	ErrInvalidAmount        = errors.New("effect amount must be non-negative")
	ErrSwitchNotImplemented = errors.New("switch action not implemented")
	ErrUnknownAction        = errors.New("unknown action kind")
	ErrDuplicateAction      = errors.New("combatant has more than one action this turn")
)
