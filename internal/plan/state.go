package plan

// State tracks a resource through the planning pipeline. Stages never
// skip: a resource only reaches Ordered by passing through Resolved and
// Validated first. Parse failures happen before any Document (and thus
// any state) exists, so ParseFailed never appears on a Plan.
type State int

const (
	StateDeclared State = iota
	StateResolved
	StateValidated
	StateOrdered

	StateResolutionFailed
	StateValidationFailed
	StateCycleDetected
)

// String returns the state's canonical name.
func (s State) String() string {
	switch s {
	case StateDeclared:
		return "Declared"
	case StateResolved:
		return "Resolved"
	case StateValidated:
		return "Validated"
	case StateOrdered:
		return "Ordered"
	case StateResolutionFailed:
		return "ResolutionFailed"
	case StateValidationFailed:
		return "ValidationFailed"
	case StateCycleDetected:
		return "CycleDetected"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state is a terminal failure.
func (s State) Terminal() bool {
	switch s {
	case StateResolutionFailed, StateValidationFailed, StateCycleDetected:
		return true
	default:
		return false
	}
}

// MarshalText makes states render as their names in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
