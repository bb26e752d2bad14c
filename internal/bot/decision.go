package bot

// Decision is the outcome of one turn: either a list of orders or a skipped
// turn with the reason. A skipped turn sends nothing to the engine, which the
// engine treats as the player doing nothing.
type Decision struct {
	State   RoleState
	Orders  []Order
	Skipped bool
	Reason  string
}

// Skip builds the decision for a turn that produced no orders because of err.
func Skip(state RoleState, err error) Decision {
	return Decision{State: state, Skipped: true, Reason: err.Error()}
}
