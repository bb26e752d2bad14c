package bot

import (
	"errors"
	"fmt"
)

// RoleState is the role the engine assigns to the player for the current turn.
type RoleState int

const (
	StateSupporting RoleState = iota // A teammate holds the ball
	StateHolding                     // This player holds the ball
	StateDefending                   // The opponent holds the ball
	StateDisputing                   // Nobody holds the ball
)

// ErrUnknownState is returned for role states the policy has no behavior for.
var ErrUnknownState = errors.New("unknown role state")

var stateNames = map[RoleState]string{
	StateSupporting: "supporting",
	StateHolding:    "holding",
	StateDefending:  "defending",
	StateDisputing:  "disputing",
}

func (s RoleState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseRoleState converts a state name back into a RoleState.
func ParseRoleState(name string) (RoleState, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
