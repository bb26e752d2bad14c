package bot

import (
	"fmt"

	"github.com/freeeve/lugo-striker/pkg/field"
)

// OrderKind identifies the action an Order asks the engine to perform.
type OrderKind string

const (
	OrderMove  OrderKind = "move"
	OrderKick  OrderKind = "kick"
	OrderCatch OrderKind = "catch"
	OrderJump  OrderKind = "jump"
)

// Order is a single instruction for the engine. Move and kick orders always
// use the engine's maximum speed; Radius only applies to jumps.
type Order struct {
	Kind   OrderKind   `json:"kind"`
	Target field.Point `json:"target,omitzero"`
	Radius float64     `json:"radius,omitempty"`
}

// MoveMaxSpeed moves the player toward target as fast as possible.
func MoveMaxSpeed(target field.Point) Order {
	return Order{Kind: OrderMove, Target: target}
}

// KickMaxSpeed kicks the ball toward target with full strength.
func KickMaxSpeed(target field.Point) Order {
	return Order{Kind: OrderKick, Target: target}
}

// Catch tries to take the ball.
func Catch() Order {
	return Order{Kind: OrderCatch}
}

// Jump makes a goalkeeper leap toward target, reaching up to radius.
func Jump(target field.Point, radius float64) Order {
	return Order{Kind: OrderJump, Target: target, Radius: radius}
}

func (o Order) String() string {
	switch o.Kind {
	case OrderCatch:
		return "catch"
	case OrderJump:
		return fmt.Sprintf("jump%s r=%g", o.Target, o.Radius)
	default:
		return fmt.Sprintf("%s%s", o.Kind, o.Target)
	}
}
