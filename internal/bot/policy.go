package bot

import (
	"errors"
	"fmt"

	"github.com/freeeve/lugo-striker/pkg/field"
)

// Goalkeeper constants, in raw field units.
const (
	JumpRadius = 200

	// The keeper dives when the ball is this close to its own goal line...
	diveMaxBallX = 1300
	// ...and this far from the keeper along the goal line.
	diveMinDeltaY = 2000
)

var (
	keeperTopPost    = field.NewPoint(0, 5600)
	keeperBottomPost = field.NewPoint(0, 4400)
)

// ErrNilMapper is returned by NewPolicy when no mapper is supplied.
var ErrNilMapper = errors.New("policy requires a mapper")

// Policy computes the orders of a single player for each turn. It keeps no
// state between turns besides the jersey number, the mapper and the tactics.
type Policy struct {
	number  int
	mapper  field.Mapper
	tactics *Tactics
}

// NewPolicy builds the policy for the player wearing number. Tactics are
// validated against the mapper grid so a missing jersey fails here, not
// in the middle of a match. A nil tactics uses DefaultTactics.
func NewPolicy(number int, m field.Mapper, t *Tactics) (*Policy, error) {
	if m == nil {
		return nil, ErrNilMapper
	}
	if number < GoalkeeperNumber || number > 11 {
		return nil, fmt.Errorf("jersey %d: %w", number, ErrUnknownJersey)
	}
	if t == nil {
		t = DefaultTactics()
	}
	if err := t.Validate(m.Cols(), m.Rows()); err != nil {
		return nil, fmt.Errorf("tactics: %w", err)
	}
	return &Policy{number: number, mapper: m, tactics: t}, nil
}

// Number returns the player's jersey number.
func (p *Policy) Number() int { return p.number }

// IsGoalkeeper reports whether the policy plays the goalkeeper role.
func (p *Policy) IsGoalkeeper() bool { return p.number == GoalkeeperNumber }

// InitialPosition is where the player lines up before kick-off.
func (p *Policy) InitialPosition() (field.Point, error) {
	return p.tactics.InitialPosition(p.mapper, p.number)
}

// OnDisputing chases a loose ball, unless a teammate is better placed.
func (p *Policy) OnDisputing(insp Inspector) ([]Order, error) {
	target := insp.Ball()
	if HasOtherClosest(insp) {
		target = insp.Me().Position
	}
	return []Order{MoveMaxSpeed(target), Catch()}, nil
}

// OnDefending presses the ball carrier.
func (p *Policy) OnDefending(insp Inspector) ([]Order, error) {
	return []Order{MoveMaxSpeed(insp.Ball()), Catch()}, nil
}

// OnHolding carries the ball to the opponent goal and shoots once close enough.
func (p *Policy) OnHolding(insp Inspector) ([]Order, error) {
	goal := p.mapper.AttackGoal()
	goalRegion, err := p.mapper.RegionFromPoint(goal.Center)
	if err != nil {
		return nil, fmt.Errorf("goal region: %w", err)
	}
	myRegion, err := p.mapper.RegionFromPoint(insp.Me().Position)
	if err != nil {
		return nil, fmt.Errorf("my region: %w", err)
	}

	if IsNear(myRegion, goalRegion) {
		return []Order{KickMaxSpeed(goal.Center)}, nil
	}
	return []Order{MoveMaxSpeed(goal.Center)}, nil
}

// OnSupporting stays close to the ball holder, or takes the formation
// position when the holder is far away.
func (p *Policy) OnSupporting(insp Inspector) ([]Order, error) {
	ball := insp.Ball()
	holderRegion, err := p.mapper.RegionFromPoint(ball)
	if err != nil {
		return nil, fmt.Errorf("ball region: %w", err)
	}
	myRegion, err := p.mapper.RegionFromPoint(insp.Me().Position)
	if err != nil {
		return nil, fmt.Errorf("my region: %w", err)
	}

	if IsNear(holderRegion, myRegion) {
		return []Order{MoveMaxSpeed(ball)}, nil
	}
	dest, err := p.tactics.ExpectedPosition(ball, p.mapper, p.number)
	if err != nil {
		return nil, fmt.Errorf("expected position: %w", err)
	}
	return []Order{MoveMaxSpeed(dest)}, nil
}

// AsGoalkeeper keeps the keeper between the ball and the goal, always jumping
// and trying to catch.
func (p *Policy) AsGoalkeeper(state RoleState, insp Inspector) ([]Order, error) {
	ball := insp.Ball()
	me := insp.Me()

	target := ball
	if state == StateHolding && insp.IsBallHolder() {
		target = p.mapper.AttackGoal().Center
	}

	if ball.X <= diveMaxBallX && ball.Y-me.Position.Y > diveMinDeltaY {
		return []Order{Jump(target, JumpRadius), Catch()}, nil
	}

	goal := p.mapper.DefenseGoal()
	switch {
	case target.Y > goal.TopPole.Y:
		target = keeperTopPost
	case target.Y < goal.BottomPole.Y:
		target = keeperBottomPost
	}
	return []Order{Jump(target, JumpRadius), Catch()}, nil
}

// Decide runs the behavior matching state and wraps the outcome in a
// Decision. The goalkeeper ignores the outfield behaviors and receives the
// state as its sub-state.
func (p *Policy) Decide(state RoleState, insp Inspector) Decision {
	var (
		orders []Order
		err    error
	)
	switch {
	case p.IsGoalkeeper():
		orders, err = p.AsGoalkeeper(state, insp)
	case state == StateDisputing:
		orders, err = p.OnDisputing(insp)
	case state == StateDefending:
		orders, err = p.OnDefending(insp)
	case state == StateHolding:
		orders, err = p.OnHolding(insp)
	case state == StateSupporting:
		orders, err = p.OnSupporting(insp)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownState, state)
	}
	if err != nil {
		return Skip(state, err)
	}
	return Decision{State: state, Orders: orders}
}
