package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrBehaviorPanic marks a turn skipped because a behavior panicked.
var ErrBehaviorPanic = errors.New("behavior panicked")

// Recorder receives every decision the agent makes, for journaling or live
// feeds. Record runs inside the turn and must not block on I/O. The policy
// never reads recorded decisions back.
type Recorder interface {
	Record(ctx context.Context, number int, d Decision) error
}

// Agent is the entry point the engine adapter calls once per turn.
type Agent struct {
	policy   *Policy
	log      zerolog.Logger
	recorder Recorder
}

// NewAgent wraps a policy. recorder may be nil.
func NewAgent(policy *Policy, logger zerolog.Logger, recorder Recorder) *Agent {
	return &Agent{policy: policy, log: logger, recorder: recorder}
}

// Policy returns the wrapped policy.
func (a *Agent) Policy() *Policy { return a.policy }

// OnTurn returns the orders for this turn. A failing behavior never reaches
// the caller: the turn is logged as skipped and nil is returned.
func (a *Agent) OnTurn(ctx context.Context, state RoleState, insp Inspector) []Order {
	d := a.decide(state, insp)

	if d.Skipped {
		a.log.Warn().Str("state", state.String()).Str("reason", d.Reason).Msg("Turn skipped")
	} else {
		a.log.Debug().Str("state", state.String()).Int("orders", len(d.Orders)).Msg("Turn decided")
	}

	if a.recorder != nil {
		if err := a.recorder.Record(ctx, a.policy.Number(), d); err != nil {
			a.log.Warn().Err(err).Msg("Failed to record decision")
		}
	}

	if d.Skipped {
		return nil
	}
	return d.Orders
}

func (a *Agent) decide(state RoleState, insp Inspector) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = Skip(state, fmt.Errorf("%w: %v", ErrBehaviorPanic, r))
		}
	}()
	return a.policy.Decide(state, insp)
}

// GettingReady is called once with the initial snapshot before play starts.
func (a *Agent) GettingReady(insp Inspector) {
	ev := a.log.Info().Str("position", insp.Me().Position.String())
	if pos, err := a.policy.InitialPosition(); err == nil {
		ev = ev.Str("initial", pos.String())
	}
	ev.Msg("Getting ready")
}
