package bot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/freeeve/lugo-striker/pkg/field"
)

type fakeRecorder struct {
	numbers   []int
	decisions []Decision
	err       error
}

func (r *fakeRecorder) Record(_ context.Context, number int, d Decision) error {
	r.numbers = append(r.numbers, number)
	r.decisions = append(r.decisions, d)
	return r.err
}

// panicInspector blows up on any access, standing in for a corrupt snapshot.
type panicInspector struct{}

func (panicInspector) Ball() field.Point       { panic("no ball in snapshot") }
func (panicInspector) Me() Player              { panic("no player in snapshot") }
func (panicInspector) MyTeamPlayers() []Player { panic("no team in snapshot") }
func (panicInspector) IsBallHolder() bool      { panic("no holder in snapshot") }

func newTestAgent(t *testing.T, number int, rec Recorder) (*Agent, *gridMapper, *bytes.Buffer) {
	t.Helper()
	p, m := newTestPolicy(t, number)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return NewAgent(p, logger, rec), m, &buf
}

func TestAgentOnTurn_ReturnsAndRecordsOrders(t *testing.T) {
	rec := &fakeRecorder{}
	a, _, _ := newTestAgent(t, 4, rec)
	ball := field.NewPoint(8000, 3000)

	orders := a.OnTurn(context.Background(), StateDefending, snapshot(ball, player(4, 1000, 1000)))
	expectOrders(t, orders, MoveMaxSpeed(ball), Catch())

	if len(rec.decisions) != 1 {
		t.Fatalf("expected 1 recorded decision, got %d", len(rec.decisions))
	}
	if rec.numbers[0] != 4 || rec.decisions[0].State != StateDefending || rec.decisions[0].Skipped {
		t.Errorf("unexpected record: jersey %d %+v", rec.numbers[0], rec.decisions[0])
	}
}

func TestAgentOnTurn_SkipsOnBehaviorError(t *testing.T) {
	rec := &fakeRecorder{}
	a, m, buf := newTestAgent(t, 9, rec)
	m.err = field.ErrOutOfField

	orders := a.OnTurn(context.Background(), StateHolding, snapshot(field.NewPoint(1, 1), player(9, 1, 1)))
	if orders != nil {
		t.Errorf("expected no orders, got %v", orders)
	}
	if !strings.Contains(buf.String(), "Turn skipped") {
		t.Errorf("expected skip to be logged, got %q", buf.String())
	}
	if len(rec.decisions) != 1 || !rec.decisions[0].Skipped {
		t.Errorf("expected a skipped decision to be recorded, got %+v", rec.decisions)
	}
}

func TestAgentOnTurn_RecoversPanic(t *testing.T) {
	rec := &fakeRecorder{}
	a, _, _ := newTestAgent(t, 4, rec)

	orders := a.OnTurn(context.Background(), StateDefending, panicInspector{})
	if orders != nil {
		t.Errorf("expected no orders, got %v", orders)
	}
	if len(rec.decisions) != 1 || !strings.Contains(rec.decisions[0].Reason, ErrBehaviorPanic.Error()) {
		t.Errorf("expected panic reason, got %+v", rec.decisions)
	}
}

func TestAgentOnTurn_RecorderErrorIgnored(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("redis down")}
	a, _, buf := newTestAgent(t, 4, rec)
	ball := field.NewPoint(8000, 3000)

	orders := a.OnTurn(context.Background(), StateDefending, snapshot(ball, player(4, 1000, 1000)))
	if len(orders) != 2 {
		t.Fatalf("recorder failure must not drop orders, got %v", orders)
	}
	if !strings.Contains(buf.String(), "redis down") {
		t.Errorf("expected recorder error to be logged, got %q", buf.String())
	}
}

func TestAgentOnTurn_NilRecorder(t *testing.T) {
	a, _, _ := newTestAgent(t, 4, nil)
	if orders := a.OnTurn(context.Background(), StateDefending, snapshot(field.NewPoint(1, 1), player(4, 2, 2))); len(orders) != 2 {
		t.Errorf("expected 2 orders, got %v", orders)
	}
}

func TestAgentGettingReady_LogsOnly(t *testing.T) {
	rec := &fakeRecorder{}
	a, _, buf := newTestAgent(t, 6, rec)

	a.GettingReady(snapshot(field.NewPoint(10000, 5000), player(6, 5000, 2000)))
	if !strings.Contains(buf.String(), "Getting ready") {
		t.Errorf("expected notice, got %q", buf.String())
	}
	if len(rec.decisions) != 0 {
		t.Error("getting ready must not record decisions")
	}
}
