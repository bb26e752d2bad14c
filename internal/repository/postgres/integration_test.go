//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/freeeve/lugo-striker/internal/model"
	"github.com/freeeve/lugo-striker/internal/testutil"
)

var testDB *sql.DB

func setup(t *testing.T) *TurnRepo {
	t.Helper()
	if testDB == nil {
		testDB = testutil.SetupDB(t)
	}
	testutil.CleanupDB(t, testDB)
	return NewTurnRepo(testDB)
}

func saveTurn(t *testing.T, r *TurnRepo, matchID string, jersey int, seq int64, skipped bool) {
	t.Helper()
	turn := &model.Turn{
		MatchID:   matchID,
		Jersey:    jersey,
		Seq:       seq,
		State:     "supporting",
		Orders:    json.RawMessage(`[{"kind":"move","target":{"x":1,"y":2}}]`),
		Skipped:   skipped,
		DecidedAt: time.Now().UTC().Add(time.Duration(seq) * time.Millisecond),
	}
	if skipped {
		turn.Orders = nil
		turn.Reason = "ball region: outside of the field"
	}
	if err := r.Save(context.Background(), turn); err != nil {
		t.Fatalf("save turn: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	setup(t)
	if err := Migrate(context.Background(), testDB); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestTurnRepo_SaveAndList(t *testing.T) {
	r := setup(t)
	ctx := context.Background()

	saveTurn(t, r, "m1", 7, 1, false)
	saveTurn(t, r, "m1", 7, 2, true)
	saveTurn(t, r, "m1", 9, 1, false)
	saveTurn(t, r, "m2", 7, 1, false)

	all, err := r.ListByMatch(ctx, "m1", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 turns in m1, got %d", len(all))
	}

	mine, err := r.ListByMatch(ctx, "m1", 7, 10)
	if err != nil {
		t.Fatalf("list jersey: %v", err)
	}
	if len(mine) != 2 || mine[0].Seq != 2 {
		t.Fatalf("expected jersey 7 newest first, got %+v", mine)
	}
	if !mine[0].Skipped || string(mine[0].Orders) != "[]" {
		t.Errorf("skipped turn should store empty orders, got %s", mine[0].Orders)
	}
}

func TestTurnRepo_SaveIgnoresDuplicates(t *testing.T) {
	r := setup(t)
	saveTurn(t, r, "m1", 7, 1, false)
	saveTurn(t, r, "m1", 7, 1, false)

	turns, _ := r.ListByMatch(context.Background(), "m1", 7, 10)
	if len(turns) != 1 {
		t.Errorf("expected duplicate to be ignored, got %d turns", len(turns))
	}
}

func TestTurnRepo_Summary(t *testing.T) {
	r := setup(t)
	saveTurn(t, r, "m1", 7, 1, false)
	saveTurn(t, r, "m1", 7, 2, true)
	saveTurn(t, r, "m1", 9, 1, false)

	s, err := r.Summary(context.Background(), "m1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(s.Jerseys) != 2 {
		t.Fatalf("expected 2 jerseys, got %+v", s.Jerseys)
	}
	if s.Jerseys[0] != (model.JerseySummary{Jersey: 7, Turns: 2, Skipped: 1}) {
		t.Errorf("unexpected jersey 7 summary %+v", s.Jerseys[0])
	}
}
