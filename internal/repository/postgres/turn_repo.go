package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/lugo-striker/internal/model"
)

// DefaultListLimit caps ListByMatch when the caller passes no limit.
const DefaultListLimit = 500

// TurnRepo handles turn history database operations.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// Save inserts a turn. Replays of an already stored (match, jersey, seq) are ignored.
func (r *TurnRepo) Save(ctx context.Context, t *model.Turn) error {
	orders := string(t.Orders)
	if orders == "" || orders == "null" {
		orders = "[]"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turns (match_id, jersey, seq, state, orders, skipped, reason, decided_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (match_id, jersey, seq) DO NOTHING`,
		t.MatchID, t.Jersey, t.Seq, t.State, orders, t.Skipped, t.Reason, t.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("save turn: %w", err)
	}
	return nil
}

// ListByMatch returns the latest turns of a match, newest first. A zero
// jersey lists every player.
func (r *TurnRepo) ListByMatch(ctx context.Context, matchID string, jersey, limit int) ([]model.Turn, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT match_id, jersey, seq, state, orders, skipped, reason, decided_at
		 FROM turns
		 WHERE match_id = $1 AND ($2 = 0 OR jersey = $2)
		 ORDER BY decided_at DESC, jersey, seq DESC
		 LIMIT $3`, matchID, jersey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		var orders []byte
		if err := rows.Scan(&t.MatchID, &t.Jersey, &t.Seq, &t.State, &orders, &t.Skipped, &t.Reason, &t.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Orders = orders
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Summary counts turns and skipped turns per jersey.
func (r *TurnRepo) Summary(ctx context.Context, matchID string) (*model.MatchSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT jersey, COUNT(*), COUNT(*) FILTER (WHERE skipped)
		 FROM turns
		 WHERE match_id = $1
		 GROUP BY jersey
		 ORDER BY jersey`, matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("turn summary: %w", err)
	}
	defer rows.Close()

	s := &model.MatchSummary{MatchID: matchID, Jerseys: []model.JerseySummary{}}
	for rows.Next() {
		var j model.JerseySummary
		if err := rows.Scan(&j.Jersey, &j.Turns, &j.Skipped); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Jerseys = append(s.Jerseys, j)
	}
	return s, rows.Err()
}
