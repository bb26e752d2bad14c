package repository

import (
	"context"

	"github.com/freeeve/lugo-striker/internal/model"
)

// TurnRepository defines durable turn history operations (Postgres).
type TurnRepository interface {
	Save(ctx context.Context, turn *model.Turn) error
	ListByMatch(ctx context.Context, matchID string, jersey, limit int) ([]model.Turn, error)
	Summary(ctx context.Context, matchID string) (*model.MatchSummary, error)
}

// TurnFeed defines live turn operations (Redis).
type TurnFeed interface {
	NextSeq(ctx context.Context, matchID string, jersey int) (int64, error)
	PublishTurn(ctx context.Context, turn *model.Turn, keep int64) error
	RecentTurns(ctx context.Context, matchID string, jersey int, n int64) ([]model.Turn, error)
	SubscribeTurns(ctx context.Context) <-chan model.Turn
}
