package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/bot"
	"github.com/freeeve/lugo-striker/internal/model"
	"github.com/freeeve/lugo-striker/internal/repository"
)

// ErrInvalidTurn marks feed payloads the relay refuses to store or broadcast.
var ErrInvalidTurn = errors.New("invalid turn")

// TurnRelay moves turns from the live feed into durable history and out to
// connected spectators.
type TurnRelay struct {
	feed        repository.TurnFeed
	turnRepo    repository.TurnRepository
	broadcaster Broadcaster
}

// NewTurnRelay creates a TurnRelay. A nil broadcaster disables the live push.
func NewTurnRelay(feed repository.TurnFeed, turnRepo repository.TurnRepository, broadcaster Broadcaster) *TurnRelay {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &TurnRelay{feed: feed, turnRepo: turnRepo, broadcaster: broadcaster}
}

// Start relays turns until ctx is done or the feed closes.
func (r *TurnRelay) Start(ctx context.Context) {
	log.Info().Msg("Turn relay started")
	turns := r.feed.SubscribeTurns(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Turn relay stopped")
			return
		case t, ok := <-turns:
			if !ok {
				log.Warn().Msg("Turn feed closed, relay stopping")
				return
			}
			r.handleTurn(ctx, t)
		}
	}
}

// handleTurn persists then broadcasts one turn. A failed save is logged and
// the turn is still pushed to spectators.
func (r *TurnRelay) handleTurn(ctx context.Context, t model.Turn) {
	if err := validateTurn(t); err != nil {
		log.Warn().Err(err).Str("matchId", t.MatchID).Int("jersey", t.Jersey).Msg("Dropping turn")
		return
	}
	if err := r.turnRepo.Save(ctx, &t); err != nil {
		log.Error().Err(err).Str("matchId", t.MatchID).Int("jersey", t.Jersey).Int64("seq", t.Seq).Msg("Failed to persist turn")
	}
	if t.Skipped {
		log.Debug().Str("matchId", t.MatchID).Int("jersey", t.Jersey).Str("reason", t.Reason).Msg("Relaying skipped turn")
	}
	r.broadcaster.BroadcastMatchEvent(t.MatchID, EventTurnDecided, t)
}

// validateTurn checks a feed payload before it reaches storage. Only skipped
// turns may carry a state the policy does not know, since an unknown state is
// itself a reason to skip.
func validateTurn(t model.Turn) error {
	if t.MatchID == "" {
		return fmt.Errorf("%w: empty match id", ErrInvalidTurn)
	}
	if t.Jersey < bot.GoalkeeperNumber || t.Jersey > 11 {
		return fmt.Errorf("%w: jersey %d", ErrInvalidTurn, t.Jersey)
	}
	if _, err := bot.ParseRoleState(t.State); err != nil && !t.Skipped {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}
	return nil
}
