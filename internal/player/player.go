// Package player assembles a ready-to-run Agent from configuration.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/bot"
	"github.com/freeeve/lugo-striker/internal/config"
	"github.com/freeeve/lugo-striker/internal/logger"
	redisrepo "github.com/freeeve/lugo-striker/internal/repository/redis"
	"github.com/freeeve/lugo-striker/internal/service"
	"github.com/freeeve/lugo-striker/pkg/field"
)

// ErrGridMismatch is returned when the mapper grid differs from the configured one.
var ErrGridMismatch = errors.New("mapper grid does not match config")

// Player bundles an Agent with the resources it owns.
type Player struct {
	Agent    *bot.Agent
	feed     *redisrepo.Client
	recorder *service.FeedRecorder
}

// New builds the Agent for cfg.Jersey over the runtime's mapper. When
// cfg.RedisURL is empty or Redis cannot be reached the decisions are only
// logged, not journaled.
func New(ctx context.Context, cfg *config.Config, m field.Mapper) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, bot.ErrNilMapper
	}
	if m.Cols() != cfg.Mapper.Cols || m.Rows() != cfg.Mapper.Rows {
		return nil, fmt.Errorf("%w: mapper %dx%d, config %dx%d",
			ErrGridMismatch, m.Cols(), m.Rows(), cfg.Mapper.Cols, cfg.Mapper.Rows)
	}

	tactics := bot.DefaultTactics()
	if cfg.TacticsFile != "" {
		t, err := bot.LoadTactics(cfg.TacticsFile)
		if err != nil {
			return nil, err
		}
		tactics = t
	}

	policy, err := bot.NewPolicy(cfg.Jersey, m, tactics)
	if err != nil {
		return nil, err
	}

	p := &Player{}
	var recorder bot.Recorder
	if cfg.RedisURL != "" {
		feed, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Str("match", cfg.MatchID).Int("jersey", cfg.Jersey).Msg("Journal unavailable, playing without it")
		} else {
			p.feed = feed
			p.recorder = service.NewFeedRecorder(feed, cfg.MatchID, cfg.Feed.RecentTurns)
			recorder = p.recorder
		}
	}

	p.Agent = bot.NewAgent(policy, logger.ForPlayer(cfg.MatchID, cfg.Jersey), recorder)
	log.Info().
		Str("match", cfg.MatchID).
		Int("jersey", cfg.Jersey).
		Bool("goalkeeper", policy.IsGoalkeeper()).
		Bool("journal", recorder != nil).
		Msg("Player ready")
	return p, nil
}

// Journaled reports whether decisions are published to the live feed.
func (p *Player) Journaled() bool { return p.recorder != nil }

// Close flushes queued turns and releases the feed connection, if any.
func (p *Player) Close() error {
	if p.recorder != nil {
		p.recorder.Close()
	}
	if p.feed == nil {
		return nil
	}
	return p.feed.Close()
}
