package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/bot"
	"github.com/freeeve/lugo-striker/internal/model"
	"github.com/freeeve/lugo-striker/internal/repository"
)

const (
	// recordTimeout bounds the feed round trips of one queued turn.
	recordTimeout = 50 * time.Millisecond
	// recordQueueSize is how many turns may wait for the feed before new ones are dropped.
	recordQueueSize = 256
)

var (
	ErrRecorderFull   = errors.New("journal queue full, turn dropped")
	ErrRecorderClosed = errors.New("journal closed")
)

// FeedRecorder implements bot.Recorder by publishing every decision to the
// live feed. Record only enqueues; a single goroutine owned by the recorder
// talks to the feed, so a slow feed never delays a turn.
type FeedRecorder struct {
	feed    repository.TurnFeed
	matchID string
	keep    int64
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *model.Turn
	done   chan struct{}
}

// NewFeedRecorder creates a recorder for one match and starts its publisher.
// keep bounds the number of recent turns retained per player. Call Close to
// flush and stop it.
func NewFeedRecorder(feed repository.TurnFeed, matchID string, keep int64) *FeedRecorder {
	r := &FeedRecorder{
		feed:    feed,
		matchID: matchID,
		keep:    keep,
		now:     func() time.Time { return time.Now().UTC() },
		queue:   make(chan *model.Turn, recordQueueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record converts the decision into a journal turn and queues it. It never
// blocks: when the queue is full the turn is dropped and ErrRecorderFull returned.
func (r *FeedRecorder) Record(_ context.Context, number int, d bot.Decision) error {
	turn, err := r.toTurn(number, d)
	if err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrRecorderClosed
	}
	select {
	case r.queue <- turn:
		return nil
	default:
		return ErrRecorderFull
	}
}

// Close stops accepting turns and waits for the queued ones to be published.
func (r *FeedRecorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *FeedRecorder) run() {
	defer close(r.done)
	for turn := range r.queue {
		if err := r.publish(turn); err != nil {
			log.Warn().Err(err).Str("matchId", turn.MatchID).Int("jersey", turn.Jersey).Msg("Failed to journal turn")
		}
	}
}

func (r *FeedRecorder) publish(turn *model.Turn) error {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	seq, err := r.feed.NextSeq(ctx, turn.MatchID, turn.Jersey)
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	turn.Seq = seq
	if err := r.feed.PublishTurn(ctx, turn, r.keep); err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

func (r *FeedRecorder) toTurn(number int, d bot.Decision) (*model.Turn, error) {
	orders := d.Orders
	if orders == nil {
		orders = []bot.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("marshal orders: %w", err)
	}
	return &model.Turn{
		MatchID:   r.matchID,
		Jersey:    number,
		State:     d.State.String(),
		Orders:    data,
		Skipped:   d.Skipped,
		Reason:    d.Reason,
		DecidedAt: r.now(),
	}, nil
}
