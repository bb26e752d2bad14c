package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/model"
)

// turnsPattern matches the per-match channels turns are published on.
const turnsPattern = "match:*:turns"

// Key patterns for the live feed.
func recentKey(matchID string, jersey int) string {
	return "match:" + matchID + ":jersey:" + strconv.Itoa(jersey) + ":turns"
}
func seqKey(matchID string, jersey int) string {
	return "match:" + matchID + ":jersey:" + strconv.Itoa(jersey) + ":seq"
}
func turnsChannel(matchID string) string { return "match:" + matchID + ":turns" }

// NextSeq returns the next turn sequence number of a player in a match.
func (c *Client) NextSeq(ctx context.Context, matchID string, jersey int) (int64, error) {
	seq, err := c.rdb.Incr(ctx, seqKey(matchID, jersey)).Result()
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

// PublishTurn pushes the turn onto the player's recent list, trims the list
// to keep entries and publishes it on the match channel, in one transaction.
func (c *Client) PublishTurn(ctx context.Context, turn *model.Turn, keep int64) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := recentKey(turn.MatchID, turn.Jersey)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		if keep > 0 {
			pipe.LTrim(ctx, key, 0, keep-1)
		}
		pipe.Publish(ctx, turnsChannel(turn.MatchID), data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to n of the latest turns of a player, newest first.
func (c *Client) RecentTurns(ctx context.Context, matchID string, jersey int, n int64) ([]model.Turn, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := c.rdb.LRange(ctx, recentKey(matchID, jersey), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent turns: %w", err)
	}
	turns := make([]model.Turn, 0, len(raw))
	for _, r := range raw {
		var t model.Turn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// SubscribeTurns streams turns published for any match until ctx is done.
// Payloads that fail to decode are logged and dropped.
func (c *Client) SubscribeTurns(ctx context.Context) <-chan model.Turn {
	pubsub := c.rdb.PSubscribe(ctx, turnsPattern)
	out := make(chan model.Turn, 64)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var t model.Turn
				if err := json.Unmarshal([]byte(msg.Payload), &t); err != nil {
					log.Warn().Err(err).Str("channel", msg.Channel).Msg("Dropping undecodable turn")
					continue
				}
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
