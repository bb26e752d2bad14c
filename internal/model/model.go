package model

import (
	"encoding/json"
	"time"
)

// Turn is one journaled decision of one player.
type Turn struct {
	MatchID   string          `json:"match_id"`
	Jersey    int             `json:"jersey"`
	Seq       int64           `json:"seq"`
	State     string          `json:"state"`
	Orders    json.RawMessage `json:"orders"`
	Skipped   bool            `json:"skipped"`
	Reason    string          `json:"reason,omitempty"`
	DecidedAt time.Time       `json:"decided_at"`
}

// JerseySummary aggregates the journal of one player in a match.
type JerseySummary struct {
	Jersey  int `json:"jersey"`
	Turns   int `json:"turns"`
	Skipped int `json:"skipped"`
}

// MatchSummary aggregates the journal of a whole match.
type MatchSummary struct {
	MatchID string          `json:"match_id"`
	Jerseys []JerseySummary `json:"jerseys"`
}

// SkipRate returns the fraction of skipped turns across the match.
func (s *MatchSummary) SkipRate() float64 {
	var turns, skipped int
	for _, j := range s.Jerseys {
		turns += j.Turns
		skipped += j.Skipped
	}
	if turns == 0 {
		return 0
	}
	return float64(skipped) / float64(turns)
}
