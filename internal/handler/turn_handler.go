package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/auth"
	"github.com/freeeve/lugo-striker/internal/model"
	"github.com/freeeve/lugo-striker/internal/repository"
)

// TurnHandler serves the decision journal of a match.
type TurnHandler struct {
	turnRepo   repository.TurnRepository
	feed       repository.TurnFeed
	recentSize int64
}

// NewTurnHandler creates a TurnHandler. recentSize bounds the recent-turns endpoint.
func NewTurnHandler(turnRepo repository.TurnRepository, feed repository.TurnFeed, recentSize int64) *TurnHandler {
	return &TurnHandler{turnRepo: turnRepo, feed: feed, recentSize: recentSize}
}

// ListTurns handles GET /api/v1/matches/{id}/turns?jersey=&limit=.
func (h *TurnHandler) ListTurns(w http.ResponseWriter, r *http.Request) {
	matchID, ok := h.authorizeMatch(w, r)
	if !ok {
		return
	}

	jersey, err := queryInt(r, "jersey")
	if err != nil || jersey < 0 || jersey > 11 {
		writeError(w, http.StatusBadRequest, "invalid jersey")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	turns, err := h.turnRepo.ListByMatch(r.Context(), matchID, jersey, limit)
	if err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("Failed to list turns")
		writeError(w, http.StatusInternalServerError, "failed to list turns")
		return
	}
	if turns == nil {
		turns = []model.Turn{}
	}
	writeJSON(w, http.StatusOK, turns)
}

// Summary handles GET /api/v1/matches/{id}/summary.
func (h *TurnHandler) Summary(w http.ResponseWriter, r *http.Request) {
	matchID, ok := h.authorizeMatch(w, r)
	if !ok {
		return
	}

	s, err := h.turnRepo.Summary(r.Context(), matchID)
	if err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("Failed to summarize match")
		writeError(w, http.StatusInternalServerError, "failed to summarize match")
		return
	}
	if len(s.Jerseys) == 0 {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"match_id":  s.MatchID,
		"jerseys":   s.Jerseys,
		"skip_rate": s.SkipRate(),
	})
}

// RecentTurns handles GET /api/v1/matches/{id}/jerseys/{n}/recent.
// Reads the live feed, newest first.
func (h *TurnHandler) RecentTurns(w http.ResponseWriter, r *http.Request) {
	matchID, ok := h.authorizeMatch(w, r)
	if !ok {
		return
	}

	jersey, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || jersey < 1 || jersey > 11 {
		writeError(w, http.StatusBadRequest, "invalid jersey")
		return
	}

	turns, err := h.feed.RecentTurns(r.Context(), matchID, jersey, h.recentSize)
	if err != nil {
		log.Error().Err(err).Str("matchId", matchID).Int("jersey", jersey).Msg("Failed to read recent turns")
		writeError(w, http.StatusInternalServerError, "failed to read recent turns")
		return
	}
	if turns == nil {
		turns = []model.Turn{}
	}
	writeJSON(w, http.StatusOK, turns)
}

// authorizeMatch returns the path match ID when the caller's token covers it.
func (h *TurnHandler) authorizeMatch(w http.ResponseWriter, r *http.Request) (string, bool) {
	matchID := r.PathValue("id")
	if matchID == "" {
		writeError(w, http.StatusBadRequest, "missing match id")
		return "", false
	}
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil && !claims.CanWatch(matchID) {
		log.Warn().Str("viewerId", auth.ViewerIDFromContext(r.Context())).Str("matchId", matchID).Msg("Viewer outside token scope")
		writeError(w, http.StatusForbidden, auth.ErrMatchDenied.Error())
		return "", false
	}
	return matchID, true
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
