package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/freeeve/lugo-striker/internal/model"
)

type mockTurnFeed struct {
	mu        sync.Mutex
	seqs      map[string]int64
	published []model.Turn
	keeps     []int64
	ch        chan model.Turn
	err       error
}

func newMockTurnFeed() *mockTurnFeed {
	return &mockTurnFeed{seqs: make(map[string]int64), ch: make(chan model.Turn, 16)}
}

func (m *mockTurnFeed) NextSeq(_ context.Context, matchID string, jersey int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	key := matchID + "/" + strconv.Itoa(jersey)
	m.seqs[key]++
	return m.seqs[key], nil
}

func (m *mockTurnFeed) PublishTurn(_ context.Context, turn *model.Turn, keep int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, *turn)
	m.keeps = append(m.keeps, keep)
	return nil
}

func (m *mockTurnFeed) RecentTurns(context.Context, string, int, int64) ([]model.Turn, error) {
	return nil, nil
}

func (m *mockTurnFeed) SubscribeTurns(context.Context) <-chan model.Turn {
	return m.ch
}

type mockTurnRepo struct {
	mu    sync.Mutex
	saved []model.Turn
	err   error
}

func (m *mockTurnRepo) Save(_ context.Context, t *model.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *t)
	return nil
}

func (m *mockTurnRepo) ListByMatch(context.Context, string, int, int) ([]model.Turn, error) {
	return nil, errors.New("not implemented")
}

func (m *mockTurnRepo) Summary(context.Context, string) (*model.MatchSummary, error) {
	return nil, errors.New("not implemented")
}

type broadcastCall struct {
	matchID   string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (m *mockBroadcaster) BroadcastMatchEvent(matchID, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, broadcastCall{matchID, eventType, data})
}

func (m *mockBroadcaster) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
