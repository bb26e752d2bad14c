package service

// EventTurnDecided is broadcast for every relayed turn.
const EventTurnDecided = "turn_decided"

// Broadcaster sends real-time events to connected spectators.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastMatchEvent(matchID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastMatchEvent(string, string, any) {}
