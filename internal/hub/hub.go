package hub

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// queueSize is each subscriber's buffer; events beyond it are dropped rather
// than blocking the publisher.
const queueSize = 100

// Event is one notification delivered to subscribers.
type Event struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
	TS     int64  `json:"ts"`
}

// Subscription is one registered listener, scoped to a set of game ids.
type Subscription struct {
	ID string

	gameIDs map[string]struct{}
	events  chan Event
}

// Events is the subscriber's receive channel. It is never closed; after
// Unsubscribe it simply stops receiving.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Hub fans out game-update notifications to in-process subscribers.
type Hub struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[string]*Subscription
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		subs:   make(map[string]*Subscription),
	}
}

// Subscribe registers a listener for the given game ids. A subscription
// only receives events for ids in its set; an empty set receives nothing.
func (h *Hub) Subscribe(gameIDs []string) *Subscription {
	sub := &Subscription{
		ID:      uuid.NewString(),
		gameIDs: make(map[string]struct{}, len(gameIDs)),
		events:  make(chan Event, queueSize),
	}
	for _, id := range gameIDs {
		if id != "" {
			sub.gameIDs[id] = struct{}{}
		}
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes a listener. Unknown ids are a no-op. The channel is
// left open so concurrent publishes can never panic.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

// PublishGameUpdated notifies every subscriber interested in gameID. The
// registry is snapshotted under the lock and delivery happens outside it,
// non-blocking per subscriber: a full buffer misses the event.
func (h *Hub) PublishGameUpdated(gameID string) {
	event := Event{
		Type:   "game_updated",
		GameID: gameID,
		TS:     time.Now().Unix(),
	}

	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if _, ok := sub.gameIDs[gameID]; !ok {
			continue
		}
		select {
		case sub.events <- event:
		default:
			h.logger.Debug("subscriber queue full, dropping event",
				"subscription_id", sub.ID,
				"game_id", gameID,
			)
		}
	}
}

// Count returns the number of active subscriptions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
