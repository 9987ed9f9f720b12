package ws

import (
	"log"
	"sync"

	"github.com/katarmal-ram/huntqr/internal/models"
)

const (
	EventSessionCreated = "session_created"
	EventSessionStarted = "session_started"
	EventSessionEnded   = "session_ended"
	EventPlayerJoined   = "player_joined"
	EventScanCompleted  = "scan_completed"
)

// Event is the wire message pushed to observers. Subscribers filter by
// sessionId and refresh whatever entities the type implicates; scan_completed
// carries the updated standings so no second round-trip is needed.
type Event struct {
	SessionID string          `json:"sessionId"`
	Type      string          `json:"type"`
	Session   *models.Session `json:"session,omitempty"`
	Player    *models.Player  `json:"player,omitempty"`
	Scan      *models.Scan    `json:"scan,omitempty"`
	Teams     []models.Team   `json:"teams,omitempty"`
}

// subscriberBuffer bounds how far an observer may fall behind before events
// are dropped for it.
const subscriberBuffer = 32

type Subscriber struct {
	sessionID string
	events    chan Event
}

// Events is the subscriber's receive channel. It is closed on Unsubscribe.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Hub fans state-change events out to all observers of a session. Publishing
// never blocks: a subscriber whose buffer is full misses the event and is
// expected to reconcile with a fresh read after reconnecting. There is no
// replay; observers joining later only see future events.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Subscriber]struct{}),
	}
}

func (h *Hub) Subscribe(sessionID string) *Subscriber {
	sub := &Subscriber{
		sessionID: sessionID,
		events:    make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Subscriber]struct{})
	}
	h.sessions[sessionID][sub] = struct{}{}
	log.Printf("ws: observer subscribed to session %s (total: %d)", sessionID, len(h.sessions[sessionID]))
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.sessions[sub.sessionID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.events)
	if len(subs) == 0 {
		delete(h.sessions, sub.sessionID)
	}
	log.Printf("ws: observer left session %s", sub.sessionID)
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.sessions[event.SessionID] {
		select {
		case sub.events <- event:
		default:
			log.Printf("ws: dropping %s event for slow observer of session %s", event.Type, event.SessionID)
		}
	}
}
