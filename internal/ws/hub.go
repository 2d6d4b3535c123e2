// Package ws delivers realtime chat events over websockets. Clients connect
// once and subscribe to the match conversation they are viewing; new
// messages in that match are pushed as they are persisted.
package ws

import (
	"context"
	"encoding/json"

	"heartlink-dating-app/internal/models"

	"github.com/sirupsen/logrus"
)

// EventNewMessage is pushed to subscribers when a message lands in their
// subscribed match.
const EventNewMessage = "new_message"

// Event is the server-to-client websocket frame.
type Event struct {
	Type    string          `json:"type"`
	MatchID string          `json:"matchId"`
	Message *models.Message `json:"message,omitempty"`
}

// Authorizer decides whether a user may subscribe to a match conversation.
type Authorizer interface {
	IsParticipant(ctx context.Context, matchID, userID string) (bool, error)
}

type subscription struct {
	client  *Client
	matchID string
}

// Hub routes match events to subscribed clients. All subscription state is
// owned by the Run goroutine; other goroutines communicate over channels.
type Hub struct {
	auth Authorizer

	// matchID -> subscribed clients
	subscribers map[string]map[*Client]bool

	register   chan subscription
	unregister chan *Client
	broadcast  chan Event
}

func NewHub(auth Authorizer) *Hub {
	return &Hub{
		auth:        auth,
		subscribers: make(map[string]map[*Client]bool),
		register:    make(chan subscription),
		unregister:  make(chan *Client),
		broadcast:   make(chan Event, 64),
	}
}

// Run processes subscription changes and broadcasts. Call in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.subscribe(sub.client, sub.matchID)

		case client := <-h.unregister:
			h.drop(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// subscribe moves the client onto the given match. A client follows at most
// one match at a time, so any previous subscription is dropped first. A
// client whose send channel is already closed must never be re-admitted:
// its readPump may still deliver subscribe frames after the hub dropped it,
// and delivering to a closed channel would panic the run loop.
func (h *Hub) subscribe(client *Client, matchID string) {
	if client.closed {
		return
	}
	if client.matchID != "" {
		h.remove(client)
	}
	client.matchID = matchID
	if h.subscribers[matchID] == nil {
		h.subscribers[matchID] = make(map[*Client]bool)
	}
	h.subscribers[matchID][client] = true

	logrus.WithFields(logrus.Fields{
		"user_id":  client.userID,
		"match_id": matchID,
	}).Debug("client subscribed")
}

func (h *Hub) remove(client *Client) {
	if client.matchID == "" {
		return
	}
	if set, ok := h.subscribers[client.matchID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.subscribers, client.matchID)
		}
	}
	client.matchID = ""
}

// drop unsubscribes the client and closes its send channel exactly once.
// client.closed is owned by the Run goroutine.
func (h *Hub) drop(client *Client) {
	if client.closed {
		return
	}
	client.closed = true
	h.remove(client)
	close(client.send)
}

func (h *Hub) deliver(event Event) {
	set := h.subscribers[event.MatchID]
	if len(set) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal websocket event")
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			h.drop(client)
		}
	}
}

// BroadcastNewMessage queues a new-message event for the match's
// subscribers. Safe to call from any goroutine.
func (h *Hub) BroadcastNewMessage(matchID string, message *models.Message) {
	h.broadcast <- Event{Type: EventNewMessage, MatchID: matchID, Message: message}
}
