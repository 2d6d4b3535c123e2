package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"heartlink-dating-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowAll struct{}

func (allowAll) IsParticipant(ctx context.Context, matchID, userID string) (bool, error) {
	return true, nil
}

func newTestClient(hub *Hub, userID string, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		userID: userID,
	}
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func expectNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case payload, ok := <-client.send:
		if ok {
			t.Fatalf("unexpected event: %s", payload)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func expectClosed(t *testing.T, client *Client) {
	t.Helper()
	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHub_SubscribeAndBroadcast(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	client := newTestClient(hub, "user-1", 8)
	hub.register <- subscription{client: client, matchID: "match-1"}

	message := &models.Message{ID: "msg-1", MatchID: "match-1", SenderID: "user-2", Content: "hi"}
	hub.BroadcastNewMessage("match-1", message)

	event := receiveEvent(t, client)
	assert.Equal(t, EventNewMessage, event.Type)
	assert.Equal(t, "match-1", event.MatchID)
	require.NotNil(t, event.Message)
	assert.Equal(t, "hi", event.Message.Content)
}

func TestHub_BroadcastOnlyReachesSubscribedMatch(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	subscribed := newTestClient(hub, "user-1", 8)
	other := newTestClient(hub, "user-2", 8)
	hub.register <- subscription{client: subscribed, matchID: "match-1"}
	hub.register <- subscription{client: other, matchID: "match-2"}

	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-1", MatchID: "match-1"})

	receiveEvent(t, subscribed)
	expectNoEvent(t, other)
}

func TestHub_ResubscribeSwitchesMatch(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	client := newTestClient(hub, "user-1", 8)
	hub.register <- subscription{client: client, matchID: "match-1"}
	hub.register <- subscription{client: client, matchID: "match-2"}

	hub.BroadcastNewMessage("match-1", &models.Message{ID: "old", MatchID: "match-1"})
	hub.BroadcastNewMessage("match-2", &models.Message{ID: "new", MatchID: "match-2"})

	event := receiveEvent(t, client)
	assert.Equal(t, "match-2", event.MatchID)
	expectNoEvent(t, client)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	client := newTestClient(hub, "user-1", 8)
	hub.register <- subscription{client: client, matchID: "match-1"}
	hub.unregister <- client

	expectClosed(t, client)

	// Broadcasting after unregister must not panic or deliver.
	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-1", MatchID: "match-1"})
}

func TestHub_SlowConsumerIsDropped(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	slow := newTestClient(hub, "user-1", 0)
	healthy := newTestClient(hub, "user-2", 8)
	hub.register <- subscription{client: slow, matchID: "match-1"}
	hub.register <- subscription{client: healthy, matchID: "match-1"}

	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-1", MatchID: "match-1"})

	receiveEvent(t, healthy)
	expectClosed(t, slow)

	// A second unregister for the dropped client is a no-op.
	hub.unregister <- slow
}

func TestHub_DroppedClientCannotResubscribe(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	slow := newTestClient(hub, "user-1", 0)
	healthy := newTestClient(hub, "user-2", 8)
	hub.register <- subscription{client: slow, matchID: "match-1"}
	hub.register <- subscription{client: healthy, matchID: "match-1"}

	// Overflow the slow client's send buffer so the hub drops it.
	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-1", MatchID: "match-1"})
	receiveEvent(t, healthy)
	expectClosed(t, slow)

	// Its readPump may still have a subscribe frame in flight. The hub must
	// ignore it; re-admitting would make the next broadcast send on the
	// closed channel and panic the run loop.
	hub.register <- subscription{client: slow, matchID: "match-1"}

	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-2", MatchID: "match-1"})
	event := receiveEvent(t, healthy)
	assert.Equal(t, "msg-2", event.Message.ID)
}

func TestHub_UnregisteredClientCannotResubscribe(t *testing.T) {
	hub := NewHub(allowAll{})
	go hub.Run()

	client := newTestClient(hub, "user-1", 8)
	healthy := newTestClient(hub, "user-2", 8)
	hub.register <- subscription{client: client, matchID: "match-1"}
	hub.register <- subscription{client: healthy, matchID: "match-1"}
	hub.unregister <- client
	expectClosed(t, client)

	hub.register <- subscription{client: client, matchID: "match-1"}

	hub.BroadcastNewMessage("match-1", &models.Message{ID: "msg-1", MatchID: "match-1"})
	event := receiveEvent(t, healthy)
	assert.Equal(t, "msg-1", event.Message.ID)
}
