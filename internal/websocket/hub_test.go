package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"greenpatch/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(hub *Hub, name string) *Client {
	return &Client{Hub: hub, ID: uuid.New(), Name: name, Send: make(chan []byte, 8)}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no message for %s", c.Name)
		return nil
	}
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	a := testClient(hub, "Meera P.")
	b := testClient(hub, "Arun K.")
	hub.Register <- a
	hub.Register <- b
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Publish(models.FeedEvent{Type: models.EventPostDeleted, PostID: 3})

	for _, c := range []*Client{a, b} {
		var event models.FeedEvent
		require.NoError(t, json.Unmarshal(receive(t, c), &event))
		assert.Equal(t, models.EventPostDeleted, event.Type)
		assert.Equal(t, int64(3), event.PostID)
	}
}

func TestHubNotifiesPostAuthor(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	author := testClient(hub, "Meera P.")
	voter := testClient(hub, "Arun K.")
	hub.Register <- author
	hub.Register <- voter
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, time.Second, 5*time.Millisecond)

	post := models.Post{ID: 1, User: "Meera P."}
	hub.Publish(models.FeedEvent{Type: models.EventPostUpdated, PostID: 1, Actor: "Arun K.", Post: &post})

	receive(t, voter) // broadcast only

	// broadcast and direct queues are drained independently
	var note Notification
	for i := 0; i < 2; i++ {
		var msg Notification
		require.NoError(t, json.Unmarshal(receive(t, author), &msg))
		if msg.Type == "notification" {
			note = msg
		}
	}
	assert.Equal(t, Notification{Type: "notification", Event: models.EventPostUpdated, PostID: 1, From: "Arun K."}, note)

	select {
	case msg := <-voter.Send:
		t.Fatalf("voter got unexpected message %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyAuthorSkipsSelfEngagement(t *testing.T) {
	post := models.Post{ID: 1, User: "Meera P."}
	_, ok := notifyAuthor(models.FeedEvent{Type: models.EventPostUpdated, Actor: "Meera P.", Post: &post})
	assert.False(t, ok)
	_, ok = notifyAuthor(models.FeedEvent{Type: models.EventPostCreated, Actor: "Arun K.", Post: &post})
	assert.False(t, ok)
	name, ok := notifyAuthor(models.FeedEvent{Type: models.EventPostUpdated, Actor: "Arun K.", Post: &post})
	assert.True(t, ok)
	assert.Equal(t, "Meera P.", name)
}

func TestHubUnregisterAndClose(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := testClient(hub, "Kumar V.")
	hub.Register <- c
	hub.Unregister <- c
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)

	d := testClient(hub, "Raj M.")
	hub.Register <- d
	hub.Close()
	hub.Close()
	require.Eventually(t, func() bool {
		select {
		case _, open := <-d.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
