package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewIsolatedLogger(t.TempDir()+"/hub.log"))
	go hub.Run()
	return hub
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func progressEvent() dto.PipelineProgressEvent {
	return dto.PipelineProgressEvent{
		MeetingId: uuid.New(),
		Stage:     "diarizing",
		Status:    "in_progress",
	}
}

func TestBroadcastDeliversToConnectedClient(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	event := progressEvent()
	hub.Broadcast(event)

	select {
	case data := <-client.Send:
		var envelope struct {
			Type string                    `json:"type"`
			Data dto.PipelineProgressEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &envelope))
		assert.Equal(t, "pipeline_progress", envelope.Type)
		assert.Equal(t, event.MeetingId, envelope.Data.MeetingId)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBroadcastDropsClientWithFullBuffer(t *testing.T) {
	hub := newTestHub(t)

	// No reader and no buffer, so the first delivery already overflows.
	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(progressEvent())

	require.Eventually(t, func() bool { return hub.clientCount() == 0 }, time.Second, 10*time.Millisecond)

	// Send was closed exactly once by the unregister loop
	_, open := <-client.Send
	assert.False(t, open)

	// Further broadcasts after removal must be a no-op, not a panic
	hub.Broadcast(progressEvent())
	hub.Broadcast(progressEvent())
	assert.Equal(t, 0, hub.clientCount())
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	hub.unregister <- client

	require.Eventually(t, func() bool { return hub.clientCount() == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)
}
