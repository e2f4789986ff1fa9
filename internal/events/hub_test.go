package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/testutil"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, sendBufferSize), connectedAt: time.Now()}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func receive(t *testing.T, c *Client) model.SessionEvent {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "client channel closed")
		var event model.SessionEvent
		require.NoError(t, json.Unmarshal(msg, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return model.SessionEvent{}
	}
}

func TestHubPublishReachesAllClients(t *testing.T) {
	hub := startHub(t)
	a, b := newTestClient(), newTestClient()
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))

	hub.Publish(model.SessionEvent{Type: model.EventScoreUpdated, Totals: []float64{1, 2}})

	for _, c := range []*Client{a, b} {
		event := receive(t, c)
		assert.Equal(t, model.EventScoreUpdated, event.Type)
		assert.Equal(t, []float64{1, 2}, event.Totals)
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := newTestClient()
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)

	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	c := newTestClient()
	require.True(t, hub.Register(c))

	hub.Close()
	hub.Close()
	<-stopped

	_, ok := <-c.send
	assert.False(t, ok)
	assert.False(t, hub.Register(newTestClient()))
	hub.Unregister(c)
}

func TestCancelledEventEncodesEmptyTotals(t *testing.T) {
	data, err := encodeEvent(model.SessionEvent{Type: model.EventSessionCancelled})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"session.cancelled","totals":[]}`, string(data))
}
