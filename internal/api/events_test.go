package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scorepad/internal/model"
)

func dialEvents(t *testing.T, ts *testServer) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(ts.handler)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/session/events"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) model.SessionEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event model.SessionEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestSessionEventsStream(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.createPlayer("Alice")
	bob := ts.createPlayer("Bob")

	conn := dialEvents(t, ts)

	snapshot := readEvent(t, conn)
	assert.Equal(t, model.EventSessionSnapshot, snapshot.Type)
	assert.Nil(t, snapshot.Game)
	assert.Empty(t, snapshot.Totals)

	// The client is registered with the hub after the snapshot is queued
	require.Eventually(t, func() bool {
		return ts.app.Events.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	ts.startGame("1", alice, bob)

	started := readEvent(t, conn)
	assert.Equal(t, model.EventSessionStarted, started.Type)
	require.NotNil(t, started.Game)
	assert.Len(t, started.Game.Players, 2)

	rr := ts.score(0, 1, "7")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	updated := readEvent(t, conn)
	assert.Equal(t, model.EventScoreUpdated, updated.Type)
	assert.Equal(t, []float64{0, 7}, updated.Totals)

	rr = ts.request(http.MethodPost, "/api/v1/session/finish", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	finished := readEvent(t, conn)
	assert.Equal(t, model.EventSessionFinished, finished.Type)
	require.NotNil(t, finished.Game)
	assert.True(t, finished.Game.IsFinished)
}

func TestSessionEventsRequiresUpgrade(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/session/events", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
