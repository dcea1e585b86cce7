package realtime

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocketServer(t *testing.T, hub *Hub, snapshot SnapshotFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, r.URL.Query().Get("user"), snapshot)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitOnline(t *testing.T, hub *Hub, user string) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.IsOnline(user) }, time.Second, 10*time.Millisecond)
}

func TestHub_InitialEventsArriveFirst(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, func() (Event, []string, error) {
		return Event{Type: EventSnapshot, Data: []string{"n-1"}}, []string{"n-1"}, nil
	})

	conn := dial(t, srv, "u-1")
	waitOnline(t, hub, "u-1")
	require.True(t, hub.SendToUser("u-1", Event{Type: EventAdded, Data: "n-2"}))

	var first, second Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, EventSnapshot, first.Type)
	assert.Equal(t, EventAdded, second.Type)
	assert.Equal(t, "n-2", second.Data)
}

func TestHub_EventsDuringSnapshotAreKeptOnce(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, func() (Event, []string, error) {
		// n-2 lands after registration but before the read; n-3 after the read.
		assert.True(t, hub.IsOnline("u-1"))
		assert.True(t, hub.SendToUser("u-1", Event{Type: EventAdded, Data: "n-2", ID: "n-2"}))
		assert.True(t, hub.SendToUser("u-1", Event{Type: EventAdded, Data: "n-3", ID: "n-3"}))
		return Event{Type: EventSnapshot, Data: []string{"n-2", "n-1"}}, []string{"n-2", "n-1"}, nil
	})

	conn := dial(t, srv, "u-1")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var snap struct {
		Type string   `json:"type"`
		Data []string `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, EventSnapshot, snap.Type)
	assert.Equal(t, []string{"n-2", "n-1"}, snap.Data)

	var next Event
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, EventAdded, next.Type)
	assert.Equal(t, "n-3", next.Data)

	require.True(t, hub.SendToUser("u-1", Event{Type: EventAdded, Data: "n-4", ID: "n-4"}))
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, "n-4", next.Data)
}

func TestHub_SnapshotErrorClosesSocket(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, func() (Event, []string, error) {
		return Event{}, nil, errors.New("db down")
	})

	conn := dial(t, srv, "u-1")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr))
	assert.False(t, hub.IsOnline("u-1"))
}

func TestHub_EveryTabReceives(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, nil)

	a := dial(t, srv, "u-1")
	b := dial(t, srv, "u-1")
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.connections["u-1"]) == 2
	}, time.Second, 10*time.Millisecond)

	require.True(t, hub.SendToUser("u-1", Event{Type: EventChatMessage, Data: "hi"}))
	for _, conn := range []*websocket.Conn{a, b} {
		var ev Event
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, EventChatMessage, ev.Type)
	}
}

func TestHub_OfflineUserIsNotDelivered(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.IsOnline("nobody"))
	assert.False(t, hub.SendToUser("nobody", Event{Type: EventAdded}))
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, nil)

	conn := dial(t, srv, "u-1")
	waitOnline(t, hub, "u-1")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return !hub.IsOnline("u-1") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.OnlineCount())
}

func TestHub_CloseDropsSockets(t *testing.T) {
	hub := NewHub()
	srv := newSocketServer(t, hub, nil)

	conn := dial(t, srv, "u-1")
	waitOnline(t, hub, "u-1")
	hub.Close()

	assert.False(t, hub.IsOnline("u-1"))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
