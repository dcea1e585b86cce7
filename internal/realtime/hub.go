package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 256
)

// Upgrader is shared by every socket endpoint. Origins are checked by the CORS layer.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	EventSnapshot    = "snapshot"
	EventAdded       = "added"
	EventChatMessage = "chat_message"
	EventChatDeleted = "chat_deleted"
)

// Event is a message pushed to a client socket. ID names the payload so a
// connecting socket can drop live events its snapshot already carries.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
	ID   string `json:"-"`
}

// SnapshotFunc returns the first frame of a socket and the IDs it covers.
type SnapshotFunc func() (Event, []string, error)

type heldEvent struct {
	id   string
	data []byte
}

type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte

	mu   sync.Mutex
	live bool
	held []heldEvent
}

// enqueue holds events until the snapshot is out. Callers hold the hub read lock.
func (c *connection) enqueue(id string, data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live {
		if len(c.held) >= sendBuffer {
			return false
		}
		c.held = append(c.held, heldEvent{id: id, data: data})
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Hub tracks live sockets per user. A user may hold several at once (one per tab).
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{connections: make(map[string]map[*connection]struct{})}
}

func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.connections[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.connections[c.userID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.connections, c.userID)
	}
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID]) > 0
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// SendToUser queues ev on every socket of userID and reports whether any accepted it.
// Sockets with a full buffer are skipped.
func (h *Hub) SendToUser(userID string, ev Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("hub_error type=%s user_id=%s error=%q", ev.Type, userID, err.Error())
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := false
	for c := range h.connections[userID] {
		if c.enqueue(ev.ID, data) {
			delivered = true
		} else {
			log.Printf("hub_slow_consumer type=%s user_id=%s", ev.Type, userID)
		}
	}
	return delivered
}

// release queues the snapshot, then the events held since registration minus
// those whose ID the snapshot covers. It reports false if c was dropped meanwhile.
func (h *Hub) release(c *connection, first []byte, covered []string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.connections[c.userID][c]; !ok {
		return false
	}

	seen := make(map[string]struct{}, len(covered))
	for _, id := range covered {
		seen[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if first != nil {
		c.send <- first
	}
	for _, ev := range c.held {
		if _, dup := seen[ev.id]; dup && ev.id != "" {
			continue
		}
		select {
		case c.send <- ev.data:
		default:
			log.Printf("hub_slow_consumer user_id=%s", c.userID)
		}
	}
	c.held = nil
	c.live = true
	return true
}

// Serve registers conn for userID, then sends the snapshot ahead of any event
// that arrived while it was being read, and blocks until the socket closes.
// Events sent during that window count as delivered. snapshot may be nil.
func (h *Hub) Serve(conn *websocket.Conn, userID string, snapshot SnapshotFunc) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer+1),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	var first []byte
	var covered []string
	if snapshot != nil {
		ev, ids, err := snapshot()
		if err == nil {
			first, err = json.Marshal(ev)
		}
		if err != nil {
			log.Printf("hub_snapshot_error user_id=%s error=%q", userID, err.Error())
			h.unregister(c)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot failed"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}
		covered = ids
	}
	if !h.release(c, first, covered) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Close drops every socket. Serve refuses new ones afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for userID, set := range h.connections {
		for c := range set {
			close(c.send)
		}
		delete(h.connections, userID)
	}
}

// readPump only services control frames. Clients talk to the REST API.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("hub_read_error user_id=%s error=%q", c.userID, err.Error())
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
