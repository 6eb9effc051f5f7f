package server

import (
	"encoding/json"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lumenchat/lumen/api/protocol"
	"github.com/lumenchat/lumen/pkg/metrics"
)

// transport is the subset of *websocket.Conn the session layer writes
// through. Tests substitute a fake.
type transport interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Conn is one open device connection bound to a user. Writes are
// serialized so the relay and the keepalive prober never interleave a
// frame on the wire.
type Conn struct {
	userID       int64
	sock         transport
	writeTimeout time.Duration

	mu     sync.Mutex
	closed atomic.Bool
}

func newConn(userID int64, sock transport, writeTimeout time.Duration) *Conn {
	return &Conn{userID: userID, sock: sock, writeTimeout: writeTimeout}
}

func (c *Conn) UserID() int64 {
	return c.userID
}

// WriteEvent marshals the event and sends it as one text frame under the
// write deadline.
func (c *Conn) WriteEvent(event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return net.ErrClosed
	}
	c.sock.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.sock.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying socket once; later calls are no-ops.
func (c *Conn) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		return c.sock.Close()
	}
	return nil
}

func (c *Conn) Closed() bool {
	return c.closed.Load()
}

// Hub is the process-wide connection registry: user ID to the set of that
// user's live connections. All mutation goes through Register/Unregister;
// the raw map is never handed out.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]map[*Conn]struct{})}
}

// Register adds the connection to its user's set. Registering an
// already-present connection is a no-op.
func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.conns[c.userID]
	if set == nil {
		set = make(map[*Conn]struct{})
		h.conns[c.userID] = set
	}
	if _, ok := set[c]; ok {
		return
	}
	set[c] = struct{}{}
	metrics.ConnectionsActive.Inc()
	slog.Info("ws: connected", "user_id", c.userID, "total", len(set))
}

// Unregister removes the connection; the user's entry disappears with its
// last connection. Unregistering an unknown connection is a no-op.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, c.userID)
	}
	metrics.ConnectionsActive.Dec()
	slog.Info("ws: disconnected", "user_id", c.userID, "remaining", len(set))
}

// ConnectionsFor returns a snapshot of the user's live connections.
func (h *Hub) ConnectionsFor(userID int64) []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]*Conn, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		conns = append(conns, c)
	}
	return conns
}

// BroadcastToUser delivers the event to every connection the user has
// open. A failed delivery does not stall the siblings; connections that
// fail are torn down after the loop completes.
func (h *Hub) BroadcastToUser(userID int64, event any) {
	conns := h.ConnectionsFor(userID)

	var dead []*Conn
	for _, c := range conns {
		if err := c.WriteEvent(event); err != nil {
			slog.Warn("ws: broadcast error (client likely disconnected)", "error", err, "user_id", userID)
			dead = append(dead, c)
			continue
		}
		metrics.EventsRelayed.WithLabelValues(eventType(event)).Inc()
	}

	for _, c := range dead {
		h.Unregister(c)
		c.Close()
	}
}

func eventType(event any) string {
	switch event.(type) {
	case protocol.PingEvent:
		return protocol.EventTypePing
	case protocol.MessageEvent:
		return protocol.EventTypeMessage
	case protocol.ErrorEvent:
		return protocol.EventTypeError
	default:
		return "other"
	}
}
