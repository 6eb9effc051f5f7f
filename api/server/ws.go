package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lumenchat/lumen/api/config"
	"github.com/lumenchat/lumen/api/protocol"
	"github.com/lumenchat/lumen/pkg/metrics"
)

// Frame handling is detached from the connection context so a chat turn
// mid-generation still persists if the client drops.
const frameTimeout = 5 * time.Minute

// ChatDeps are the external collaborators of the websocket layer.
type ChatDeps struct {
	Tickets   TicketConsumer
	Threads   ThreadReader
	Messages  MessageWriter
	Generator Generator
}

type WSHandler struct {
	hub      *Hub
	cfg      *config.Config
	deps     ChatDeps
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, cfg *config.Config, deps ChatDeps) *WSHandler {
	h := &WSHandler{hub: hub, cfg: cfg, deps: deps}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	allowedOrigins := h.cfg.Server.AllowedOrigins
	for _, o := range allowedOrigins {
		if o == "*" {
			return true
		}
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return h.cfg.Server.AllowEmptyOrigin
	}
	for _, allowed := range allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// ServeHTTP runs one connection's whole lifetime: ticket handshake,
// registration, keepalive prober, frame loop, teardown.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("ws: upgrade error", "error", err)
		return
	}

	ticket := chi.URLParam(r, "ticket")
	userID, err := h.deps.Tickets.ConsumeTicket(r.Context(), ticket)
	if err != nil {
		slog.Warn("ws: handshake rejected", "error", err)
		metrics.HandshakesTotal.WithLabelValues("rejected").Inc()
		// No identity is bound yet, so there is no error event to send;
		// the close code is the whole answer.
		deadline := time.Now().Add(h.cfg.Chat.WriteTimeout)
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "")
		_ = sock.WriteControl(websocket.CloseMessage, msg, deadline)
		sock.Close()
		return
	}
	metrics.HandshakesTotal.WithLabelValues("accepted").Inc()

	conn := newConn(userID, sock, h.cfg.Chat.WriteTimeout)
	h.hub.Register(conn)

	sess := newSession(conn, h.hub, h.deps.Threads, h.deps.Messages, h.deps.Generator)
	done := make(chan struct{})
	go h.keepalive(conn, done)

	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("ws: read error", "error", err, "user_id", userID)
			}
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
		err = sess.handleFrame(ctx, data)
		cancel()
		if err != nil {
			slog.Error("ws: fatal frame error", "error", err, "user_id", userID)
			break
		}
	}

	// Single teardown path: the prober stops, the registry entry goes,
	// and the socket closes from this side if still open.
	sess.close()
	close(done)
	h.hub.Unregister(conn)
	conn.Close()
}

// keepalive probes the connection with a ping event every interval. A
// failed probe means the peer vanished without a clean close; the
// connection is reclaimed here.
func (h *WSHandler) keepalive(c *Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.Chat.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.WriteEvent(protocol.NewPingEvent()); err != nil {
				slog.Info("ws: keepalive probe failed, reclaiming connection", "user_id", c.UserID(), "error", err)
				h.hub.Unregister(c)
				c.Close()
				return
			}
		}
	}
}
