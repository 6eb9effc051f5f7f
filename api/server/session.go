package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/protocol"
	"github.com/lumenchat/lumen/pkg/metrics"
)

// Collaborator interfaces the session consumes. The store satisfies the
// first three; the gemini client satisfies the fourth.
type (
	TicketConsumer interface {
		ConsumeTicket(ctx context.Context, token string) (int64, error)
	}
	ThreadReader interface {
		GetThreadByUser(ctx context.Context, id, userID int64) (*domain.Thread, error)
	}
	MessageWriter interface {
		CreateMessage(ctx context.Context, msg *domain.Message) error
	}
	Generator interface {
		Generate(ctx context.Context, prompt string) (string, error)
	}
)

type sessionState int

const (
	stateHandshaking sessionState = iota
	stateOpen
	stateClosed
)

// session drives one connection's chat turns: validate ownership, persist
// the user message, request a reply, persist it, and relay both through
// the hub. Frames are handled strictly one at a time.
type session struct {
	conn      *Conn
	userID    int64
	hub       *Hub
	threads   ThreadReader
	messages  MessageWriter
	generator Generator
	state     sessionState
}

func newSession(conn *Conn, hub *Hub, threads ThreadReader, messages MessageWriter, generator Generator) *session {
	return &session{
		conn:      conn,
		userID:    conn.UserID(),
		hub:       hub,
		threads:   threads,
		messages:  messages,
		generator: generator,
		state:     stateOpen,
	}
}

// handleFrame processes one inbound frame. A returned error is fatal for
// the connection: the caller transitions to Closed and tears down.
// Recoverable failures are reported to the client as error events and
// return nil.
func (s *session) handleFrame(ctx context.Context, data []byte) error {
	if s.state != stateOpen {
		return fmt.Errorf("frame received in state %d", s.state)
	}

	var frame protocol.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("parse frame: %w", err)
	}

	if frame.IsPong() {
		return nil
	}

	return s.chatTurn(ctx, &frame)
}

func (s *session) chatTurn(ctx context.Context, frame *protocol.Frame) error {
	if _, err := s.threads.GetThreadByUser(ctx, frame.ThreadID, s.userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Ownership failure goes to the offending connection only,
			// never to siblings.
			if werr := s.conn.WriteEvent(protocol.NewErrorEvent("Thread not found")); werr != nil {
				return fmt.Errorf("send ownership error: %w", werr)
			}
			return nil
		}
		return fmt.Errorf("validate thread: %w", err)
	}

	userMsg := &domain.Message{
		ThreadID: frame.ThreadID,
		Content:  frame.Content,
		IsBot:    false,
	}
	if err := s.messages.CreateMessage(ctx, userMsg); err != nil {
		return fmt.Errorf("persist user message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues("user").Inc()

	// Other open devices see the user's own message too.
	s.hub.BroadcastToUser(s.userID, protocol.NewMessageEvent(userMsg))

	reply, err := s.generator.Generate(ctx, frame.Content)
	if err != nil {
		slog.Warn("ws: generation failed", "error", err, "user_id", s.userID, "thread_id", frame.ThreadID)
		// The user message above stays persisted; no rollback.
		s.hub.BroadcastToUser(s.userID, protocol.NewErrorEvent("Failed to get bot response"))
		return nil
	}

	botMsg := &domain.Message{
		ThreadID: frame.ThreadID,
		Content:  reply,
		IsBot:    true,
	}
	if err := s.messages.CreateMessage(ctx, botMsg); err != nil {
		return fmt.Errorf("persist bot message: %w", err)
	}
	metrics.MessagesTotal.WithLabelValues("bot").Inc()

	s.hub.BroadcastToUser(s.userID, protocol.NewMessageEvent(botMsg))
	return nil
}

func (s *session) close() {
	s.state = stateClosed
}
