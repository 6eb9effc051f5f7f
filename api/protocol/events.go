// Package protocol defines the JSON wire format spoken over the chat
// websocket: one inbound frame shape and three outbound event shapes.
package protocol

import (
	"time"

	"github.com/lumenchat/lumen/api/domain"
)

// Inbound frame types. A frame without a type is a chat submission.
const FrameTypePong = "pong"

// Outbound event types.
const (
	EventTypePing    = "ping"
	EventTypeMessage = "message"
	EventTypeError   = "error"
)

// Frame is a single inbound client frame. ThreadID and Content are
// required for chat submissions and ignored for liveness acks.
type Frame struct {
	Type     string `json:"type,omitempty"`
	ThreadID int64  `json:"thread_id,omitempty"`
	Content  string `json:"content,omitempty"`
}

// IsPong reports whether the frame is a liveness acknowledgment.
func (f *Frame) IsPong() bool {
	return f.Type == FrameTypePong
}

// PingEvent is the liveness probe. No reply is required.
type PingEvent struct {
	Type string `json:"type"`
}

func NewPingEvent() PingEvent {
	return PingEvent{Type: EventTypePing}
}

// MessageEvent carries a persisted message: its identity and timestamp are
// the database-assigned values, never placeholders.
type MessageEvent struct {
	Type      string    `json:"type"`
	ThreadID  int64     `json:"thread_id"`
	MessageID int64     `json:"message_id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessageEvent(msg *domain.Message) MessageEvent {
	return MessageEvent{
		Type:      EventTypeMessage,
		ThreadID:  msg.ThreadID,
		MessageID: msg.ID,
		Content:   msg.Content,
		IsBot:     msg.IsBot,
		Timestamp: msg.CreatedAt,
	}
}

// ErrorEvent reports a recoverable failure; the connection stays open.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, Message: message}
}
