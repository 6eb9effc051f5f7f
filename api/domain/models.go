package domain

import "time"

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Email          string    `json:"email"`
	AuthProvider   string    `json:"auth_provider"`
	ProviderUserID string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

type Thread struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is an append-only entry in a thread. ID and CreatedAt are
// assigned by the database at persistence time.
type Message struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	CreatedAt time.Time `json:"created_at"`
}

// Ticket is a single-use, time-limited credential binding a websocket
// connection attempt to a user. It is consumed exactly once, atomically,
// at handshake time.
type Ticket struct {
	Token     string    `json:"ticket"`
	UserID    int64     `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

const (
	AuthProviderGoogle = "google"
	AuthProviderApple  = "apple"
)
