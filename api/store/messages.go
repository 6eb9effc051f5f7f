package store

import (
	"context"
	"fmt"

	"github.com/lumenchat/lumen/api/domain"
)

// CreateMessage appends a message to a thread. The database assigns the
// identity and timestamp; both are filled into msg before returning, so
// callers never relay a placeholder.
func (s *Store) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (thread_id, content, is_bot)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := s.conn(ctx).QueryRow(ctx, query, msg.ThreadID, msg.Content, msg.IsBot).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListMessages returns all messages in a thread in insertion order.
func (s *Store) ListMessages(ctx context.Context, threadID int64) ([]*domain.Message, error) {
	query := `
		SELECT id, thread_id, content, is_bot, created_at
		FROM messages
		WHERE thread_id = $1
		ORDER BY id`

	rows, err := s.conn(ctx).Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		msg := &domain.Message{}
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Content, &msg.IsBot, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}
