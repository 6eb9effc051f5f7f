package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/shared/id"
)

// CreateTicket issues a single-use websocket ticket for a user. Expired
// rows are purged in the same transaction, so the table only ever grows
// by live tickets.
func (s *Store) CreateTicket(ctx context.Context, userID int64, ttl time.Duration) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Token:     id.NewTicketToken(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	err := s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.conn(ctx).Exec(ctx,
			`DELETE FROM ws_tickets WHERE expires_at < now()`); err != nil {
			return fmt.Errorf("sweep tickets: %w", err)
		}
		if _, err := s.conn(ctx).Exec(ctx,
			`INSERT INTO ws_tickets (token, user_id, expires_at) VALUES ($1, $2, $3)`,
			ticket.Token, ticket.UserID, ticket.ExpiresAt); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// ConsumeTicket atomically deletes a ticket and returns the bound user ID.
// The single DELETE ... RETURNING makes lookup and invalidation one
// operation: two concurrent handshakes with the same token cannot both
// succeed. Missing, expired, and already-consumed tickets all yield
// domain.ErrUnauthorized.
func (s *Store) ConsumeTicket(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := s.conn(ctx).QueryRow(ctx,
		`DELETE FROM ws_tickets WHERE token = $1 AND expires_at > now() RETURNING user_id`,
		token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("consume ticket: %w", err)
	}
	return userID, nil
}
