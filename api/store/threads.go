package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lumenchat/lumen/api/domain"
)

// CreateThread inserts a new thread and fills in the assigned ID and timestamp.
func (s *Store) CreateThread(ctx context.Context, thread *domain.Thread) error {
	query := `
		INSERT INTO threads (user_id, title)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := s.conn(ctx).QueryRow(ctx, query, thread.UserID, thread.Title).
		Scan(&thread.ID, &thread.CreatedAt)
	if err != nil {
		return fmt.Errorf("create thread: %w", err)
	}
	return nil
}

// GetThreadByUser retrieves a thread by ID scoped to its owner. Absent and
// not-owned are indistinguishable: both return domain.ErrNotFound.
func (s *Store) GetThreadByUser(ctx context.Context, id, userID int64) (*domain.Thread, error) {
	query := `
		SELECT id, user_id, title, created_at
		FROM threads
		WHERE id = $1 AND user_id = $2`

	thread := &domain.Thread{}
	err := s.conn(ctx).QueryRow(ctx, query, id, userID).Scan(
		&thread.ID, &thread.UserID, &thread.Title, &thread.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get thread by user: %w", err)
	}
	return thread, nil
}

// ListThreads returns all threads owned by a user, newest first.
func (s *Store) ListThreads(ctx context.Context, userID int64) ([]*domain.Thread, error) {
	query := `
		SELECT id, user_id, title, created_at
		FROM threads
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	var threads []*domain.Thread
	for rows.Next() {
		thread := &domain.Thread{}
		if err := rows.Scan(&thread.ID, &thread.UserID, &thread.Title, &thread.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}
