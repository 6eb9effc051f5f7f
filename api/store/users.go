package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lumenchat/lumen/api/domain"
)

// CreateUser inserts a new user and fills in the assigned ID and timestamp.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, image_url, email, auth_provider, provider_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.conn(ctx).QueryRow(ctx, query,
		user.Name, user.ImageURL, user.Email, user.AuthProvider, user.ProviderUserID).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, image_url, email, auth_provider, provider_user_id, created_at
		FROM users
		WHERE id = $1`

	user := &domain.User{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.ImageURL, &user.Email,
		&user.AuthProvider, &user.ProviderUserID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// CountThreadsByUser returns the number of threads owned by a user.
func (s *Store) CountThreadsByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM threads WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count threads: %w", err)
	}
	return count, nil
}

// DeleteUser removes a user. Threads, messages, and tickets cascade.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
