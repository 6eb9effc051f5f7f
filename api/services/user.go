package services

import (
	"context"
	"fmt"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/store"
)

// UserService handles account operations.
type UserService struct {
	store *store.Store
}

func NewUserService(s *store.Store) *UserService {
	return &UserService{store: s}
}

// Create provisions an account. Accounts are created by the upstream
// identity layer (or operator tooling), not by end users; the ID and
// timestamp come back filled in.
func (svc *UserService) Create(ctx context.Context, user *domain.User) error {
	switch user.AuthProvider {
	case domain.AuthProviderGoogle, domain.AuthProviderApple:
	default:
		return fmt.Errorf("unknown auth provider %q", user.AuthProvider)
	}
	if user.Email == "" {
		return fmt.Errorf("email is required")
	}
	return svc.store.CreateUser(ctx, user)
}

// Profile is a user with their thread count, as served by /users/me.
type Profile struct {
	*domain.User
	ThreadsCount int `json:"threads_count"`
}

// Get returns a user's profile.
func (svc *UserService) Get(ctx context.Context, userID int64) (*Profile, error) {
	user, err := svc.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := svc.store.CountThreadsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, ThreadsCount: count}, nil
}

// Delete removes the account. Threads, messages, and tickets cascade at
// the database level.
func (svc *UserService) Delete(ctx context.Context, userID int64) error {
	return svc.store.DeleteUser(ctx, userID)
}
