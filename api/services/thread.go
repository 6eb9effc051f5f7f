package services

import (
	"context"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/store"
)

// ThreadService handles thread operations.
type ThreadService struct {
	store *store.Store
}

func NewThreadService(s *store.Store) *ThreadService {
	return &ThreadService{store: s}
}

// Create creates a new thread for a user.
func (svc *ThreadService) Create(ctx context.Context, userID int64, title string) (*domain.Thread, error) {
	thread := &domain.Thread{UserID: userID, Title: title}
	if err := svc.store.CreateThread(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// GetByUser retrieves a thread by ID for a specific user.
func (svc *ThreadService) GetByUser(ctx context.Context, id, userID int64) (*domain.Thread, error) {
	return svc.store.GetThreadByUser(ctx, id, userID)
}

// List retrieves all threads for a user.
func (svc *ThreadService) List(ctx context.Context, userID int64) ([]*domain.Thread, error) {
	return svc.store.ListThreads(ctx, userID)
}
