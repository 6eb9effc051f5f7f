package services

import (
	"context"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/store"
)

// MessageService handles message operations.
type MessageService struct {
	store *store.Store
}

func NewMessageService(s *store.Store) *MessageService {
	return &MessageService{store: s}
}

// ListForThread returns the messages of a thread after verifying the
// thread belongs to the user.
func (svc *MessageService) ListForThread(ctx context.Context, threadID, userID int64) ([]*domain.Message, error) {
	if _, err := svc.store.GetThreadByUser(ctx, threadID, userID); err != nil {
		return nil, err
	}
	return svc.store.ListMessages(ctx, threadID)
}
