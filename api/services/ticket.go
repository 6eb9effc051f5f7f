package services

import (
	"context"
	"time"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/store"
)

// TicketService issues single-use websocket tickets.
type TicketService struct {
	store *store.Store
	ttl   time.Duration
}

func NewTicketService(s *store.Store, ttl time.Duration) *TicketService {
	return &TicketService{store: s, ttl: ttl}
}

// Issue creates a fresh ticket bound to the user with the configured TTL.
func (svc *TicketService) Issue(ctx context.Context, userID int64) (*domain.Ticket, error) {
	return svc.store.CreateTicket(ctx, userID, svc.ttl)
}
