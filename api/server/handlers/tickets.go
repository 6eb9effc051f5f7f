package handlers

import (
	"net/http"

	"github.com/lumenchat/lumen/api/services"
)

type TicketHandler struct {
	ticketSvc *services.TicketService
}

func NewTicketHandler(ticketSvc *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc}
}

// Issue hands the authenticated caller a single-use websocket ticket. The
// ticket is only good for one handshake within its TTL.
func (h *TicketHandler) Issue(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	ticket, err := h.ticketSvc.Issue(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to issue ticket", http.StatusInternalServerError)
		return
	}

	respondJSON(w, ticket, http.StatusCreated)
}
