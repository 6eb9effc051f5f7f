package handlers

import (
	"errors"
	"net/http"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/services"
)

type UserHandler struct {
	userSvc *services.UserService
}

func NewUserHandler(userSvc *services.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	profile, err := h.userSvc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, "user not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, profile, http.StatusOK)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	if err := h.userSvc.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, "user not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to delete account", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"message": "account deleted"}, http.StatusOK)
}
