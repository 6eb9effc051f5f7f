package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/services"
)

type ThreadHandler struct {
	threadSvc *services.ThreadService
	msgSvc    *services.MessageService
}

func NewThreadHandler(threadSvc *services.ThreadService, msgSvc *services.MessageService) *ThreadHandler {
	return &ThreadHandler{threadSvc: threadSvc, msgSvc: msgSvc}
}

func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.threadSvc.Create(r.Context(), userID, req.Title)
	if err != nil {
		respondError(w, "failed to create thread", http.StatusInternalServerError)
		return
	}

	respondJSON(w, thread, http.StatusCreated)
}

func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	threads, err := h.threadSvc.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list threads", http.StatusInternalServerError)
		return
	}
	if threads == nil {
		threads = []*domain.Thread{}
	}

	respondJSON(w, threads, http.StatusOK)
}

func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	threadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid thread ID", http.StatusBadRequest)
		return
	}

	thread, err := h.threadSvc.GetByUser(r.Context(), threadID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, "thread not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to load thread", http.StatusInternalServerError)
		return
	}

	respondJSON(w, thread, http.StatusOK)
}

func (h *ThreadHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	threadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid thread ID", http.StatusBadRequest)
		return
	}

	msgs, err := h.msgSvc.ListForThread(r.Context(), threadID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, "thread not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to list messages", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}

	respondJSON(w, msgs, http.StatusOK)
}
