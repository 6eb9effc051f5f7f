package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumenchat/lumen/api/config"
	"github.com/lumenchat/lumen/api/server/handlers"
	"github.com/lumenchat/lumen/api/services"
	"github.com/lumenchat/lumen/api/store"
)

const ReadTimeout = 30 * time.Second

type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
	hub    *Hub
}

func NewServer(
	cfg *config.Config,
	s *store.Store,
	threadSvc *services.ThreadService,
	msgSvc *services.MessageService,
	ticketSvc *services.TicketService,
	userSvc *services.UserService,
	generator Generator,
) *Server {
	hub := NewHub()
	router := chi.NewRouter()

	router.Use(Recovery)
	router.Use(Logger)
	router.Use(CORS(cfg.Server.AllowedOrigins))

	healthH := handlers.NewHealthHandler(func(ctx context.Context) error {
		return s.Pool().Ping(ctx)
	})
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)
	router.Handle("/metrics", promhttp.Handler())

	// The websocket endpoint authenticates with its ticket, not the
	// request identity, so it sits outside the auth group.
	wsHandler := NewWSHandler(hub, cfg, ChatDeps{
		Tickets:   s,
		Threads:   s,
		Messages:  s,
		Generator: generator,
	})
	router.Get("/api/v1/ws/{ticket}", wsHandler.ServeHTTP)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Auth(AuthConfig{RequireAuth: cfg.Server.RequireAuth}))

		ticketH := handlers.NewTicketHandler(ticketSvc)
		r.Post("/auth/ws-ticket", ticketH.Issue)

		threadH := handlers.NewThreadHandler(threadSvc, msgSvc)
		r.Post("/threads", threadH.Create)
		r.Get("/threads", threadH.List)
		r.Get("/threads/{id}", threadH.Get)
		r.Get("/threads/{id}/messages", threadH.ListMessages)

		userH := handlers.NewUserHandler(userSvc)
		r.Get("/users/me", userH.Me)
		r.Delete("/users/me", userH.Delete)
	})

	return &Server{
		cfg:    cfg,
		router: router,
		hub:    hub,
	}
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: ReadTimeout,
		// Zero write timeout: websocket connections are long-lived.
		WriteTimeout: 0,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
