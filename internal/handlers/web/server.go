package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Konrad-GB/voting-website/internal/notify"
	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

// Config holds configuration for the HTTP server
type Config struct {
	// Addr is the listen address
	Addr string

	// PublicBaseURL is used to build voter join links
	PublicBaseURL string

	// SessionService handles every API operation
	SessionService sessionService.Service

	// Hub manages websocket observers
	Hub *notify.Hub
}

// Server is the HTTP front of the polling service
type Server struct {
	server        *http.Server
	service       sessionService.Service
	hub           *notify.Hub
	publicBaseURL string
}

// NewServer creates the HTTP server and wires its routes
func NewServer(cfg *Config) *Server {
	s := &Server{
		service:       cfg.SessionService,
		hub:           cfg.Hub,
		publicBaseURL: cfg.PublicBaseURL,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Host routes (require a host token)
	mux.HandleFunc("POST /api/host/login", s.handleHostLogin)
	mux.HandleFunc("POST /api/host/create-session", s.handleCreateSession)
	mux.HandleFunc("GET /api/host/saved-sessions", s.handleSavedSessions)
	mux.HandleFunc("DELETE /api/host/session/{id}", s.handleDeleteSession)

	// Voter verification
	mux.HandleFunc("POST /api/session/verify", s.handleVerifyVoter)

	// Poll authoring
	mux.HandleFunc("POST /api/session/{id}/poll", s.handleAddPoll)
	mux.HandleFunc("PUT /api/session/{id}/poll/{index}", s.handleUpdatePoll)
	mux.HandleFunc("DELETE /api/session/{id}/poll/{index}", s.handleDeletePoll)
	mux.HandleFunc("PUT /api/session/{id}/reorder-polls", s.handleReorderPolls)

	// Presentation and voting
	mux.HandleFunc("GET /api/session/{id}", s.handleGetSession)
	mux.HandleFunc("GET /api/session/{id}/current-poll", s.handleCurrentPoll)
	mux.HandleFunc("POST /api/session/{id}/start/{index}", s.handleStartPoll)
	mux.HandleFunc("POST /api/session/{id}/complete", s.handleCompleteSession)
	mux.HandleFunc("POST /api/session/{id}/vote", s.handleSubmitVote)
	mux.HandleFunc("GET /api/session/{id}/results/{pollId}", s.handleResults)
	mux.HandleFunc("GET /api/session/{id}/qr", s.handleSessionQR)

	// Push channel and liveness
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}

// middleware wraps the handler with request logging
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Print("server shutting down")
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
