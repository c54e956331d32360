// Package server provides the HTTP API for the concierge.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/agent"
	"github.com/grandplaza/concierge/internal/config"
	"github.com/grandplaza/concierge/internal/inventory"
	"github.com/grandplaza/concierge/internal/media"
	"github.com/grandplaza/concierge/internal/meetings"
	"github.com/grandplaza/concierge/internal/transcript"
)

// Server is the HTTP server for the concierge API.
type Server struct {
	agent      *agent.Agent
	tools      *agent.Registry
	inventory  *inventory.Store
	meetings   *meetings.Store
	minter     *media.TokenMinter
	recorder   *transcript.Recorder
	summarizer *transcript.Summarizer
	config     *config.ServerConfig
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies. minter, recorder,
// and summarizer may be nil; their routes then report the feature as
// unconfigured.
func NewServer(
	ag *agent.Agent,
	tools *agent.Registry,
	inv *inventory.Store,
	mtg *meetings.Store,
	minter *media.TokenMinter,
	recorder *transcript.Recorder,
	summarizer *transcript.Summarizer,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		agent:      ag,
		tools:      tools,
		inventory:  inv,
		meetings:   mtg,
		minter:     minter,
		recorder:   recorder,
		summarizer: summarizer,
		config:     cfg,
		logger:     logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/token", s.handleToken)
	r.Post("/api/v1/tools/{name}", s.handleTool)

	r.Get("/api/v1/rooms", s.handleListRoomTypes)
	r.Get("/api/v1/rooms/available", s.handleListAvailable)
	r.Get("/api/v1/rooms/{id}", s.handleGetRoom)
	r.Post("/api/v1/bookings", s.handleBook)
	r.Get("/api/v1/bookings/summary", s.handleBookingSummary)

	r.Post("/api/v1/meetings", s.handleAddMeeting)
	r.Post("/api/v1/meetings/ingest", s.handleIngestMeeting)
	r.Post("/api/v1/meetings/search", s.handleSearchMeetings)
	r.Get("/api/v1/meetings/{filename}", s.handleGetMeeting)
	r.Delete("/api/v1/meetings", s.handlePurgeMeetings)
	r.Post("/api/v1/meetings/summarize", s.handleSummarize)

	r.Post("/api/v1/transcript", s.handleTranscript)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
