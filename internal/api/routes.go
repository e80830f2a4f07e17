package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkoval/casbrief/internal/config"
	"github.com/mkoval/casbrief/internal/session"
	"github.com/mkoval/casbrief/internal/websocket"
	"github.com/mkoval/casbrief/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(sessions *session.Manager, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Router {
	return &Router{
		handler:    NewHandler(sessions, cfg, log, wsServer),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	router.Route("/api/v1", func(router chi.Router) {
		// Session lifecycle
		router.Post("/sessions", r.handler.CreateSession)
		router.Delete("/sessions/{id}", r.handler.EndSession)
		router.Post("/sessions/{id}/reset", r.handler.ResetSession)

		// Ingestion: incremental segment append and full-transcript reparse
		router.Post("/sessions/{id}/segments", r.handler.ProcessSegment)
		router.Put("/sessions/{id}/transcript", r.handler.ReparseTranscript)

		// ASR confidence review
		router.Post("/sessions/{id}/review", r.handler.ReviewTokens)

		// Report access
		router.Get("/sessions/{id}/report", r.handler.GetReport)
		router.Get("/sessions/{id}/report/{category}", r.handler.GetReportCategory)
		router.Get("/sessions/{id}/transmissions", r.handler.GetTransmissions)

		// WebSocket route
		router.Get("/ws", r.handler.HandleWebSocket)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
