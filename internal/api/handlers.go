package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkoval/casbrief/internal/asr"
	"github.com/mkoval/casbrief/internal/config"
	"github.com/mkoval/casbrief/internal/report"
	"github.com/mkoval/casbrief/internal/session"
	"github.com/mkoval/casbrief/internal/websocket"
	"github.com/mkoval/casbrief/pkg/logger"
)

// Handler contains the API handlers
type Handler struct {
	sessions *session.Manager
	config   *config.Config
	logger   *logger.Logger
	wsServer *websocket.Server
	started  time.Time
}

// NewHandler creates a new API handler
func NewHandler(sessions *session.Manager, cfg *config.Config, log *logger.Logger, wsServer *websocket.Server) *Handler {
	return &Handler{
		sessions: sessions,
		config:   cfg,
		logger:   log.Named("api-handler"),
		wsServer: wsServer,
		started:  time.Now(),
	}
}

type segmentRequest struct {
	Text string `json:"text"`
}

type transcriptRequest struct {
	Text string `json:"text"`
}

type reviewRequest struct {
	Tokens []asr.Token `json:"tokens"`
}

// CreateSession starts a new recording session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Create()
	h.writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

// EndSession destroys a session
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.End(id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession clears a session's report and state
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Reset(id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProcessSegment ingests one transcript segment incrementally
func (h *Handler) ProcessSegment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.ProcessSegment(id, req.Text); err != nil {
		if errors.Is(err, session.ErrIncrementalDisabled) {
			h.writeError(w, http.StatusConflict, "incremental processing disabled, use PUT transcript")
			return
		}
		h.writeSessionError(w, err)
		return
	}

	rep, err := h.sessions.Report(id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// ReparseTranscript rebuilds the report from a full transcript snapshot
func (h *Handler) ReparseTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.ReparseTranscript(id, req.Text); err != nil {
		h.writeSessionError(w, err)
		return
	}

	rep, err := h.sessions.Report(id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// ReviewTokens runs the ASR confidence pass
func (h *Handler) ReviewTokens(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.sessions.ReviewTokens(id, req.Tokens)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

// GetReport returns the session's structured report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := h.sessions.Report(id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

// GetReportCategory returns one rendered report category
func (h *Handler) GetReportCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category := chi.URLParam(r, "category")

	content, err := h.sessions.Content(id, category)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	hasData, err := h.sessions.HasData(id, category)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"content":  content,
		"has_data": hasData,
	})
}

// GetTransmissions returns the session's persisted segments
func (h *Handler) GetTransmissions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := h.sessions.Transmissions(id)
	if err != nil {
		h.logger.Error("failed to load transmissions", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to load transmissions")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":    id,
		"transmissions": records,
	})
}

// HandleWebSocket upgrades the connection and registers it with the hub
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsServer.HandleWS(w, r)
}

// GetHealth returns service health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"uptime_sec":      int(time.Since(h.started).Seconds()),
		"active_sessions": h.sessions.ActiveSessions(),
		"ws_clients":      h.wsServer.ClientCount(),
		"categories":      report.Categories,
	})
}

func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.logger.Error("request failed", logger.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", logger.Error(err))
	}
}
