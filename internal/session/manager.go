package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkoval/casbrief/internal/asr"
	"github.com/mkoval/casbrief/internal/parser"
	"github.com/mkoval/casbrief/internal/report"
	"github.com/mkoval/casbrief/internal/storage/sqlite"
	"github.com/mkoval/casbrief/internal/websocket"
	"github.com/mkoval/casbrief/pkg/logger"
)

// ErrSessionNotFound is returned for operations on unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// ErrIncrementalDisabled is returned by ProcessSegment when the configuration
// only allows full-transcript reparse ingestion.
var ErrIncrementalDisabled = errors.New("incremental processing disabled")

// Config holds the manager's runtime knobs.
type Config struct {
	// IncrementalProcess enables the per-segment ingestion path. Reparse with
	// a full transcript snapshot is always available and is the canonical
	// discipline.
	IncrementalProcess bool
	MaxIdle            time.Duration
}

type state struct {
	parser     *parser.Session
	seq        int
	lastActive time.Time
}

// Manager owns the live parsing sessions. The parser core is single-threaded;
// the manager's mutex is the only lock in the pipeline and serializes all
// access to it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*state

	transmissions *sqlite.TransmissionStorage
	reports       *sqlite.ReportStorage
	ws            *websocket.Server
	reviewer      *asr.Reviewer
	cfg           Config
	log           *logger.Logger
}

// NewManager creates a session manager. Storage pointers may be nil when
// persistence is disabled; ws may be nil in tests.
func NewManager(cfg Config, transmissions *sqlite.TransmissionStorage, reports *sqlite.ReportStorage, ws *websocket.Server, reviewer *asr.Reviewer, log *logger.Logger) *Manager {
	return &Manager{
		sessions:      make(map[string]*state),
		transmissions: transmissions,
		reports:       reports,
		ws:            ws,
		reviewer:      reviewer,
		cfg:           cfg,
		log:           log.Named("sessions"),
	}
}

// Create starts a new recording session and returns its ID.
func (m *Manager) Create() string {
	id := uuid.NewString()

	m.mu.Lock()
	m.sessions[id] = &state{
		parser:     parser.NewSession(m.log),
		lastActive: time.Now(),
	}
	count := len(m.sessions)
	m.mu.Unlock()

	m.log.Info("session created",
		logger.String("session_id", id),
		logger.Int("active", count))
	return id
}

// End destroys a session. Persisted transmissions and snapshots are kept.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.log.Info("session ended", logger.String("session_id", id))
	return nil
}

// Reset clears a session's report and section state, and drops its persisted
// rows so a later reparse starts clean.
func (m *Manager) Reset(id string) error {
	m.mu.Lock()
	st, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	st.parser.Reset()
	st.seq = 0
	st.lastActive = time.Now()
	m.mu.Unlock()

	if m.transmissions != nil {
		if err := m.transmissions.DeleteSession(id); err != nil {
			m.log.Error("failed to clear session transmissions", logger.Error(err))
		}
	}
	if m.reports != nil {
		if err := m.reports.DeleteSession(id); err != nil {
			m.log.Error("failed to clear session snapshots", logger.Error(err))
		}
	}
	m.broadcast(websocket.Message{
		Type: websocket.TypeSessionReset,
		Data: map[string]interface{}{"session_id": id},
	})
	return nil
}

// ProcessSegment ingests one transcript segment incrementally.
func (m *Manager) ProcessSegment(id, text string) error {
	if !m.cfg.IncrementalProcess {
		return ErrIncrementalDisabled
	}

	m.mu.Lock()
	st, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	st.parser.Process(text)
	st.lastActive = time.Now()
	seq := st.seq
	st.seq++
	rep := st.parser.Report()
	m.mu.Unlock()

	m.persistSegment(id, seq, text)
	m.publishReport(id, rep)
	return nil
}

// ReparseTranscript rebuilds the session's report from a full transcript
// snapshot. This is the canonical ingestion path: state is reset and the
// whole text reprocessed, so out-of-order segment delivery can never leave a
// stale field behind.
func (m *Manager) ReparseTranscript(id, fullText string) error {
	m.mu.Lock()
	st, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	st.parser.Reparse(fullText)
	st.lastActive = time.Now()
	seq := st.seq
	st.seq++
	rep := st.parser.Report()
	m.mu.Unlock()

	m.persistSegment(id, seq, fullText)
	m.publishReport(id, rep)
	return nil
}

// Report returns a snapshot copy of the session's report.
func (m *Manager) Report(id string) (*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.parser.Report(), nil
}

// Content renders one report category for the session.
func (m *Manager) Content(id, category string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	return st.parser.Content(category), nil
}

// HasData reports whether a category has content for the session.
func (m *Manager) HasData(id, category string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	return st.parser.HasData(category), nil
}

// Transmissions returns the session's persisted segments in ingestion order.
func (m *Manager) Transmissions(id string) ([]*sqlite.TransmissionRecord, error) {
	if m.transmissions == nil {
		return nil, nil
	}
	return m.transmissions.GetTransmissionsBySession(id)
}

// ReviewTokens runs the ASR confidence pass for the session and broadcasts a
// low-confidence alert when a critical phrase was flagged.
func (m *Manager) ReviewTokens(id string, tokens []asr.Token) (*asr.Review, error) {
	m.mu.Lock()
	st, ok := m.sessions[id]
	if ok {
		st.lastActive = time.Now()
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	review := m.reviewer.Review(tokens)
	if review.Critical {
		m.broadcast(websocket.Message{
			Type: websocket.TypeLowConfidence,
			Data: map[string]interface{}{
				"session_id": id,
				"tokens":     review.Tokens,
				"critical":   true,
			},
		})
	}
	return review, nil
}

// RunSweeper expires idle sessions until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context) {
	interval := m.cfg.MaxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.cfg.MaxIdle)

	m.mu.Lock()
	var expired []string
	for id, st := range m.sessions {
		if st.lastActive.Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.log.Info("session expired", logger.String("session_id", id))
	}
}

func (m *Manager) persistSegment(id string, seq int, text string) {
	if m.transmissions == nil {
		return
	}
	_, err := m.transmissions.StoreTransmission(&sqlite.TransmissionRecord{
		SessionID:  id,
		Seq:        seq,
		Content:    text,
		Normalized: parser.Normalize(text),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		m.log.Error("failed to persist transmission", logger.Error(err))
	}
}

func (m *Manager) publishReport(id string, rep *report.Report) {
	payload, err := json.Marshal(rep)
	if err != nil {
		m.log.Error("failed to marshal report", logger.Error(err))
		return
	}

	if m.reports != nil {
		if _, err := m.reports.SaveSnapshot(id, string(payload)); err != nil {
			m.log.Error("failed to persist report snapshot", logger.Error(err))
		}
	}

	categories := make(map[string]bool, len(report.Categories))
	for _, cat := range report.Categories {
		categories[cat] = rep.HasData(cat)
	}
	m.broadcast(websocket.Message{
		Type: websocket.TypeReportUpdate,
		Data: map[string]interface{}{
			"session_id": id,
			"report":     json.RawMessage(payload),
			"categories": categories,
		},
	})
}

func (m *Manager) broadcast(msg websocket.Message) {
	if m.ws == nil {
		return
	}
	m.ws.Broadcast(msg)
}

// ActiveSessions returns the number of live sessions, for the health endpoint.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
