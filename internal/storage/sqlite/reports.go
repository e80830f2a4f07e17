package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkoval/casbrief/pkg/logger"
)

// ReportStorage handles report snapshot persistence
type ReportStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewReportStorage creates a new SQLite report storage
func NewReportStorage(db *sql.DB, log *logger.Logger) *ReportStorage {
	storage := &ReportStorage{
		db:     db,
		logger: log.Named("sqlite-reports"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize report storage", logger.Error(err))
	}

	return storage
}

func (s *ReportStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS report_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			report TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create report_snapshots table: %w", err)
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_report_snapshots_session ON report_snapshots(session_id)`)
	if err != nil {
		return fmt.Errorf("failed to create report snapshot index: %w", err)
	}

	return nil
}

// SaveSnapshot appends a report snapshot for the session
func (s *ReportStorage) SaveSnapshot(sessionID, reportJSON string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO report_snapshots (session_id, report, updated_at) VALUES (?, ?, ?)`,
		sessionID,
		reportJSON,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetLatestSnapshot returns the most recent snapshot for a session, or nil
// when the session has none.
func (s *ReportStorage) GetLatestSnapshot(sessionID string) (*ReportRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, report, updated_at
		FROM report_snapshots
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT 1`,
		sessionID,
	)

	var record ReportRecord
	var updatedAt string
	if err := row.Scan(&record.ID, &record.SessionID, &record.Report, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan report snapshot: %w", err)
	}

	var err error
	record.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &record, nil
}

// DeleteSession removes a session's snapshots, used on session reset
func (s *ReportStorage) DeleteSession(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM report_snapshots WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session snapshots: %w", err)
	}
	return nil
}
