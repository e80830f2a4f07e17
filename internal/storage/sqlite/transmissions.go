package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkoval/casbrief/pkg/logger"
)

// TransmissionStorage handles storage of transcript segments
type TransmissionStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTransmissionStorage creates a new SQLite transmission storage
func NewTransmissionStorage(db *sql.DB, log *logger.Logger) *TransmissionStorage {
	storage := &TransmissionStorage{
		db:     db,
		logger: log.Named("sqlite-tx"),
	}

	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize transmission storage", logger.Error(err))
	}

	return storage
}

// initDB initializes the database tables
func (s *TransmissionStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transmissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL,
			normalized TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transmissions table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transmissions_session ON transmissions(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transmissions_created ON transmissions(created_at)`,
	}
	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create transmission index: %w", err)
		}
	}

	return nil
}

// StoreTransmission stores one segment record
func (s *TransmissionStorage) StoreTransmission(record *TransmissionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO transmissions
		(session_id, seq, content, normalized, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.SessionID,
		record.Seq,
		record.Content,
		record.Normalized,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transmission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetTransmissionsBySession returns a session's segments in ingestion order
func (s *TransmissionStorage) GetTransmissionsBySession(sessionID string) ([]*TransmissionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, seq, content, normalized, created_at
		FROM transmissions
		WHERE session_id = ?
		ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transmissions by session: %w", err)
	}
	defer rows.Close()

	return s.scanTransmissionRows(rows)
}

// DeleteSession removes all of a session's segments, used on session reset
func (s *TransmissionStorage) DeleteSession(sessionID string) error {
	if _, err := s.db.Exec(`DELETE FROM transmissions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session transmissions: %w", err)
	}
	return nil
}

// scanTransmissionRows scans database rows into TransmissionRecord structs
func (s *TransmissionStorage) scanTransmissionRows(rows *sql.Rows) ([]*TransmissionRecord, error) {
	var records []*TransmissionRecord
	for rows.Next() {
		var record TransmissionRecord
		var createdAt string

		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.Seq,
			&record.Content,
			&record.Normalized,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transmission: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}
