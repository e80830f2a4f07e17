package sqlite

import "time"

// TransmissionRecord is one ingested transcript segment as stored, both the
// raw recognizer text and the normalized form the parser consumed.
type TransmissionRecord struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Seq        int       `json:"seq"`
	Content    string    `json:"content"`
	Normalized string    `json:"normalized"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportRecord is a point-in-time snapshot of a session's structured report,
// serialized as JSON. Only the latest snapshot per session matters; older
// rows are kept for audit.
type ReportRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Report    string    `json:"report"`
	UpdatedAt time.Time `json:"updated_at"`
}
