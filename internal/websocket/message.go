package websocket

import "encoding/json"

// Message types broadcast by the session manager.
const (
	TypeReportUpdate  = "report_update"
	TypeLowConfidence = "low_confidence"
	TypeSessionReset  = "session_reset"
)

func marshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
