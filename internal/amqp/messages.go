package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncMessage notifies the worker that a new ledger snapshot was
// persisted. It carries only the version and year; the worker fetches the
// full ledger from storage, so a burst of edits collapses into reading the
// latest state once per message.
type LedgerSyncMessage struct {
	Year      int       `json:"year"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerSyncMessage creates a sync message for a persisted snapshot.
func NewLedgerSyncMessage(year int, version int64) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		Year:      year,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSyncMessageFromJSON creates a message from JSON bytes
func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
