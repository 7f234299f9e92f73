package ws

import (
	"encoding/json"

	"sustainability_dashboard/internal/dashboard"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server messages

// SetRangePayload selects the dataset and date range a client looks at.
// Dates are YYYY-MM-DD; empty dates leave that side open.
type SetRangePayload struct {
	Dataset string `json:"dataset"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Server -> Client messages

type SessionReadyPayload struct {
	SessionID string `json:"session_id"`
}

type DataLoadedPayload struct {
	Datasets []dashboard.DatasetInfo `json:"datasets"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Message string `json:"message"`
}

// Message type constants
const (
	// Client -> Server
	TypeViewSetRange = "view:set_range"
	TypeViewRefresh  = "view:refresh"

	// Server -> Client
	TypeSessionReady  = "session:ready"
	TypeDataLoaded    = "data:loaded"
	TypeGridReport    = "grid:report"
	TypeWeatherReport = "weather:report"
	TypeEnphaseReport = "enphase:report"
	TypeError         = "error"
)

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func dataLoadedMessage(datasets []dashboard.DatasetInfo) ([]byte, error) {
	if datasets == nil {
		datasets = []dashboard.DatasetInfo{}
	}
	return NewEnvelope(TypeDataLoaded, DataLoadedPayload{Datasets: datasets})
}
