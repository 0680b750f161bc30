package websocket

import (
	"encoding/json"
	"time"

	"debatebot/models"
	"debatebot/services"
)

// Event types sent on the debate stream
const (
	EventArgument = "argument"
	EventComplete = "complete"
	EventError    = "error"
)

// Event is one message on the debate stream
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// ArgumentPayload announces one generated speech
type ArgumentPayload struct {
	Side     string          `json:"side"`
	Round    string          `json:"round"`
	Argument models.Argument `json:"argument"`
}

// CompletePayload carries the finished debate and its archive id, if any
type CompletePayload struct {
	DebateID string                `json:"debateId,omitempty"`
	Debate   models.DebateResponse `json:"debate"`
}

// ErrorPayload reports why the debate stopped
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewEvent creates a new event with timestamp
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().Unix(),
	}, nil
}

func argumentPayload(ev services.ArgumentEvent) ArgumentPayload {
	return ArgumentPayload{
		Side:     ev.Side.String(),
		Round:    ev.Round.String(),
		Argument: ev.Argument,
	}
}
