package models

// Speaker types used in live argument history
const (
	SpeakerUser = "user"
	SpeakerAI   = "ai"
)

// HistoryItem is one prior turn in a live debate
type HistoryItem struct {
	Type string `json:"type"` // "user" or "ai"
	Text string `json:"text"`
}

// LiveDebateRequest asks for a counter-argument to the user's latest input
type LiveDebateRequest struct {
	Topic           string        `json:"topic" binding:"required"`
	UserArgument    string        `json:"user_argument" binding:"required"`
	Round           string        `json:"round"`
	ArgumentHistory []HistoryItem `json:"argument_history"`
}

// Point is one paragraph of a counter-argument
type Point struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// LiveDebateResponse carries the raw counter-argument and its paragraphs
type LiveDebateResponse struct {
	CounterArgument string  `json:"counter_argument"`
	Points          []Point `json:"points"`
}
