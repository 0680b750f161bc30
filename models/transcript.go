package models

import "time"

// DebateRecord is an archived scripted debate
type DebateRecord struct {
	ID        string         `json:"id"`
	Topic     string         `json:"topic"`
	Debate    DebateResponse `json:"debate"`
	CreatedAt time.Time      `json:"createdAt"`
}
