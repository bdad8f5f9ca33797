package cache

import "time"

type SessionStatus struct {
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at,omitempty"`
}
