package domain

import "time"

// TranscriptEntry is one persisted chat turn within a session.
type TranscriptEntry struct {
	Query          string    `json:"query"`
	Answer         string    `json:"answer"`
	ContextSummary string    `json:"context_summary"`
	CreatedAt      time.Time `json:"created_at"`
}
