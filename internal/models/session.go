package models

import "time"

// Session keeps the last request and response of a caller so the presentation
// layer can redisplay or download them.
type Session struct {
	ID                    string             `json:"id"`
	Request               GenerationRequest  `json:"request"`
	Selection             SelectionSet       `json:"selection"`
	Response              GenerationResponse `json:"response"`
	EnrichedDevPromptText string             `json:"enrichedDevelopmentPromptText"`
	CreatedAt             time.Time          `json:"createdAt"`
	ExpiresAt             time.Time          `json:"expiresAt"`
}

// IsExpired checks if session has expired
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
