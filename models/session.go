package models

import "time"

// Session is the signed-in context resolved once per request and handed to services.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserID returns the signed-in user's id, or "" for a nil session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}
