package models

import "time"

// Session is a server-side session row keyed by the opaque token stored in
// the client's cookie. The CSRF token is minted at login; it may be empty
// when token generation failed, in which case the session simply carries no
// CSRF protection.
type Session struct {
	Token     string    `gorm:"size:64;primaryKey" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	CSRFToken string    `gorm:"size:64" json:"-"`
	CreatedAt time.Time `json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"-"`
}

// Expired reports whether the session is past its server-side lifetime.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
