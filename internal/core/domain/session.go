package domain

import "time"

// Session is the authenticated context of one browser. It is built from a
// verified User at login, or rebuilt from a signed cookie, and is never
// stored server-side. The zero value and nil are both anonymous.
type Session struct {
	ID        string    `json:"-"`
	LoggedIn  bool      `json:"logged_in"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession returns a logged-in session for user.
func NewSession(user *User, id string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		LoggedIn:  true,
		UserID:    user.ID,
		Role:      user.Role,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}
}

func (s *Session) IsLoggedIn() bool { return s != nil && s.LoggedIn }

func (s *Session) IsDesigner() bool { return s.IsLoggedIn() && s.Role == RoleDesigner }

func (s *Session) IsClient() bool { return s.IsLoggedIn() && s.Role == RoleClient }

// CurrentUserID returns 0 for an anonymous session.
func (s *Session) CurrentUserID() int64 {
	if !s.IsLoggedIn() {
		return 0
	}
	return s.UserID
}

// Clear resets the session to anonymous.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}
