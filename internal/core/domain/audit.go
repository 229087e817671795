package domain

import "time"

type AuthEventType string

const (
	EventRegistered     AuthEventType = "registered"
	EventLoginSucceeded AuthEventType = "login_succeeded"
	EventLoginFailed    AuthEventType = "login_failed"
	EventLogout         AuthEventType = "logout"
)

// AuthEvent is one entry of the authentication audit trail. Credentials
// are never recorded.
type AuthEvent struct {
	Type      AuthEventType
	UserID    int64
	Role      string
	Email     string
	Timestamp time.Time
}
