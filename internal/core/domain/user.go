package domain

import "time"

const (
	RoleDesigner = "designer"
	RoleClient   = "client"
)

// User is either a designer (password credential) or a client (access code
// credential). Exactly one of PasswordHash and ClientCode is set.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ClientCode   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsDesigner() bool { return u != nil && u.Role == RoleDesigner }

func (u *User) IsClient() bool { return u != nil && u.Role == RoleClient }

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleDesigner || role == RoleClient
}
