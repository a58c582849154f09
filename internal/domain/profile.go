package domain

import "time"

// Role determines which policy checks pass for a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the identity attached to a session. Profiles are provisioned
// externally; this service only reads them.
type Profile struct {
	ID        string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// IsAdmin reports whether the profile carries the administrator role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
