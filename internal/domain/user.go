package domain

import (
	"strings"
	"time"
)

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleDonor   UserRole = "donor"
	UserRoleCharity UserRole = "charity"
	UserRoleAdmin   UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleDonor, UserRoleCharity, UserRoleAdmin:
		return true
	}
	return false
}

// User represents an authenticated account within the platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user is an administrator.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Actor is the identity performing a service call, taken from the access token.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == UserRoleAdmin }

// Anonymous reports whether no identity is attached.
func (a Actor) Anonymous() bool { return strings.TrimSpace(a.UserID) == "" }

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   UserRole
	Search string
	Page
}

// Page carries limit/offset pagination.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
