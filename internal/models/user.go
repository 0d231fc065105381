package models

import "time"

// Role values used by the storefront. Older revisions of the upstream used
// numeric roles; the dashboard only speaks the string form.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a storefront account as returned by the upstream API.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may use the admin console.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
