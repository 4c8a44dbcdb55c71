package entity

import "time"

// Staff roles form a closed enumeration; writes with anything else are
// rejected before touching the store.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleClient   = "client"
)

// ValidStaffRole reports whether role belongs to the staff enumeration.
func ValidStaffRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// User is a back-office (staff) account. ID is the storage primary key;
// UUID is the stable public handle exposed by the API. Password holds a
// bcrypt hash and never serializes into responses.
type User struct {
	ID             string
	UUID           string
	Name           string
	Email          string
	Password       string
	Role           string
	CreatedBy      *string // staff account that created this one, audit only
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Public returns the response-safe projection of the account.
func (u *User) Public() map[string]any {
	return map[string]any{
		"uuid":           u.UUID,
		"name":           u.Name,
		"email":          u.Email,
		"role":           u.Role,
		"profilePicture": u.ProfilePicture,
	}
}
