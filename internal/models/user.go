package models

// Role distinguishes the property manager from regular accounts.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a dashboard account.
type User struct {
	Base
	Email            string `json:"email"`
	PasswordHash     string `json:"password,omitempty"` // bcrypt hash, stripped from API responses
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Role             Role   `json:"role"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zip_code"`
	Avatar           string `json:"avatar,omitempty"`
	Bio              string `json:"bio,omitempty"`
	AlternativeEmail string `json:"alternative_email,omitempty"`
	PreferredContact string `json:"preferred_contact,omitempty"` // email, phone or both
}

// Sanitized returns a copy safe to hand to API clients.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// IsAdmin reports whether the account has manager privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
