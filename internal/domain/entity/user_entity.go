package entity

import (
	"time"
)

// Role is fixed at creation; there is no promotion path in the API
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in PasswordHash
type User struct {
	ID           string
	Email        string
	Username     *string
	Phone        *string
	PasswordHash string
	Role         Role
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the user view safe to return to clients
type Profile struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	Role     Role    `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Username: u.Username, Phone: u.Phone, Role: u.Role}
}
