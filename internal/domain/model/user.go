package model

import "time"

// Role separates customers from back-office admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a registered account with its profile fields.
// TotalTransactions and TotalAmount are informational rollups maintained
// when a request is paid out; nothing load-bearing reads them.
type User struct {
	ID                int64
	Login             string
	PasswordHash      string
	Role              Role
	Name              string
	Phone             string
	TotalTransactions int64
	TotalAmount       int64
	CreatedAt         time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
