// Package account defines the relational user-account domain backing
// authentication, kept separate from the document-store profile records.
package account

import "time"

// Role is a user's role in the product.
type Role string

// Role values.
const (
	RoleStudent Role = "student"
	RoleAdvisor Role = "advisor"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

// Status is a user account's lifecycle state.
type Status string

// Status values.
const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// User is one account row in the relational users table.
type User struct {
	userID    int64
	email     string
	name      string
	role      Role
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a User.
func NewUser(userID int64, email, name string, role Role, status Status) User {
	return User{
		userID: userID,
		email:  email,
		name:   name,
		role:   role,
		status: status,
	}
}

// WithTimestamps returns a copy carrying the given timestamps.
func (u User) WithTimestamps(createdAt, updatedAt time.Time) User {
	u.createdAt = createdAt
	u.updatedAt = updatedAt
	return u
}

// UserID returns the application-level user ID.
func (u User) UserID() int64 { return u.userID }

// Email returns the account email.
func (u User) Email() string { return u.email }

// Name returns the display name.
func (u User) Name() string { return u.name }

// Role returns the account role.
func (u User) Role() Role { return u.role }

// Status returns the account status.
func (u User) Status() Status { return u.status }

// CreatedAt returns the creation timestamp.
func (u User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-update timestamp.
func (u User) UpdatedAt() time.Time { return u.updatedAt }

// Active reports whether the account is usable.
func (u User) Active() bool { return u.status == StatusActive }
