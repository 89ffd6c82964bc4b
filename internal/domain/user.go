package domain

import "time"

// AdminUserID is the identifier of the only account allowed to manage posts.
// The first registered user receives it; there is no role table.
const AdminUserID int64 = 1

// User represents a registered reader of the blog.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// IsAdmin reports whether the user is the blog administrator.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminUserID
}
