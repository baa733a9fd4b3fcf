// Package users holds the user model, the storage contract and the
// account-level operations of the Passport server: registration, login and
// profile retrieval.
package users

import "time"

// User is a row in the users table. PasswordHash never leaves the server:
// it is excluded from every JSON encoding.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
