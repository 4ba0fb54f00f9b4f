// Package models contains server-side data models.
package models

import "time"

// User is a registered account. ID is the store-assigned primary key and is
// never exposed outside the server; UserID is the public identity.
type User struct {
	ID           int64
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
