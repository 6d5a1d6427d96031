// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Name is both the login key and the address
// other users write into a message's receiver field.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
