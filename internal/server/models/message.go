package models

import "time"

// Message is a single inbox entry. Receiver is free text and is not checked
// against registered users; ownership is decided by comparing names.
type Message struct {
	ID           int64
	Sender       string
	Receiver     string
	Subject      string
	Body         string
	CreatedAt    time.Time
	Read         bool
	AuthorUserID int64
}
