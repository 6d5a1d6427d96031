package models

// Identity is the acting user resolved from a valid session. Every
// authorization decision compares Name against message sender/receiver.
type Identity struct {
	UserID    int64
	Name      string
	SessionID string
}
