// Package models defines the JSON shapes the CLI exchanges with the server.
package models

import (
	"fmt"
	"time"
)

type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type Token struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

type NewMessage struct {
	Receiver string `json:"receiver"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type Sent struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type Status struct {
	Message string `json:"message"`
}

type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
	Fresh     bool      `json:"fresh"`
}

// Summary is the one-line listing form.
func (m Message) Summary() string {
	mark := " "
	if m.Fresh {
		mark = "*"
	}
	return fmt.Sprintf("%s %5d  %-16s  %s  %s", mark, m.ID, m.Sender, m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Subject)
}

// String renders the full message.
func (m Message) String() string {
	return fmt.Sprintf("ID:      %d\nFrom:    %s\nTo:      %s\nDate:    %s\nSubject: %s\n\n%s",
		m.ID, m.Sender, m.Receiver, m.CreatedAt.Local().Format(time.RFC1123), m.Subject, m.Body)
}
