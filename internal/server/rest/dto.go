package rest

import (
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/server/services"
)

type CredentialsRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SendRequest struct {
	Receiver string `json:"receiver" validate:"required"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

type StatusResponse struct {
	Message string `json:"message"`
}

type SendResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	ID           int64     `json:"id"`
	Sender       string    `json:"sender"`
	Receiver     string    `json:"receiver"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	Read         bool      `json:"read"`
	Fresh        bool      `json:"fresh"`
	AuthorUserID int64     `json:"author_user_id"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func toTokenResponse(t *services.SessionToken, message string) TokenResponse {
	return TokenResponse{
		Token:     t.AccessToken,
		Name:      t.Identity.Name,
		ExpiresAt: t.ExpiresAt,
		Message:   message,
	}
}

func toMessageResponse(m *services.SurfacedMessage) MessageResponse {
	return MessageResponse{
		ID:           m.ID,
		Sender:       m.Sender,
		Receiver:     m.Receiver,
		Subject:      m.Subject,
		Body:         m.Body,
		CreatedAt:    m.CreatedAt,
		Read:         m.Read,
		Fresh:        m.Fresh,
		AuthorUserID: m.AuthorUserID,
	}
}

func toMessageResponses(msgs []*services.SurfacedMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}
