package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxRequestBytes = 1 << 20

// decode reads a JSON body into v and runs struct validation on it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", common.ErrorValidation, err)
	}

	if err := s.validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("%w: %s is %s", common.ErrorValidation, jsonFieldName(verrs[0].Field()), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

func jsonFieldName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Password":
		return "password"
	case "Receiver":
		return "receiver"
	}
	return field
}

func messageID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: message id must be an integer, got %q", common.ErrorValidation, raw)
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Message: "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTokenResponse(token, "Registered and logged in as "+token.Identity.Name))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Name, req.Password, identityFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(token, "Logged in as "+token.Identity.Name))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), identityFrom(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Message: "Logged out"})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.inbox.Send(r.Context(), identityFrom(r.Context()), req.Receiver, req.Subject, req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, SendResponse{Message: "Message sent", ID: msg.ID})
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.inbox.ListAll(r.Context(), identityFrom(r.Context()))
	s.writeMessages(w, r, msgs, err)
}

func (s *Server) handleListUnread(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.inbox.ListUnread(r.Context(), identityFrom(r.Context()))
	s.writeMessages(w, r, msgs, err)
}

func (s *Server) writeMessages(w http.ResponseWriter, r *http.Request, msgs []*services.SurfacedMessage, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, m := range msgs {
		observeSurfaced(m.Fresh)
	}
	writeJSON(w, http.StatusOK, toMessageResponses(msgs))
}

func (s *Server) handleFetchOne(w http.ResponseWriter, r *http.Request) {
	id, err := messageID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.inbox.FetchOne(r.Context(), identityFrom(r.Context()), id)
	s.writeMessage(w, r, msg, err)
}

func (s *Server) handleFetchNext(w http.ResponseWriter, r *http.Request) {
	msg, err := s.inbox.FetchNextUnread(r.Context(), identityFrom(r.Context()))
	s.writeMessage(w, r, msg, err)
}

func (s *Server) writeMessage(w http.ResponseWriter, r *http.Request, msg *services.SurfacedMessage, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observeSurfaced(msg.Fresh)
	writeJSON(w, http.StatusOK, toMessageResponse(msg))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := messageID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.inbox.Delete(r.Context(), identityFrom(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "Message deleted"})
}
