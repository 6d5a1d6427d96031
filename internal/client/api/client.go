// Package api is a thin HTTP client for the inbox REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/client/models"
	"github.com/dmitrijs2005/gophinbox/internal/common"
)

// ErrUnavailable is returned when the server cannot be reached.
var ErrUnavailable = errors.New("server unavailable")

// APIError is an error response decoded from the server. It unwraps to the
// matching sentinel in internal/common so callers can use errors.Is.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Kind {
	case "not_found":
		return common.ErrorNotFound
	case "forbidden":
		return common.ErrorForbidden
	case "duplicate_name":
		return common.ErrorDuplicateName
	case "invalid_credential":
		return common.ErrorInvalidCredential
	case "unauthenticated":
		return common.ErrorUnauthenticated
	case "validation":
		return common.ErrorValidation
	}
	return common.ErrorInternal
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Register(ctx context.Context, name, password string) (*models.Token, error) {
	var out models.Token
	err := c.do(ctx, http.MethodPost, "/register", "", models.Credentials{Name: name, Password: password}, &out)
	return &out, err
}

// Login authenticates. token, if set, is the caller's current session, which
// the server ends before checking the credentials.
func (c *Client) Login(ctx context.Context, name, password, token string) (*models.Token, error) {
	var out models.Token
	err := c.do(ctx, http.MethodPost, "/login", token, models.Credentials{Name: name, Password: password}, &out)
	return &out, err
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, &models.Status{})
}

func (c *Client) Send(ctx context.Context, token string, m models.NewMessage) (int64, error) {
	var out models.Sent
	if err := c.do(ctx, http.MethodPost, "/messages", token, m, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListAll(ctx context.Context, token string) ([]models.Message, error) {
	var out []models.Message
	err := c.do(ctx, http.MethodGet, "/messages", token, nil, &out)
	return out, err
}

func (c *Client) ListUnread(ctx context.Context, token string) ([]models.Message, error) {
	var out []models.Message
	err := c.do(ctx, http.MethodGet, "/messages/unread", token, nil, &out)
	return out, err
}

func (c *Client) Next(ctx context.Context, token string) (*models.Message, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/next", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, token string, id int64) (*models.Message, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/"+strconv.FormatInt(id, 10), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+strconv.FormatInt(id, 10), token, nil, &models.Status{})
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var e struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&e)
	return &APIError{Status: resp.StatusCode, Kind: e.Error.Kind, Message: e.Error.Message}
}
