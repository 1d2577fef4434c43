// Package client talks to the DevFlow HTTP API and keeps client-side
// collections of tasks and notes in sync with it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"devflow/pkg/apierrors"
)

// APIError is returned for every non-2xx response. Message is the server's
// translated error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 30 * time.Second

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLanguage sets the Accept-Language sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	language   string

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token. SignIn and SignOut call it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var envelope apierrors.JsonErr
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.ErrDetails.Message != "" {
		apiErr.Message = envelope.ErrDetails.Message
	}
	return apiErr
}

func (c *Client) Register(ctx context.Context, email, password, username string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, &out)
	return out.User, err
}

// SignIn stores the issued token on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return Session{}, err
	}
	c.SetToken(session.Token)
	return session, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &out)
	return out.User, err
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, task NewTask) (Task, error) {
	var created Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", task, &created)
	return created, err
}

// UpdateTask sends fields as a PATCH, so allow-listed accounts can edit
// shared tasks too.
func (c *Client) UpdateTask(ctx context.Context, id string, fields Fields) (Task, error) {
	var updated Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), fields, &updated)
	return updated, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes)
	return notes, err
}

func (c *Client) CreateNote(ctx context.Context, note NewNote) (Note, error) {
	var created Note
	err := c.do(ctx, http.MethodPost, "/api/notes", note, &created)
	return created, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, fields Fields) (Note, error) {
	var updated Note
	err := c.do(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id), fields, &updated)
	return updated, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SearchUsers(ctx context.Context, email string) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/api/users/search?email="+url.QueryEscape(email), nil, &users)
	return users, err
}

func (c *Client) Friends(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/api/users/friends", nil, &users)
	return users, err
}

func (c *Client) FriendRequests(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/api/users/friend-requests", nil, &users)
	return users, err
}

// SendFriendRequest returns the server's confirmation message.
func (c *Client) SendFriendRequest(ctx context.Context, recipientID string) (string, error) {
	var out message
	err := c.do(ctx, http.MethodPost, "/api/users/friend-requests/send", map[string]string{
		"recipient_id": recipientID,
	}, &out)
	return out.Message, err
}

// RespondFriendRequest takes "accept" or "reject".
func (c *Client) RespondFriendRequest(ctx context.Context, senderID, action string) (string, error) {
	var out message
	err := c.do(ctx, http.MethodPatch, "/api/users/friend-requests/respond", map[string]string{
		"sender_id": senderID,
		"action":    action,
	}, &out)
	return out.Message, err
}
