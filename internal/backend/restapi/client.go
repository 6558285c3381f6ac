// Package restapi implements the service.Service interface over the task REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskdash/internal/config"
	"taskdash/internal/logger"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20
)

// ErrResponseTooLarge is returned when a response body exceeds maxBodySize.
var ErrResponseTooLarge = errors.New("response too large")

// Client implements service.Service against the REST API.
type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

// New creates a client for cfg.APIURL.
// When the store holds a token, every request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config, store *session.Store) (*Client, error) {
	tok, err := store.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	httpClient := http.DefaultClient
	if tok != nil {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	}
	return NewWithHTTPClient(cfg.APIURL, httpClient), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		log:     logger.With("component", "restapi"),
	}
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	var res service.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	var res service.AuthResult
	body := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
	}
	if err := c.do(ctx, http.MethodPost, "/register", body, &res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// UpdateProfile implements service.Service.
func (c *Client) UpdateProfile(ctx context.Context, in service.ProfileInput) (service.User, error) {
	var res struct {
		User service.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/user/update", in, &res); err != nil {
		return service.User{}, err
	}
	return res.User, nil
}

// Logout implements service.Service.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// ListTasks implements service.Service.
// The API answers either with a bare array or with {"data": [...]}.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &raw); err != nil {
		return nil, err
	}
	return decodeTaskList(raw)
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) error {
	return c.do(ctx, http.MethodPost, "/tasks", in, nil)
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int64, in service.TaskInput) error {
	return c.do(ctx, http.MethodPut, taskPath(id), in, nil)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// do sends one request and decodes a 2xx JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return wrapError(err)
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("%s %s: %w (limit %d bytes)", method, path, ErrResponseTooLarge, maxBodySize)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
