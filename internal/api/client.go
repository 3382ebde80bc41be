// Package api is the single HTTP client for the developer-panel backend.
// One generic typed resource client replaces the per-entity wrapper modules
// the old panel carried; every operation is a fresh round trip with the
// bearer token read from the session store at call time.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"panelctl/internal/logging"
	"panelctl/internal/session"
)

// Client issues requests against the configured base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// New creates a client. baseURL includes the router prefix
// (e.g. http://localhost:8000/developer_panel); timeout bounds each request.
func New(baseURL string, timeout time.Duration, sessions *session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
	}
}

// Sessions exposes the session store the client reads tokens from.
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// loginRequest/loginResponse mirror the backend's login contract.
type loginRequest struct {
	DeveloperLogin    string `json:"developer_login"`
	DeveloperPassword string `json:"developer_password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates and persists the session on success. Failure leaves
// the stored session untouched.
func (c *Client) Login(ctx context.Context, login, password string) (*session.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login/", loginRequest{
		DeveloperLogin:    login,
		DeveloperPassword: password,
	}, &resp, false)
	if err != nil {
		logging.SessionError("login failed for %s: %v", login, err)
		return nil, err
	}

	sess := session.Session{Token: resp.AccessToken, UserLogin: login}
	if err := c.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	logging.Session("login ok for %s", login)
	return &sess, nil
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	logging.Session("logout")
	return c.sessions.Clear()
}

// do runs one request/response cycle. With auth true the bearer token is
// read from the session store at call time; a missing token short-circuits
// to ErrNoSession before anything is dispatched.
func (c *Client) do(ctx context.Context, method, path string, body, out any, auth bool) error {
	var token string
	if auth {
		sess := c.sessions.Current()
		if sess == nil {
			logging.APIError("%s %s: no session", method, path)
			return ErrNoSession
		}
		token = sess.Token
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	timer := logging.StartTimer(logging.CategoryAPI, method+" "+path)
	resp, err := c.http.Do(req)
	timer.Stop()
	if err != nil {
		logging.APIError("%s %s: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: extractDetail(data)}
		logging.APIError("%s %s: %v", method, path, apiErr)
		return apiErr
	}

	logging.API("%s %s -> %d", method, path, resp.StatusCode)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// extractDetail pulls the backend's {"detail": "..."} message; when absent
// the raw body serves as the detail.
func extractDetail(data []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}
