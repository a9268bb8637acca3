package adminclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized means the server rejected the credentials; the caller must
// re-authenticate.
var ErrUnauthorized = errors.New("admin authentication required")

// Session mirrors the server's admin session document.
type Session struct {
	SessionID  string    `json:"sessionId"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Client talks to the admin session endpoints of a wheel backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login exchanges the admin token for a new session.
func (c *Client) Login(token string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/admin/session", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doSession(req, http.StatusCreated)
}

// Refresh touches an existing session, extending its expiry.
func (c *Client) Refresh(sessionID string) (*Session, error) {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/admin/session/refresh", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-admin-session", sessionID)

	return c.doSession(req, http.StatusOK)
}

// Logout revokes a session. The server treats unknown ids as a no-op.
func (c *Client) Logout(sessionID string) error {
	req, err := http.NewRequest(http.MethodDelete, c.BaseURL+"/api/admin/session", nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-admin-session", sessionID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) doSession(req *http.Request, wantStatus int) (*Session, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &session, nil
}
