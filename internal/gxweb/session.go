package gxweb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mveldsman/gxproxy/internal/logger"
)

const (
	// sessionTimeoutSeconds is the session lifetime requested from GXWeb
	// on login (3 days).
	sessionTimeoutSeconds = 259200

	credentialCookieName = "session_id"
)

// Session holds the single process-wide GXWeb credential. All frontend
// clients share it; readers always observe a complete (credential,
// authenticated) pair because both fields change under one lock.
type Session struct {
	client *Client

	mu            sync.RWMutex
	credential    string
	authenticated bool
}

// NewSession creates the session store and attaches it to the client, so
// every call after a successful login carries the stored credential.
func NewSession(client *Client) *Session {
	s := &Session{client: client}
	client.session = s
	return s
}

// Login authenticates against GXWeb with a password assertion and stores
// the session_id credential from the response's Set-Cookie header. On any
// failure the store ends up unauthenticated; a credential from an earlier
// login is never silently reused.
func (s *Session) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]any{
		"model": map[string]any{"timeout": sessionTimeoutSeconds},
		"auth": []any{
			[]any{"password", map[string]string{"username": username, "password": password}},
		},
	}

	resp, err := s.client.postForResponse(ctx, "/api/session", payload)
	if err != nil {
		s.clear()
		return "", err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		s.clear()
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.clear()
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var loginResp struct {
		Data struct {
			UID json.Number `json:"uid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil {
		s.clear()
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if loginResp.Data.UID.String() == "" {
		s.clear()
		return "", fmt.Errorf("no session uid in login response")
	}

	// The raw headers are parsed instead of resp.Cookies(): Go's cookie
	// parser strips the quotes GXWeb expects echoed back verbatim. The
	// backend may set other cookies first, so every header is checked.
	var credential string
	var ok bool
	for _, header := range resp.Header.Values("Set-Cookie") {
		if credential, ok = ExtractCookie(header, credentialCookieName); ok {
			break
		}
	}
	if !ok {
		s.clear()
		return "", fmt.Errorf("no %s cookie in login response", credentialCookieName)
	}

	s.mu.Lock()
	s.credential = credential
	s.authenticated = true
	s.mu.Unlock()

	logger.Log.Info("gxweb session established", "uid", loginResp.Data.UID.String())
	return loginResp.Data.UID.String(), nil
}

// IsAuthenticated reports whether a login has succeeded and not been
// superseded by a failed one.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CredentialHeader renders the stored credential as the exact Cookie
// header value GXWeb requires, or "" when unauthenticated.
func (s *Session) CredentialHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated {
		return ""
	}
	return credentialCookieName + "=" + s.credential
}

func (s *Session) clear() {
	s.mu.Lock()
	s.credential = ""
	s.authenticated = false
	s.mu.Unlock()
}
