package gxweb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginBackend(t *testing.T, status int, setCookie string, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/session", r.URL.Path)

		var payload struct {
			Model struct {
				Timeout int `json:"timeout"`
			} `json:"model"`
			Auth []json.RawMessage `json:"auth"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 259200, payload.Model.Timeout)
		require.Len(t, payload.Auth, 1)
		assert.JSONEq(t, `["password",{"username":"doc","password":"secret"}]`, string(payload.Auth[0]))

		if setCookie != "" {
			w.Header().Set("Set-Cookie", setCookie)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestSessionLogin(t *testing.T) {
	t.Run("successful login stores quoted credential", func(t *testing.T) {
		backend := newLoginBackend(t, http.StatusOK,
			`session_id="abc123"; Path=/; HttpOnly`,
			`{"data":{"uid":42}}`)
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		uid, err := session.Login(context.Background(), "doc", "secret")
		require.NoError(t, err)
		assert.Equal(t, "42", uid)
		assert.True(t, session.IsAuthenticated())
		assert.Equal(t, `session_id="abc123"`, session.CredentialHeader())
	})

	t.Run("non-2xx leaves store unauthenticated", func(t *testing.T) {
		backend := newLoginBackend(t, http.StatusForbidden, "", `{"error":"bad credentials"}`)
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		_, err := session.Login(context.Background(), "doc", "secret")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
		assert.False(t, session.IsAuthenticated())
		assert.Empty(t, session.CredentialHeader())
	})

	t.Run("any 2xx status is accepted", func(t *testing.T) {
		backend := newLoginBackend(t, http.StatusCreated,
			`session_id="abc123"; Path=/`, `{"data":{"uid":42}}`)
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		uid, err := session.Login(context.Background(), "doc", "secret")
		require.NoError(t, err)
		assert.Equal(t, "42", uid)
		assert.True(t, session.IsAuthenticated())
	})

	t.Run("missing uid leaves store unauthenticated", func(t *testing.T) {
		backend := newLoginBackend(t, http.StatusOK,
			`session_id="abc123"; Path=/`, `{}`)
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		_, err := session.Login(context.Background(), "doc", "secret")
		require.Error(t, err)
		assert.False(t, session.IsAuthenticated())
		assert.Empty(t, session.CredentialHeader())
	})

	t.Run("session cookie found among other Set-Cookie headers", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Set-Cookie", "AWSALB=affinity; Path=/")
			w.Header().Add("Set-Cookie", `session_id="abc123"; Path=/; HttpOnly`)
			w.Write([]byte(`{"data":{"uid":42}}`))
		}))
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		_, err := session.Login(context.Background(), "doc", "secret")
		require.NoError(t, err)
		assert.True(t, session.IsAuthenticated())
		assert.Equal(t, `session_id="abc123"`, session.CredentialHeader())
	})

	t.Run("missing session_id cookie fails login", func(t *testing.T) {
		backend := newLoginBackend(t, http.StatusOK, "other=x; Path=/", `{"data":{"uid":42}}`)
		defer backend.Close()

		client := NewClient(Options{BaseURL: backend.URL})
		session := NewSession(client)

		_, err := session.Login(context.Background(), "doc", "secret")
		require.Error(t, err)
		assert.False(t, session.IsAuthenticated())
	})

	t.Run("failed login clears earlier credential", func(t *testing.T) {
		good := newLoginBackend(t, http.StatusOK,
			`session_id="abc123"; Path=/`, `{"data":{"uid":42}}`)
		defer good.Close()

		client := NewClient(Options{BaseURL: good.URL})
		session := NewSession(client)
		_, err := session.Login(context.Background(), "doc", "secret")
		require.NoError(t, err)
		require.True(t, session.IsAuthenticated())

		client.baseURL = "http://127.0.0.1:1" // unreachable
		_, err = session.Login(context.Background(), "doc", "secret")
		require.Error(t, err)
		assert.False(t, session.IsAuthenticated())
		assert.Empty(t, session.CredentialHeader())
	})
}
