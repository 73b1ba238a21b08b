package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	t.Run("successful login sets session_UID cookie", func(t *testing.T) {
		session := &MockSession{
			MockLogin: func(ctx context.Context, username, password string) (string, error) {
				assert.Equal(t, "doc", username)
				assert.Equal(t, "secret", password)
				return "42", nil
			},
		}
		h := New(session, &MockBackend{}, "doc", "secret")
		router := newTestRouter(h, session)

		req := createRequest(t, http.MethodPost, "/login", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"session_UID":"42"}`, rr.Body.String())

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, "session_UID", cookie.Name)
		assert.Equal(t, "42", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("failed login reports error without cookie", func(t *testing.T) {
		session := &MockSession{
			MockLogin: func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("gxweb unreachable")
			},
		}
		h := New(session, &MockBackend{}, "doc", "secret")
		router := newTestRouter(h, session)

		req := createRequest(t, http.MethodPost, "/login", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"success":false,"error":"gxweb unreachable"}`, rr.Body.String())
		assert.Empty(t, rr.Result().Cookies())
	})
}
