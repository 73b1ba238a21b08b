package handler

import (
	"context"
	"net/http"

	"github.com/mveldsman/gxproxy/internal/gxweb"
)

// SessionService is the session store surface the handlers use.
type SessionService interface {
	Login(ctx context.Context, username, password string) (string, error)
	IsAuthenticated() bool
}

// Backend issues the translated queries against GXWeb.
type Backend interface {
	Get(ctx context.Context, path string, q gxweb.Query) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
}

// Handler composes the session store and backend client behind the five
// frontend endpoints. The GXWeb credentials come from server-side config,
// never from client input.
type Handler struct {
	session  SessionService
	backend  Backend
	username string
	password string
}

func New(session SessionService, backend Backend, username, password string) *Handler {
	return &Handler{session, backend, username, password}
}

// Health is a liveness probe endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
