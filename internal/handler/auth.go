package handler

import (
	"net/http"

	"github.com/mveldsman/gxproxy/internal/logger"
)

// sessionUIDCookie carries the backend-reported user identifier to the
// browser. It is opaque to the proxy; the real credential never leaves the
// server.
const sessionUIDCookie = "session_UID"

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	uid, err := h.session.Login(r.Context(), h.username, h.password)
	if err != nil {
		logger.Log.Error("gxweb login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     sessionUIDCookie,
		Value:    uid,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"session_UID": uid,
	})
}
