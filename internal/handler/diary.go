package handler

import (
	"net/http"

	"github.com/mveldsman/gxproxy/internal/gxweb"
)

// GetDiary lists all diaries. Client-supplied fields/filter parameters are
// ignored: GXWeb enforces exact query parity with its reference client.
func (h *Handler) GetDiary(w http.ResponseWriter, r *http.Request) {
	body, err := h.backend.Get(r.Context(), "/api/diary", gxweb.DiaryQuery())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body)
}
