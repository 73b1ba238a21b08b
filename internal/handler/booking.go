package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mveldsman/gxproxy/internal/daysheet"
	internal_errors "github.com/mveldsman/gxproxy/internal/errors"
	"github.com/mveldsman/gxproxy/internal/gxweb"
)

func (h *Handler) GetBookingStatuses(w http.ResponseWriter, r *http.Request) {
	diaryUID, err := intQueryParam(r, "diary_uid")
	if err != nil {
		writeError(w, r, err)
		return
	}
	entityUID, err := intQueryParam(r, "entity_uid")
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := h.backend.Get(r.Context(), "/api/booking_status", gxweb.BookingStatusQuery(entityUID, diaryUID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body)
}

func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	diaryUID, err := intQueryParam(r, "diary_uid")
	if err != nil {
		writeError(w, r, err)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, r, &internal_errors.ErrorWithStatusCode{Message: "Missing date", StatusCode: http.StatusBadRequest})
		return
	}

	raw, err := h.backend.Get(r.Context(), "/api/booking", gxweb.BookingsForDayQuery(diaryUID, date))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload struct {
		Data []daysheet.Booking `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeError(w, r, fmt.Errorf("failed to parse bookings response: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":   daysheet.FormatDay(payload.Data),
		"status": "OK",
	})
}

// AddBooking forwards the client's booking model verbatim, wrapped as
// {model: ...}; no field is added or dropped on the way through.
func (h *Handler) AddBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model json.RawMessage `json:"model" validate:"required"`
	}
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if len(body.Model) == 0 || string(body.Model) == "null" {
		writeError(w, r, &internal_errors.ErrorWithStatusCode{Message: "Missing booking data", StatusCode: http.StatusBadRequest})
		return
	}

	raw, err := h.backend.Post(r.Context(), "/api/booking", map[string]json.RawMessage{"model": body.Model})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, raw)
}
