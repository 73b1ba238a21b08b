package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/mveldsman/gxproxy/internal/errors"
	"github.com/mveldsman/gxproxy/internal/gxweb"
	"github.com/mveldsman/gxproxy/internal/logger"
	"github.com/mveldsman/gxproxy/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}

// writeRaw passes a backend JSON body through unmodified.
func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// writeError converts the error taxonomy into the JSON envelope. A non-2xx
// backend answer keeps its own status code and body; everything else that
// has no explicit status is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Error("request failed", "id", middleware.GetRequestID(r), "path", r.URL.Path, "error", err)

	var apiErr *gxweb.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.StatusCode, map[string]any{
			"error":       "API returned HTTP error",
			"status_code": apiErr.StatusCode,
			"content":     apiErr.Body,
		})
		return
	}

	var statusErr *internal_errors.ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		writeJSON(w, statusErr.StatusCode, map[string]string{"error": statusErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "API request failed",
		"details": err.Error(),
	})
}

// intQueryParam reads a required integer query parameter.
func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "Missing " + name, StatusCode: http.StatusBadRequest}
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "Invalid " + name + ": must be an integer", StatusCode: http.StatusBadRequest}
	}
	return val, nil
}

func decodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("decoding request body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("validating request body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}
