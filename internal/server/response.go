package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// AppError is an error with the status and message a client should see.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"detail"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// WrapError attaches a client-facing message and status to err.
func WrapError(err error, message string, code int) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WriteResponse encodes data as JSON with the given status.
func WriteResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// WriteError renders err as {"detail": ...}. Errors that are not an
// *AppError become a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			slog.Error("request failed", "status", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		}
		WriteResponse(w, appErr.Code, map[string]string{"detail": appErr.Message})
		return
	}
	slog.Error("unhandled error", "error", err)
	WriteResponse(w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
}
