package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	sessionRepo "github.com/Konrad-GB/voting-website/internal/repositories/session"
	tokenRepo "github.com/Konrad-GB/voting-website/internal/repositories/token"
	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

// responseWriter captures the status code written by a handler
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON writes v as a JSON response body
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError maps a service error to an HTTP status and writes it
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	respondJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, sessionService.ErrUnauthorized),
		errors.Is(err, sessionService.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, sessionService.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessionService.ErrSessionCompleted),
		errors.Is(err, sessionRepo.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, sessionService.ErrPollIndexOutOfRange),
		errors.Is(err, sessionService.ErrNoMediaItems),
		errors.Is(err, sessionService.ErrInvalidMediaURL),
		errors.Is(err, sessionService.ErrInvalidMediaType),
		errors.Is(err, sessionService.ErrInvalidTimer),
		errors.Is(err, sessionService.ErrReorderMismatch),
		errors.Is(err, sessionService.ErrPollNotActive),
		errors.Is(err, sessionService.ErrInvalidRating),
		errors.Is(err, sessionService.ErrVotingClosed):
		return http.StatusBadRequest
	case errors.Is(err, sessionRepo.ErrStoreUnavailable),
		errors.Is(err, tokenRepo.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// bearerToken extracts the host token from the Authorization header
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimPrefix(auth, prefix)
	}
	return ""
}
