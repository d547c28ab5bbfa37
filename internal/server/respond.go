package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pateldev/github-contributions/internal/domain"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, status int, code, message string, fields map[string][]string) {
	s.respondWithJSON(w, status, errorResponse{
		Error: errorBody{Code: code, Message: message, Fields: fields},
	})
}

// handleError maps the application error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a plain internal error.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		s.respondWithError(w, statusForCode(appErr.Code), string(appErr.Code), appErr.Message, appErr.Fields)
		return
	}
	log.Error().Err(err).Msg("Unhandled error")
	s.respondWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeRateLimited:
		return http.StatusServiceUnavailable
	case domain.ErrCodeUpstream, domain.ErrCodeSummarization:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
