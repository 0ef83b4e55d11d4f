package httpserver

import (
	"errors"
	"net/http"

	trackingerrors "timepay/contexts/engagement/tracking-service/domain/errors"
	trackinghttp "timepay/contexts/engagement/tracking-service/transport/http"
)

func writeTrackingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, trackinghttp.ErrorResponse{Code: code, Message: message})
}

func writeTrackingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trackingerrors.ErrInvalidKeyName):
		writeTrackingError(w, http.StatusBadRequest, "invalid_key_name", err.Error())
	case errors.Is(err, trackingerrors.ErrAPIKeyNotFound):
		writeTrackingError(w, http.StatusNotFound, "api_key_not_found", err.Error())
	case errors.Is(err, trackingerrors.ErrDeveloperNotFound):
		writeTrackingError(w, http.StatusNotFound, "developer_not_found", err.Error())
	case errors.Is(err, trackingerrors.ErrInvalidSample):
		writeTrackingError(w, http.StatusBadRequest, "invalid_sample", err.Error())
	default:
		writeTrackingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeTrackingError)
	if !ok {
		return
	}

	resp, err := s.tracking.Handler.ListAPIKeysHandler(r.Context(), userID)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeTrackingError)
	if !ok {
		return
	}

	var req trackinghttp.CreateAPIKeyRequest
	if !s.decodeJSON(w, r, &req, writeTrackingError) {
		return
	}

	resp, err := s.tracking.Handler.CreateAPIKeyHandler(r.Context(), userID, req)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeTrackingError)
	if !ok {
		return
	}

	resp, err := s.tracking.Handler.DeleteAPIKeyHandler(r.Context(), userID, r.PathValue("key_id"))
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRecordSample authenticates by api key in the body, not by headers:
// the producer is an embedded snippet, not a logged-in user.
func (s *Server) handleRecordSample(w http.ResponseWriter, r *http.Request) {
	var req trackinghttp.RecordSampleRequest
	if !s.decodeJSON(w, r, &req, writeTrackingError) {
		return
	}
	if req.APIKey == "" {
		writeTrackingError(w, http.StatusUnauthorized, "missing_api_key", "api_key is required")
		return
	}

	resp, err := s.tracking.Handler.RecordSampleHandler(r.Context(), req)
	if err != nil {
		writeTrackingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
