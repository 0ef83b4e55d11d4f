package httpserver

import (
	"errors"
	"net/http"

	reportingerrors "timepay/contexts/monetization/reporting-service/domain/errors"
	reportinghttp "timepay/contexts/monetization/reporting-service/transport/http"
)

func writeReportingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reportinghttp.ErrorResponse{Code: code, Message: message})
}

func writeReportingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reportingerrors.ErrDeveloperNotFound):
		writeReportingError(w, http.StatusNotFound, "developer_not_found", err.Error())
	case errors.Is(err, reportingerrors.ErrInvalidMonth):
		writeReportingError(w, http.StatusBadRequest, "invalid_month", err.Error())
	default:
		writeReportingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleEarningsHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeReportingError)
	if !ok {
		return
	}

	resp, err := s.reporting.Handler.EarningsHistoryHandler(r.Context(), userID)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEarningsBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeReportingError)
	if !ok {
		return
	}

	resp, err := s.reporting.Handler.EarningsBreakdownHandler(r.Context(), userID, r.PathValue("month"))
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePayoutHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, writeReportingError)
	if !ok {
		return
	}

	resp, err := s.reporting.Handler.PayoutHistoryHandler(r.Context(), userID)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlatformStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeReportingError) {
		return
	}

	resp, err := s.reporting.Handler.PlatformStatsHandler(r.Context())
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopDevelopers(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeReportingError) {
		return
	}

	resp, err := s.reporting.Handler.TopDevelopersHandler(r.Context(), r.PathValue("month"))
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
