package httpserver

import (
	"errors"
	"net/http"

	distributionerrors "timepay/contexts/monetization/distribution-engine/domain/errors"
	distributionhttp "timepay/contexts/monetization/distribution-engine/transport/http"
)

func writeDistributionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, distributionhttp.ErrorResponse{Code: code, Message: message})
}

func writeDistributionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, distributionerrors.ErrInvalidMonth):
		writeDistributionError(w, http.StatusBadRequest, "invalid_month", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidSettings):
		writeDistributionError(w, http.StatusUnprocessableEntity, "invalid_settings", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidUsage):
		writeDistributionError(w, http.StatusUnprocessableEntity, "invalid_usage", err.Error())
	case errors.Is(err, distributionerrors.ErrDuplicateRun):
		writeDistributionError(w, http.StatusConflict, "duplicate_run", err.Error())
	case errors.Is(err, distributionerrors.ErrRunNotFound):
		writeDistributionError(w, http.StatusNotFound, "run_not_found", err.Error())
	case errors.Is(err, distributionerrors.ErrPayoutNotFound):
		writeDistributionError(w, http.StatusNotFound, "payout_not_found", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidPayoutStatus):
		writeDistributionError(w, http.StatusBadRequest, "invalid_payout_status", err.Error())
	case errors.Is(err, distributionerrors.ErrInvalidPayoutTransition):
		writeDistributionError(w, http.StatusConflict, "invalid_payout_transition", err.Error())
	default:
		writeDistributionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCalculateRevenue(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeDistributionError) {
		return
	}

	req := distributionhttp.CalculateRevenueRequest{}
	if r.ContentLength != 0 {
		if !s.decodeJSON(w, r, &req, writeDistributionError) {
			return
		}
	}

	resp, err := s.distribution.Handler.CalculateRevenueHandler(r.Context(), req)
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRunLog(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeDistributionError) {
		return
	}

	resp, err := s.distribution.Handler.GetRunLogHandler(r.Context(), r.PathValue("month"))
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePayout(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeDistributionError) {
		return
	}

	var req distributionhttp.UpdatePayoutRequest
	if !s.decodeJSON(w, r, &req, writeDistributionError) {
		return
	}

	resp, err := s.distribution.Handler.UpdatePayoutHandler(r.Context(), r.PathValue("payout_id"), req)
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
