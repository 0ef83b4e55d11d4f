package httpserver

import (
	"errors"
	"net/http"

	settingserrors "timepay/contexts/monetization/settings-service/domain/errors"
	settingshttp "timepay/contexts/monetization/settings-service/transport/http"
)

func writeSettingsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, settingshttp.ErrorResponse{Code: code, Message: message})
}

func writeSettingsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settingserrors.ErrInvalidSettings):
		writeSettingsError(w, http.StatusUnprocessableEntity, "invalid_settings", err.Error())
	default:
		writeSettingsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeSettingsError) {
		return
	}

	resp, err := s.settings.Handler.GetSettingsHandler(r.Context())
	if err != nil {
		writeSettingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r, writeSettingsError) {
		return
	}

	var req settingshttp.UpdateSettingsRequest
	if !s.decodeJSON(w, r, &req, writeSettingsError) {
		return
	}

	resp, err := s.settings.Handler.UpdateSettingsHandler(r.Context(), req)
	if err != nil {
		writeSettingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
