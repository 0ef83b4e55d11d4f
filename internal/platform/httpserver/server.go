package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	trackingservice "timepay/contexts/engagement/tracking-service"
	distributionengine "timepay/contexts/monetization/distribution-engine"
	reportingservice "timepay/contexts/monetization/reporting-service"
	settingsservice "timepay/contexts/monetization/settings-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "timepay/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	adminToken   string
	distribution distributionengine.Module
	settings     settingsservice.Module
	reporting    reportingservice.Module
	tracking     trackingservice.Module
}

func New(
	distribution distributionengine.Module,
	settings settingsservice.Module,
	reporting reportingservice.Module,
	tracking trackingservice.Module,
	adminToken string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		adminToken:   adminToken,
		distribution: distribution,
		settings:     settings,
		reporting:    reporting,
		tracking:     tracking,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/admin/revenue/calculate", s.handleCalculateRevenue)
	s.mux.HandleFunc("GET /api/admin/revenue/runs/{month}", s.handleGetRunLog)
	s.mux.HandleFunc("PATCH /api/admin/payouts/{payout_id}", s.handleUpdatePayout)

	s.mux.HandleFunc("GET /api/admin/revenue/settings", s.handleGetSettings)
	s.mux.HandleFunc("PUT /api/admin/revenue/settings", s.handleUpdateSettings)

	s.mux.HandleFunc("GET /api/admin/revenue/stats", s.handlePlatformStats)
	s.mux.HandleFunc("GET /api/admin/revenue/top-developers/{month}", s.handleTopDevelopers)

	s.mux.HandleFunc("GET /api/earnings", s.handleEarningsHistory)
	s.mux.HandleFunc("GET /api/earnings/{month}", s.handleEarningsBreakdown)
	s.mux.HandleFunc("GET /api/payouts", s.handlePayoutHistory)

	s.mux.HandleFunc("GET /api/keys", s.handleListAPIKeys)
	s.mux.HandleFunc("POST /api/keys", s.handleCreateAPIKey)
	s.mux.HandleFunc("DELETE /api/keys/{key_id}", s.handleDeleteAPIKey)
	s.mux.HandleFunc("POST /api/tracking", s.handleRecordSample)
}

type errorWriter func(w http.ResponseWriter, status int, code string, message string)

// requireAdmin gates the admin surface: a missing token is an identity
// failure, a wrong one is a capability failure.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request, writeError errorWriter) bool {
	token := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing_admin_token", "X-Admin-Token header is required")
		return false
	}
	if s.adminToken == "" || token != s.adminToken {
		writeError(w, http.StatusForbidden, "forbidden", "admin token does not match")
		return false
	}
	return true
}

func requireUser(w http.ResponseWriter, r *http.Request, writeError errorWriter) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, writeError errorWriter) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
