package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	trackingservice "timepay/contexts/engagement/tracking-service"
	distributionengine "timepay/contexts/monetization/distribution-engine"
	reportingservice "timepay/contexts/monetization/reporting-service"
	reportingentities "timepay/contexts/monetization/reporting-service/domain/entities"
	settingsservice "timepay/contexts/monetization/settings-service"
)

const testAdminToken = "admin-secret"

func newTestServer() *Server {
	return New(
		distributionengine.NewInMemoryModule(nil),
		settingsservice.NewInMemoryModule(nil),
		reportingservice.NewInMemoryModule(nil),
		trackingservice.NewInMemoryModule(nil),
		testAdminToken,
		nil,
		":0",
	)
}

func TestCalculateRevenueRequiresAdminToken(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/revenue/calculate", bytes.NewReader([]byte(`{"month":"2025-02"}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCalculateRevenueRejectsWrongAdminToken(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/revenue/calculate", bytes.NewReader([]byte(`{"month":"2025-02"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "guess")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCalculateRevenueFlow(t *testing.T) {
	server := newTestServer()
	store := server.distribution.Store
	store.SeedUser("u-1", true)
	store.SeedWebsite("dev-1", "site-a", "Site A")
	store.AddSample("u-1", "site-a", 3600, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))

	body := []byte(`{"month":"2025-02"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/revenue/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", testAdminToken)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Month          string `json:"month"`
			DeveloperCount int    `json:"developer_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if resp.Status != "success" || resp.Data.Month != "2025-02" || resp.Data.DeveloperCount != 1 {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}

	// A second run for the same month is a conflict.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/revenue/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", testAdminToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate run: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The run log is now readable.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/revenue/runs/2025-02", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("run log: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetRunLogNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/revenue/runs/2025-02", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/revenue/settings", bytes.NewReader([]byte(`{"platform_fee_percentage":140}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", testAdminToken)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/revenue/settings", nil)
	req.Header.Set("X-Admin-Token", testAdminToken)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEarningsRequireUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/earnings", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEarningsUnknownDeveloperIs404(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/earnings", nil)
	req.Header.Set("X-User-Id", "stranger")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEarningsHistorySuccess(t *testing.T) {
	server := newTestServer()
	store := server.reporting.Store
	store.SeedDeveloper("user-1", "dev-1")
	store.AddMonthlyEarning("dev-1", reportingentities.MonthlyEarning{Month: "2025-02", AmountCents: 4662})

	req := httptest.NewRequest(http.MethodGet, "/api/earnings", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAPIKeyAndTrackingFlow(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/keys", bytes.NewReader([]byte(`{"name":"My Game","website":"example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create key: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var created struct {
		Data struct {
			Key string `json:"key"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}

	websiteID := server.tracking.Store.Websites()[0].WebsiteID
	sample := map[string]any{
		"api_key":          created.Data.Key,
		"website_id":       websiteID,
		"duration_seconds": 300,
		"user_id":          "viewer-1",
	}
	body, _ := json.Marshal(sample)
	req = httptest.NewRequest(http.MethodPost, "/api/tracking", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("tracking: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Negative durations are rejected.
	sample["duration_seconds"] = -5
	body, _ = json.Marshal(sample)
	req = httptest.NewRequest(http.MethodPost, "/api/tracking", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("negative duration: expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
