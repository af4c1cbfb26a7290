package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirescope/internal/config"
	"hirescope/internal/engine"
	hirescopeErrors "hirescope/internal/errors"
	"hirescope/internal/types"
)

func TestHealthHandlerHealthy(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := serveRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want %q", resp["status"], "healthy")
	}
	if resp["service"] != "hirescope" {
		t.Errorf("service = %v, want %q", resp["service"], "hirescope")
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want %q", resp["version"], "test")
	}

	extractors, ok := resp["extractors"].(map[string]any)
	if !ok {
		t.Fatalf("extractors missing from response: %v", resp)
	}
	if extractors["healthy"] != true {
		t.Errorf("extractors.healthy = %v, want true", extractors["healthy"])
	}

	catalog, ok := resp["catalog"].(map[string]any)
	if !ok {
		t.Fatalf("catalog missing from response: %v", resp)
	}
	if terms, _ := catalog["terms"].(float64); terms <= 0 {
		t.Errorf("catalog.terms = %v, want > 0", catalog["terms"])
	}
	hotReload, _ := catalog["hot_reload"].(map[string]any)
	if hotReload["enabled"] != false {
		t.Errorf("catalog.hot_reload.enabled = %v, want false", hotReload["enabled"])
	}

	storage, ok := resp["storage"].(map[string]any)
	if !ok {
		t.Fatalf("storage missing from response: %v", resp)
	}
	if storage["jobs"] != float64(0) || storage["resumes"] != float64(0) {
		t.Errorf("storage = %v, want zero counts", storage)
	}

	if _, ok := resp["certificates"]; ok {
		t.Error("certificates reported without a certificate manager")
	}
}

func TestHealthHandlerDegradedWithoutExtractor(t *testing.T) {
	s := newTestServer(t)
	s.Extractor = nil

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := serveRequest(t, s, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusServiceUnavailable, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["status"] != "degraded" {
		t.Errorf("status = %v, want %q", resp["status"], "degraded")
	}
	extractors, _ := resp["extractors"].(map[string]any)
	if extractors["healthy"] != false {
		t.Errorf("extractors.healthy = %v, want false", extractors["healthy"])
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := serveRequest(t, newTestServer(t), req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestGetHealthCheckTimeout(t *testing.T) {
	s := newTestServer(t)
	if got := s.getHealthCheckTimeout(); got != 15*time.Second {
		t.Errorf("timeout = %v, want the 15s fallback", got)
	}

	s.AppConfig.Observability.HealthCheck.Timeout = 3 * time.Second
	if got := s.getHealthCheckTimeout(); got != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", got)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t)
	s.MaxJSONBody = 1 << 20
	s.MaxUploadSize = 10 << 20
	s.Store.AddJob("Backend Engineer", types.PredictionResult{Count: 120, Category: engine.VolumeMedium})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := serveRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["service"] != "hirescope" {
		t.Errorf("service = %v, want %q", resp["service"], "hirescope")
	}

	server, _ := resp["server"].(map[string]any)
	if server["max_json_body_bytes"] != float64(1<<20) {
		t.Errorf("max_json_body_bytes = %v, want %d", server["max_json_body_bytes"], 1<<20)
	}
	if server["max_upload_size_bytes"] != float64(10<<20) {
		t.Errorf("max_upload_size_bytes = %v, want %d", server["max_upload_size_bytes"], 10<<20)
	}

	storage, _ := resp["storage"].(map[string]any)
	if storage["jobs"] != float64(1) {
		t.Errorf("storage.jobs = %v, want 1", storage["jobs"])
	}

	rateLimiting, _ := resp["rate_limiting"].(map[string]any)
	if rateLimiting["enabled"] != false {
		t.Errorf("rate_limiting.enabled = %v, want false", rateLimiting["enabled"])
	}
	if _, ok := resp["rate_limit_config"]; ok {
		t.Error("rate_limit_config present without rate limit configuration")
	}
}

func TestStatsHandlerWithRateLimiting(t *testing.T) {
	s := newTestServer(t)
	s.RateLimit = &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  5,
		Window:         time.Minute,
	}
	s.RateLimiter = NewRateLimiter(60, time.Minute, 5, s.Logger)
	defer s.RateLimiter.Close()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := serveRequest(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)

	rateLimiting, _ := resp["rate_limiting"].(map[string]any)
	if rateLimiting["burst_capacity"] != float64(5) {
		t.Errorf("burst_capacity = %v, want 5", rateLimiting["burst_capacity"])
	}
	if rateLimiting["rate_per_minute"] != float64(60) {
		t.Errorf("rate_per_minute = %v, want 60", rateLimiting["rate_per_minute"])
	}

	cfg, ok := resp["rate_limit_config"].(map[string]any)
	if !ok {
		t.Fatalf("rate_limit_config missing from response: %v", resp)
	}
	if cfg["requests_per_min"] != float64(60) {
		t.Errorf("requests_per_min = %v, want 60", cfg["requests_per_min"])
	}
	if cfg["window"] != "1m0s" {
		t.Errorf("window = %v, want %q", cfg["window"], "1m0s")
	}
}

func TestStatsHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/stats", nil)
	rec := serveRequest(t, newTestServer(t), req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "file too large maps to 413",
			err:  hirescopeErrors.NewValidationError(hirescopeErrors.ErrCodeFileTooLarge, "document exceeds the size limit", nil),
			want: http.StatusRequestEntityTooLarge,
		},
		{
			name: "open breaker maps to 503",
			err:  hirescopeErrors.NewProcessingError(hirescopeErrors.ErrCodeExtractorUnavailable, "document parsing is temporarily unavailable", nil),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "validation errors map to 400",
			err:  hirescopeErrors.NewValidationError(hirescopeErrors.ErrCodeUnsupportedFormat, "unsupported document format", nil),
			want: http.StatusBadRequest,
		},
		{
			name: "processing errors map to 500",
			err:  hirescopeErrors.NewProcessingError(hirescopeErrors.ErrCodeExtractionFailed, "could not extract text", nil),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped typed errors are unwrapped",
			err:  fmt.Errorf("handling upload: %w", hirescopeErrors.NewValidationError(hirescopeErrors.ErrCodeFileTooLarge, "too big", nil)),
			want: http.StatusRequestEntityTooLarge,
		},
		{
			name: "untyped errors map to 500",
			err:  fmt.Errorf("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserFacingError(t *testing.T) {
	appErr := hirescopeErrors.NewValidationError(hirescopeErrors.ErrCodeUnsupportedFormat, "unsupported document format", fmt.Errorf("parser detail"))
	if got := userFacingError(appErr); got != "unsupported document format" {
		t.Errorf("userFacingError() = %q, want the message without cause detail", got)
	}
	if got := userFacingError(fmt.Errorf("boom")); got != "boom" {
		t.Errorf("userFacingError() = %q, want %q", got, "boom")
	}
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErrorResponse(rec, "Resume file is required.", http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Error != "Resume file is required." {
		t.Errorf("error = %q, want %q", resp.Error, "Resume file is required.")
	}
}
