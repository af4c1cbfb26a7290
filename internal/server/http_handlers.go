package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	hirescopeErrors "hirescope/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	timeout := s.AppConfig.Observability.HealthCheck.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return timeout
}

// healthReport is the outcome of a full health evaluation
type healthReport struct {
	healthy  bool
	response map[string]any
}

// healthHandler provides a comprehensive health check endpoint covering the
// extraction breakers, skill catalog, analytics store, and TLS certificates
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.getHealthCheckTimeout())
	defer cancel()

	// Evaluate in a goroutine so a wedged subsystem cannot hang the probe
	reportCh := make(chan healthReport, 1)
	go func() { reportCh <- s.collectHealth() }()

	var report healthReport
	select {
	case report = <-reportCh:
	case <-ctx.Done():
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"status":  "degraded",
			"service": "hirescope",
			"version": s.Version,
			"error":   "health check timed out",
		}); err != nil {
			log.Printf("Failed to encode health response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !report.healthy {
		report.response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	err := json.NewEncoder(w).Encode(report.response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// collectHealth gathers the health status of every subsystem
func (s *Server) collectHealth() healthReport {
	response := map[string]any{
		"status":  "healthy",
		"service": "hirescope",
		"version": s.Version,
	}

	// Check document extraction breakers
	extractorStatus := s.checkExtractorHealth()
	response["extractors"] = extractorStatus

	// Check skill catalog status
	response["catalog"] = s.checkCatalogHealth()

	// Check analytics store status
	response["storage"] = s.checkStorageHealth()

	// Check certificate status if certificate manager is available
	certStatus := s.checkCertificateHealth()
	if certStatus != nil {
		response["certificates"] = certStatus
	}

	// Determine overall health status
	overallHealthy := true
	if healthy, ok := extractorStatus["healthy"].(bool); ok && !healthy {
		overallHealthy = false
	}
	if certStatus != nil {
		if healthy, ok := certStatus["healthy"].(bool); ok && !healthy {
			overallHealthy = false
		}
	}

	return healthReport{healthy: overallHealthy, response: response}
}

// checkExtractorHealth reports the state of the document parsing circuit breakers
func (s *Server) checkExtractorHealth() map[string]any {
	if s.Extractor == nil {
		return map[string]any{
			"healthy": false,
			"error":   "extraction service not configured",
		}
	}

	return map[string]any{
		"healthy":  s.Extractor.IsHealthy(),
		"breakers": s.Extractor.BreakerStats(),
	}
}

// checkCatalogHealth reports the active skill catalog and its hot-reload watcher
func (s *Server) checkCatalogHealth() map[string]any {
	if s.Matcher == nil {
		return map[string]any{
			"error": "matcher not configured",
		}
	}

	status := map[string]any{
		"terms": s.Matcher.Catalog().Len(),
	}

	if s.CatalogWatcher != nil {
		status["hot_reload"] = map[string]any{
			"enabled": true,
			"running": s.CatalogWatcher.IsRunning(),
		}
	} else {
		status["hot_reload"] = map[string]any{
			"enabled": false,
		}
	}

	return status
}

// checkStorageHealth reports the retained analytics record counts
func (s *Server) checkStorageHealth() map[string]any {
	if s.Store == nil {
		return map[string]any{
			"error": "analytics store not configured",
		}
	}

	jobs, resumes := s.Store.Counts()
	return map[string]any{
		"jobs":    jobs,
		"resumes": resumes,
	}
}

// checkCertificateHealth checks the health of TLS certificates
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}

	certStatus := make(map[string]any)

	// Check certificate expiry
	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	// Consider certificates unhealthy if they expire within 24 hours
	criticalThreshold := 24 * time.Hour
	warningThreshold := 7 * 24 * time.Hour // 7 days

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())
	certStatus["time_to_expiry"] = timeToExpiry.String()

	if timeToExpiry <= 0 {
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
		certStatus["message"] = "Certificate has expired"
	} else if timeToExpiry <= criticalThreshold {
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
		certStatus["message"] = "Certificate expires within 24 hours"
	} else if timeToExpiry <= warningThreshold {
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
		certStatus["message"] = "Certificate expires within 7 days"
	} else {
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
		certStatus["message"] = "Certificate is valid"
	}

	// Add auto-reload status
	if s.TLSConfig.AutoReload.Enabled {
		autoReload := map[string]any{
			"enabled": true,
		}
		if s.CertificateManager.fileWatcher != nil {
			autoReload["file_watcher_running"] = s.CertificateManager.fileWatcher.IsRunning()
			autoReload["watched_files"] = s.CertificateManager.fileWatcher.GetWatchedFiles()
		}
		certStatus["auto_reload"] = autoReload
	} else {
		certStatus["auto_reload"] = map[string]any{
			"enabled": false,
		}
	}

	// Add certificate metrics
	metrics := s.CertificateManager.GetMetrics()
	if metrics != nil {
		certStatus["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return certStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "hirescope",
		"version": s.Version,
		"server": map[string]any{
			"max_json_body_bytes":   s.MaxJSONBody,
			"max_upload_size_bytes": s.MaxUploadSize,
		},
	}

	// Add analytics store counts
	if s.Store != nil {
		jobs, resumes := s.Store.Counts()
		response["storage"] = map[string]any{
			"jobs":    jobs,
			"resumes": resumes,
		}
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"window":           s.RateLimit.Window.String(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			// Returned untouched so callers can map it to 413
			return err
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// statusForError maps typed application errors onto HTTP status codes
func statusForError(err error) int {
	var appErr *hirescopeErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case hirescopeErrors.ErrCodeFileTooLarge:
			return http.StatusRequestEntityTooLarge
		case hirescopeErrors.ErrCodeExtractorUnavailable:
			return http.StatusServiceUnavailable
		}
		if appErr.Type == hirescopeErrors.ErrorTypeValidation {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// userFacingError returns the message of a typed error without internal detail
func userFacingError(err error) string {
	var appErr *hirescopeErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Success: false,
		Error:   message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
