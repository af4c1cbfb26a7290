package server

import (
	"net/http"

	"hirescope/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	jsonLimitHandler := s.requestSizeLimitMiddleware(s.MaxJSONBody)
	uploadLimitHandler := s.requestSizeLimitMiddleware(s.MaxUploadSize)

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	mux.HandleFunc("/api/predict-applications",
		rateLimitHandler(
			jsonLimitHandler(s.createPredictHandler(om)),
		),
	)
	mux.HandleFunc("/api/match-resume",
		rateLimitHandler(
			uploadLimitHandler(s.createMatchHandler(om)),
		),
	)
	mux.HandleFunc("/api/dashboard-data",
		rateLimitHandler(s.createDashboardHandler(om)),
	)

	// Serve the dashboard page when a static directory is configured
	if s.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.StaticDir)))
	}

	return mux
}

// requestSizeLimitMiddleware limits the size of incoming request bodies
func (s *Server) requestSizeLimitMiddleware(limit int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next(w, r)
		}
	}
}
