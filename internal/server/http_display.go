package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayStaticInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                   - Health check")
	fmt.Println("  GET  /stats                    - Server statistics")
	fmt.Println("  POST /api/predict-applications - Predict application volume for a job posting")
	fmt.Println("  POST /api/match-resume         - Match an uploaded resume against a job description")
	fmt.Println("  GET  /api/dashboard-data       - Analytics dashboard snapshot")
}

// displayStaticInfo shows static file serving configuration
func (s *Server) displayStaticInfo() {
	if s.StaticDir != "" {
		fmt.Printf("Static dashboard: ENABLED (serving %s at /)\n", s.StaticDir)
	} else {
		fmt.Println("Static dashboard: DISABLED (no static directory configured)")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxJSONBody > 0 {
		fmt.Printf("JSON body limit: %d bytes (%.1f MB)\n", s.MaxJSONBody, float64(s.MaxJSONBody)/(1024*1024))
	} else {
		fmt.Println("JSON body limit: DISABLED")
	}
	if s.MaxUploadSize > 0 {
		fmt.Printf("Upload size limit: %d bytes (%.1f MB)\n", s.MaxUploadSize, float64(s.MaxUploadSize)/(1024*1024))
	} else {
		fmt.Println("Upload size limit: DISABLED")
		fmt.Println("WARNING: No upload size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
