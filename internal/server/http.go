package server

import (
	"time"

	"hirescope/internal/config"
	"hirescope/internal/engine"
	hirescopeErrors "hirescope/internal/errors"
	"hirescope/internal/extract"
	"hirescope/internal/store"
	"hirescope/internal/types"
)

// PredictResponse represents a successful predict-applications response
// MatchResponse represents a successful match-resume response
// DashboardResponse represents a dashboard-data response
type PredictResponse struct {
	Success    bool                   `json:"success"`
	Prediction types.PredictionResult `json:"prediction"`
}

type MatchResponse struct {
	Success bool              `json:"success"`
	Result  types.MatchResult `json:"result"`
}

type DashboardResponse struct {
	Success bool                    `json:"success"`
	Data    types.DashboardSnapshot `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// Domain services
	Predictor *engine.Predictor
	Matcher   *engine.Matcher
	Extractor *extract.Service
	Store     *store.Store

	// Skill catalog hot reload
	CatalogWatcher *engine.CatalogWatcher

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limits
	MaxJSONBody   int64
	MaxUploadSize int64

	// Static dashboard assets directory, empty disables static serving
	StaticDir string

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *hirescopeErrors.Logger
}

// Services groups the domain dependencies injected into the server
type Services struct {
	Predictor *engine.Predictor
	Matcher   *engine.Matcher
	Extractor *extract.Service
	Store     *store.Store
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host          string
	Port          string
	Version       string
	TLSConfig     config.TLSConfig
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxJSONBody   int64
	MaxUploadSize int64
	StaticDir     string
	RateLimit     *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, svcs Services, logger *hirescopeErrors.Logger) *Server {
	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:          cfg.Host,
		Port:          cfg.Port,
		Version:       cfg.Version,
		AppConfig:     appCfg,
		TLSConfig:     cfg.TLSConfig,
		Predictor:     svcs.Predictor,
		Matcher:       svcs.Matcher,
		Extractor:     svcs.Extractor,
		Store:         svcs.Store,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
		IdleTimeout:   cfg.IdleTimeout,
		MaxJSONBody:   cfg.MaxJSONBody,
		MaxUploadSize: cfg.MaxUploadSize,
		StaticDir:     cfg.StaticDir,
		RateLimit:     cfg.RateLimit,
		RateLimiter:   rateLimiter,
		Logger:        logger,
	}
}
