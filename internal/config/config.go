package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// Precedence order:
// 1. Config file values
// 2. Environment variables (HIRESCOPE_SERVER_PORT, etc.)
// 3. Default values - Lowest priority
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Engine        EngineConfig        `mapstructure:"engine"`
	Extract       ExtractConfig       `mapstructure:"extract"`
	Storage       StorageConfig       `mapstructure:"storage"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// EngineConfig holds scoring engine configuration
type EngineConfig struct {
	BaseVolume     float64 `mapstructure:"baseVolume"`     // Starting value of the prediction multiplier chain
	JitterMin      float64 `mapstructure:"jitterMin"`      // Lower bound of the random jitter factor
	JitterMax      float64 `mapstructure:"jitterMax"`      // Upper bound of the random jitter factor
	CatalogFile    string  `mapstructure:"catalogFile"`    // Optional skill catalog file (one term per line)
	SkillListLimit int     `mapstructure:"skillListLimit"` // Cap on matched/missing skill list length
}

// ExtractConfig holds document text extraction configuration
type ExtractConfig struct {
	MaxFileSize    int64                `mapstructure:"maxFileSize"`    // Per-document size limit in bytes
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"` // Breaker around native document parsing
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// StorageConfig holds in-memory analytics store configuration
type StorageConfig struct {
	MaxRecords    int `mapstructure:"maxRecords"`    // Retained records per kind; oldest evicted beyond this
	RecentJobs    int `mapstructure:"recentJobs"`    // Jobs returned in a dashboard snapshot
	TopCandidates int `mapstructure:"topCandidates"` // Top-scoring resumes returned in a snapshot
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// Static dashboard assets; serving is disabled when empty
	StaticDir string `mapstructure:"staticDir"`

	// Request body limits
	MaxJSONBody   int64 `mapstructure:"maxJSONBody"`   // JSON request body cap in bytes
	MaxUploadSize int64 `mapstructure:"maxUploadSize"` // Multipart upload cap in bytes

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server", "mutual"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)
	CAFile   string `mapstructure:"caFile"`   // CA certificate file for client cert verification (PEM, required for mutual mode)

	// Advanced TLS options
	MinVersion       string   `mapstructure:"minVersion"`       // Minimum TLS version: "1.2", "1.3"
	CipherSuites     []string `mapstructure:"cipherSuites"`     // Allowed cipher suites (optional)
	ClientAuthPolicy string   `mapstructure:"clientAuthPolicy"` // Client auth policy for mutual mode: "require", "request", "verify"

	// Auto-reload configuration
	AutoReload AutoReloadConfig `mapstructure:"autoReload"`
}

// AutoReloadConfig holds configuration for automatic certificate reloading
type AutoReloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`       // Watch certificate files and reload on change
	DebounceDelay time.Duration `mapstructure:"debounceDelay"` // Debounce delay for file change events
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	Window         time.Duration `mapstructure:"window"`         // Idle duration before a client's limiter is dropped
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"` // CLI input file size limit in bytes
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	Scoring        ScoringMetricsConfig        `mapstructure:"scoring"`
	Extraction     ExtractionMetricsConfig     `mapstructure:"extraction"`
	Infrastructure InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// ScoringMetricsConfig holds prediction/matching metrics configuration
type ScoringMetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	TrackScores      bool `mapstructure:"trackScores"`
	TrackSkillCounts bool `mapstructure:"trackSkillCounts"`
}

// ExtractionMetricsConfig holds document extraction metrics configuration
type ExtractionMetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	TrackDuration bool `mapstructure:"trackDuration"`
	TrackSizes    bool `mapstructure:"trackSizes"`
	TrackFailures bool `mapstructure:"trackFailures"`
	TrackFormats  bool `mapstructure:"trackFormats"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	TrackRateLimits    bool `mapstructure:"trackRateLimits"`
	TrackCertExpiry    bool `mapstructure:"trackCertExpiry"`
	TrackCatalogReload bool `mapstructure:"trackCatalogReload"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("HIRESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'HIRESCOPE'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hirescope/")
	v.AddConfigPath("$HOME/.hirescope")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/hirescope/, $HOME/.hirescope, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply fallback logic
	config.applyFallbacks()

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if err := c.validateEngineConfig(); err != nil {
		return fmt.Errorf("engine configuration error: %w", err)
	}

	if c.Storage.MaxRecords <= 0 {
		return fmt.Errorf("storage maxRecords must be positive")
	}

	if c.Extract.MaxFileSize <= 0 {
		return fmt.Errorf("extract maxFileSize must be positive")
	}

	// Validate TLS configuration
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// validateEngineConfig checks the scoring engine parameters
func (c *Config) validateEngineConfig() error {
	if c.Engine.BaseVolume <= 0 {
		return fmt.Errorf("baseVolume must be positive")
	}
	if c.Engine.JitterMin <= 0 || c.Engine.JitterMax <= 0 {
		return fmt.Errorf("jitter bounds must be positive")
	}
	if c.Engine.JitterMin > c.Engine.JitterMax {
		return fmt.Errorf("jitterMin must not exceed jitterMax")
	}
	if c.Engine.SkillListLimit <= 0 {
		return fmt.Errorf("skillListLimit must be positive")
	}
	return nil
}
