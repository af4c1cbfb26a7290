package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.staticDir", "")
	v.SetDefault("server.maxJSONBody", 1024*1024)      // 1MB
	v.SetDefault("server.maxUploadSize", 16*1024*1024) // 16MB

	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify

	// Certificate auto-reload defaults
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.debounceDelay", time.Second)

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Engine Configuration
	v.SetDefault("engine.baseVolume", 100.0)
	v.SetDefault("engine.jitterMin", 0.9)
	v.SetDefault("engine.jitterMax", 1.1)
	v.SetDefault("engine.catalogFile", "")
	v.SetDefault("engine.skillListLimit", 10)

	// Extraction Configuration
	v.SetDefault("extract.maxFileSize", 16*1024*1024) // 16MB

	// Circuit Breaker Configuration defaults for document parsing
	v.SetDefault("extract.circuitBreaker.enabled", true)
	v.SetDefault("extract.circuitBreaker.maxRequests", 3)
	v.SetDefault("extract.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("extract.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("extract.circuitBreaker.minRequests", 5)
	v.SetDefault("extract.circuitBreaker.failureThreshold", 0.6)

	// Storage Configuration
	v.SetDefault("storage.maxRecords", 500)
	v.SetDefault("storage.recentJobs", 20)
	v.SetDefault("storage.topCandidates", 10)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "hirescope")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.scoring.enabled", true)
	v.SetDefault("observability.customMetrics.scoring.trackScores", true)
	v.SetDefault("observability.customMetrics.scoring.trackSkillCounts", true)
	v.SetDefault("observability.customMetrics.extraction.enabled", true)
	v.SetDefault("observability.customMetrics.extraction.trackDuration", true)
	v.SetDefault("observability.customMetrics.extraction.trackSizes", true)
	v.SetDefault("observability.customMetrics.extraction.trackFailures", true)
	v.SetDefault("observability.customMetrics.extraction.trackFormats", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCertExpiry", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCatalogReload", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
}
