package config

import (
	"fmt"
	"log"
	"os"
)

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	c.applyTLSDefaults()
	c.applyObservabilityDefaults()
}

// applyTLSDefaults applies default TLS configuration values
func (c *Config) applyTLSDefaults() {
	// Set default client auth policy for mutual TLS if not specified
	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}

	// Set default TLS version if not specified
	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	// Try to get hostname, fallback to default
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	// Log config file source
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	// Log environment variables that are set
	envVars := []string{
		"HIRESCOPE_SERVER_PORT",
		"HIRESCOPE_SERVER_HOST",
		"HIRESCOPE_SERVER_STATICDIR",
		"HIRESCOPE_APP_LOGLEVEL",
		"HIRESCOPE_ENGINE_BASEVOLUME",
		"HIRESCOPE_ENGINE_CATALOGFILE",
		"HIRESCOPE_EXTRACT_MAXFILESIZE",
		"HIRESCOPE_STORAGE_MAXRECORDS",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			log.Printf("[CONFIG]   %s=%s", envVar, value)
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	// Log key configuration values
	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	if c.Server.StaticDir != "" {
		log.Printf("[CONFIG] Static Dir: %s", c.Server.StaticDir)
	} else {
		log.Println("[CONFIG] Static Dir: None (dashboard assets disabled)")
	}
	if c.Engine.CatalogFile != "" {
		log.Printf("[CONFIG] Skill Catalog: %s", c.Engine.CatalogFile)
	} else {
		log.Println("[CONFIG] Skill Catalog: built-in")
	}
	log.Printf("[CONFIG] Base Volume: %.0f", c.Engine.BaseVolume)
	log.Printf("[CONFIG] Storage Max Records: %d", c.Storage.MaxRecords)
	log.Printf("[CONFIG] Extraction Breaker Enabled: %t", c.Extract.CircuitBreaker.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	log.Println("[CONFIG] =====================================")
}
