// Package gin holds the shared Gin server setup: middleware order, health
// and metrics endpoints, CORS and graceful shutdown.
package gin

import (
	"time"
)

// Default server settings.
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultCORSMaxAge      = 12 * time.Hour
	DefaultServiceVersion  = "dev"
)

// Config holds the HTTP server configuration. Zero durations take the defaults.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Port           int
	Debug          bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CORS CORSConfig
}

// CORSConfig configures the CORS middleware. Pages are read-only, so only
// safe methods are allowed unless AllowedMethods says otherwise.
type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	c.ReadTimeout = orDuration(c.ReadTimeout, DefaultReadTimeout)
	c.WriteTimeout = orDuration(c.WriteTimeout, DefaultWriteTimeout)
	c.IdleTimeout = orDuration(c.IdleTimeout, DefaultIdleTimeout)
	c.ShutdownTimeout = orDuration(c.ShutdownTimeout, DefaultShutdownTimeout)
	if c.ServiceVersion == "" {
		c.ServiceVersion = DefaultServiceVersion
	}
	c.CORS.SetDefaults()
}

// SetDefaults fills unset CORS fields. "*" in AllowedOrigins allows any origin.
func (c *CORSConfig) SetDefaults() {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "HEAD", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Origin", "Accept", "Content-Type", RequestIDHeader}
	}
	c.MaxAge = orDuration(c.MaxAge, DefaultCORSMaxAge)
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}
