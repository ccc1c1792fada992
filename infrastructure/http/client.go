// Package http builds outbound HTTP clients with a tuned connection pool.
package http

import (
	"net/http"
	"time"
)

// Connection pool defaults.
const (
	DefaultMaxIdleConns          = 100
	DefaultMaxIdleConnsPerHost   = 10
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultExpectContinueTimeout = 1 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
)

// ClientConfig configures an outbound client.
type ClientConfig struct {
	// Timeout bounds the whole request. Zero means no client-level timeout;
	// callers still bound requests through their context.
	Timeout time.Duration

	// MaxIdleConns caps idle connections across hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout closes idle connections after this long.
	IdleConnTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for response headers. Zero means none.
	ResponseHeaderTimeout time.Duration
}

// NewClient creates a client from cfg, filling pool defaults. A nil cfg uses
// all defaults.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = orDefault(cfg.MaxIdleConns, DefaultMaxIdleConns)
	transport.MaxIdleConnsPerHost = orDefault(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost)
	transport.IdleConnTimeout = orDefault(cfg.IdleConnTimeout, DefaultIdleConnTimeout)
	transport.ExpectContinueTimeout = DefaultExpectContinueTimeout
	transport.TLSHandshakeTimeout = DefaultTLSHandshakeTimeout
	transport.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
