package gin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
)

// MetricsPath is where WithMetrics mounts its handler.
const MetricsPath = "/metrics"

// ServerBuilder assembles a Server step by step. CORS is on by default.
type ServerBuilder struct {
	cfg     Config
	log     logger.Logger
	checks  map[string]HealthChecker
	metrics http.Handler
	routes  []func(*gin.Engine)
}

// NewServerBuilder starts a builder for serviceName listening on port.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		cfg: Config{
			ServiceName: serviceName,
			Port:        port,
			CORS:        CORSConfig{Enabled: true},
		},
		checks: make(map[string]HealthChecker),
	}
}

// WithLogger sets the logger. Without one the server logs nothing.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.log = log
	return b
}

// WithDebug toggles Gin debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.cfg.Debug = debug
	return b
}

// WithVersion sets the version reported by /health.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.cfg.ServiceVersion = version
	return b
}

// WithCORSOrigins restricts CORS to origins.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	b.cfg.CORS.AllowedOrigins = origins
	return b
}

// WithTimeouts sets read, write and idle timeouts.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	b.cfg.ReadTimeout, b.cfg.WriteTimeout, b.cfg.IdleTimeout = read, write, idle
	return b
}

// WithHealthCheck adds a named check reported by GET /health.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.checks[name] = checker
	return b
}

// WithMetrics serves h on GET MetricsPath.
func (b *ServerBuilder) WithMetrics(h http.Handler) *ServerBuilder {
	b.metrics = h
	return b
}

// WithRoutes adds a service route setup function. Setups run in the order added.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine)) *ServerBuilder {
	b.routes = append(b.routes, setupRoutes)
	return b
}

// Build creates the server. Health and metrics routes are registered before
// service routes.
func (b *ServerBuilder) Build() *Server {
	log := b.log
	if log == nil {
		log = logger.NewNop()
	}
	cfg := b.cfg
	cfg.SetDefaults()
	health := HealthOptions{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Checks:         b.checks,
	}
	metrics := b.metrics
	routes := b.routes

	return NewServer(&cfg, log, func(router *gin.Engine) {
		RegisterHealthRoutes(router, health)
		if metrics != nil {
			router.GET(MetricsPath, gin.WrapH(metrics))
		}
		for _, setup := range routes {
			setup(router)
		}
	})
}
