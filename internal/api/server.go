// Package api wires handlers, middleware and health checks into the HTTP server.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	infragin "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/gin"
	infralogger "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/config"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/handler"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/telemetry"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	cmsCheckName = "cms"
)

// Pinger checks upstream reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewServer creates a new HTTP server.
func NewServer(
	postHandler *handler.PostHandler,
	metrics *telemetry.Provider,
	cms Pinger,
	cfg *config.Config,
	log infralogger.Logger,
) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithHealthCheck(cmsCheckName, infragin.UpstreamHealthChecker(cmsCheckName, cfg.CMS.HealthTimeout, cms.Ping)).
		WithMetrics(metrics.Handler()).
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, postHandler, cfg.Redirect.TrackingParams)
		})

	if len(cfg.Service.CORSOrigins) > 0 {
		builder = builder.WithCORSOrigins(cfg.Service.CORSOrigins)
	}

	return builder.Build()
}
