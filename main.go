package main

import (
	"fmt"
	"os"

	infraconfig "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/config"
	infrahttp "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/http"
	"github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/api"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/cms"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/config"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/handler"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/meta"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/redirect"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/render"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/resolver"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Start profilers (if enabled)
	profiling.StartPprofServer(cfg.Profiling, log)
	profiler, err := profiling.StartPyroscope(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", logger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	return runServer(cfg, log)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	logCfg := cfg.Logging
	logCfg.Development = logCfg.Development || cfg.Service.Debug

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger) int {
	metrics := telemetry.NewProvider()

	// CMS client and redirect policy share the configured endpoint
	client := cms.NewClient(cfg.CMS.Endpoint, infrahttp.NewClient(&infrahttp.ClientConfig{
		Timeout: cfg.CMS.Timeout,
	}))
	policy := redirect.NewPolicy(cfg.CMS.Endpoint, cfg.Redirect.ReferrerDomains)
	res := resolver.New(metrics.InstrumentFetcher(client), policy)

	renderer, err := render.New(render.Options{
		Site:         meta.Site{Locale: cfg.Render.Locale, Name: cfg.Render.SiteName},
		SanitizeBody: cfg.Render.SanitizeBody,
	})
	if err != nil {
		log.Error("Failed to create renderer", logger.Error(err))
		return 1
	}

	postHandler := handler.NewPostHandler(res, renderer, metrics)
	server := api.NewServer(postHandler, metrics, client, cfg, log)

	log.Info("Post-resolver starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("cms_endpoint", cfg.CMS.Endpoint),
		logger.Duration("cms_timeout", cfg.CMS.Timeout),
	)

	if err = server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Post-resolver exited cleanly")
	return 0
}
