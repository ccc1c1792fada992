// Package config loads the post-resolver service configuration.
package config

import (
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/config"
	"github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/middleware"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/redirect"
)

// Default configuration values.
const (
	defaultServiceName = "post-resolver"
	defaultServicePort = 8095
	defaultVersion     = "0.1.0"
	defaultLocale      = "en_US"
	defaultSiteName    = "Your Site Name"

	defaultHealthTimeout = 5 * time.Second
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig    `yaml:"service"`
	CMS       CMSConfig        `yaml:"cms"`
	Redirect  RedirectConfig   `yaml:"redirect"`
	Render    RenderConfig     `yaml:"render"`
	Logging   logger.Config    `yaml:"logging"`
	Profiling profiling.Config `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Port        int      `env:"POST_RESOLVER_PORT" yaml:"port"`
	Debug       bool     `env:"APP_DEBUG"          yaml:"debug"`
	CORSOrigins []string `env:"CORS_ORIGINS"       yaml:"cors_origins"`
}

// CMSConfig points at the headless CMS GraphQL endpoint.
type CMSConfig struct {
	Endpoint string `env:"GRAPHQL_ENDPOINT" yaml:"endpoint"`
	// Timeout bounds each CMS request. Zero means none.
	Timeout time.Duration `env:"CMS_TIMEOUT" yaml:"timeout"`
	// HealthTimeout bounds the /health reachability check.
	HealthTimeout time.Duration `yaml:"health_timeout"`
}

// RedirectConfig holds the social-traffic redirect heuristic.
type RedirectConfig struct {
	ReferrerDomains []string `env:"REDIRECT_REFERRER_DOMAINS" yaml:"referrer_domains"`
	TrackingParams  []string `env:"REDIRECT_TRACKING_PARAMS"  yaml:"tracking_params"`
}

// RenderConfig holds page constants.
type RenderConfig struct {
	Locale       string `env:"SITE_LOCALE"          yaml:"locale"`
	SiteName     string `env:"SITE_NAME"            yaml:"site_name"`
	SanitizeBody bool   `env:"RENDER_SANITIZE_BODY" yaml:"sanitize_body"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setCMSDefaults(&cfg.CMS)
	setRedirectDefaults(&cfg.Redirect)
	setRenderDefaults(&cfg.Render)
	cfg.Logging.SetDefaults()
	cfg.Profiling.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setCMSDefaults(c *CMSConfig) {
	if c.HealthTimeout == 0 {
		c.HealthTimeout = defaultHealthTimeout
	}
}

func setRedirectDefaults(r *RedirectConfig) {
	if len(r.ReferrerDomains) == 0 {
		r.ReferrerDomains = append([]string(nil), redirect.DefaultReferrerDomains...)
	}
	if len(r.TrackingParams) == 0 {
		r.TrackingParams = append([]string(nil), middleware.DefaultTrackingParams...)
	}
}

func setRenderDefaults(r *RenderConfig) {
	if r.Locale == "" {
		r.Locale = defaultLocale
	}
	if r.SiteName == "" {
		r.SiteName = defaultSiteName
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateURL("cms.endpoint", c.CMS.Endpoint); err != nil {
		return err
	}
	if c.CMS.Timeout < 0 {
		return &infraconfig.ValidationError{Field: "cms.timeout", Message: "must not be negative"}
	}
	if err := infraconfig.ValidateLogLevel("logging.level", c.Logging.Level); err != nil {
		return err
	}
	return nil
}
