package logger

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// DefaultLevel is used when Config.Level is empty.
const DefaultLevel = "info"

// Config selects level, encoding and sinks.
type Config struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Format is json (default) or console.
	Format string `env:"LOG_FORMAT" yaml:"format"`
	// Development disables sampling and enables development-mode stack traces.
	Development bool `yaml:"development"`
	// OutputPaths lists zap sink URLs or file paths.
	OutputPaths []string `yaml:"output_paths"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
