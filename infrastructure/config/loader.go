// Package config loads service configuration in layers: a YAML file, then
// service defaults, then environment variables. Later layers win.
//
// Fields opt into the environment layer with an `env` struct tag:
//
//	type CMSConfig struct {
//	    Endpoint string `yaml:"endpoint" env:"GRAPHQL_ENDPOINT"`
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the variable that overrides the config file location.
const ConfigPathEnv = "CONFIG_PATH"

// GetConfigPath returns $CONFIG_PATH, or defaultPath when unset.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return defaultPath
}

// Load reads the YAML file at path into a T and applies env overrides.
// A missing file is not an error, so a service can run from env alone.
func Load[T any](path string) (*T, error) {
	return LoadWithDefaults[T](path, nil)
}

// LoadWithDefaults is Load with setDefaults applied between the file and the
// environment.
func LoadWithDefaults[T any](path string, setDefaults func(*T)) (*T, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := new(T)
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}
	if setDefaults != nil {
		setDefaults(cfg)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads $ENV_FILE if set, otherwise .env.local then .env.
// godotenv never overwrites variables already set, so the first file wins.
func loadDotEnv() error {
	files := []string{".env.local", ".env"}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		files = []string{envFile}
	}

	for _, name := range files {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", name, err)
		}
	}
	return nil
}
