package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kinview/pkg/kin/layout"
)

// configFile is the name of the optional configuration file.
const configFile = "kinview.toml"

// Config holds the settings read from kinview.toml. Flags override file
// values; the file overrides built-in defaults.
type Config struct {
	Spacing layout.Config `toml:"spacing"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// RedisURL is the connection URL for the redis backend
	// (e.g. "redis://localhost:6379/0").
	RedisURL string `toml:"redis_url"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// MongoURI enables MongoDB persistence for the /v1/trees endpoints.
	// Empty means an in-memory store.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the built-in settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Spacing: layout.DefaultConfig(),
		Cache:   CacheConfig{Backend: "file"},
		Server:  ServerConfig{Addr: ":8080", MongoDatabase: appName},
	}
}

// LoadConfig reads the configuration file at path. An empty path searches
// the working directory, then the XDG config directory; a missing file is
// not an error and yields the defaults. The returned string is the path that
// was read, empty when none was found.
func LoadConfig(path string) (Config, string, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, "", nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), path, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Spacing.Validate(); err != nil {
		return DefaultConfig(), path, err
	}
	return cfg, path, nil
}

// findConfig returns the first existing config file location, or "".
func findConfig() string {
	candidates := []string{configFile}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, configFile))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, configFile))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
