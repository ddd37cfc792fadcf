package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkbl/appcfg/internal/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application registry
type Config struct {
	BaseDomain string          `yaml:"base_domain"`
	Email      string          `yaml:"email,omitempty"`
	CachePort  int             `yaml:"cache_port"`
	Apps       map[string]*App `yaml:"apps"`
}

// configDir is the default config directory
const configDir = ".config/appcfg"
const configFile = "config.yaml"

// DefaultCachePort is the port the varnish cache listens on.
const DefaultCachePort = 6081

// New creates a new Config with default values
func New() *Config {
	return &Config{
		BaseDomain: "example.org",
		CachePort:  DefaultCachePort,
		Apps:       make(map[string]*App),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the registry from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Initialize Apps map if nil
	if cfg.Apps == nil {
		cfg.Apps = make(map[string]*App)
	}
	if cfg.CachePort == 0 {
		cfg.CachePort = DefaultCachePort
	}

	return cfg, nil
}

// Save writes the registry to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// AddApp adds an app to the registry. Names and ports must be unique so
// every app can be deployed next to every other app.
func (c *Config) AddApp(app *App) error {
	if err := app.Validate(); err != nil {
		return err
	}
	if _, exists := c.Apps[app.Name]; exists {
		return errors.AlreadyExists(app.Name)
	}
	for _, other := range c.Apps {
		if other.Port == app.Port {
			return errors.Validation(fmt.Sprintf("port %d already taken by %s", app.Port, other.Name))
		}
	}
	c.Apps[app.Name] = app
	return nil
}

// GetApp returns an app by name
func (c *Config) GetApp(name string) (*App, error) {
	app, exists := c.Apps[name]
	if !exists {
		return nil, errors.NotFound(name)
	}
	return app, nil
}

// RemoveApp removes an app from the registry
func (c *Config) RemoveApp(name string) error {
	if _, exists := c.Apps[name]; !exists {
		return errors.NotFound(name)
	}
	delete(c.Apps, name)
	return nil
}

// ListApps returns all registered apps
func (c *Config) ListApps() []*App {
	apps := make([]*App, 0, len(c.Apps))
	for _, a := range c.Apps {
		apps = append(apps, a)
	}
	return apps
}

// DefaultDomain derives the domain for an app from the base domain.
func (c *Config) DefaultDomain(name string) string {
	return name + "." + c.BaseDomain
}
