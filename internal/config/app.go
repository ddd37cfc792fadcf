package config

import (
	"fmt"
	"path"
	"time"
)

// App describes a registered application: the process supervised by
// supervisord and the virtual host served by nginx.
type App struct {
	Name        string    `yaml:"name"`
	Domain      string    `yaml:"domain"`
	Port        int       `yaml:"port"`
	Workers     int       `yaml:"workers"`
	Environment string    `yaml:"environment,omitempty"` // test, production
	Restricted  bool      `yaml:"restricted,omitempty"`  // whole host behind basic auth
	Cached      bool      `yaml:"cached,omitempty"`      // fronted by varnish
	Monitor     bool      `yaml:"monitor,omitempty"`     // run under the monitoring agent
	Installed   bool      `yaml:"installed"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// Environment constants
const (
	EnvTest       = "test"
	EnvProduction = "production"
)

// ValidEnvironments returns all valid deployment environments
func ValidEnvironments() []string {
	return []string{EnvTest, EnvProduction}
}

// IsValidEnvironment checks if the given environment is valid
func IsValidEnvironment(env string) bool {
	for _, valid := range ValidEnvironments() {
		if env == valid {
			return true
		}
	}
	return false
}

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 5

// MaxTestWorkers caps the worker count of apps in the test environment,
// where many apps share one host.
const MaxTestWorkers = 3

// Home returns the home directory of the user running the app.
func (a *App) Home() string {
	return path.Join("/home", a.Name)
}

// WWW returns the directory served for static fallbacks (503 page, files).
func (a *App) WWW() string {
	return path.Join(a.Home(), "www")
}

// SrcDir returns the directory containing the app's deployed source tree.
func (a *App) SrcDir() string {
	return path.Join("/srv", a.Name, "src")
}

// BinDir returns the bin directory of the app's deployment environment.
func (a *App) BinDir() string {
	return path.Join("/srv", a.Name, "venv", "bin")
}

// LogDir returns the directory containing the app's logfiles.
func (a *App) LogDir() string {
	return path.Join("/var/log", a.Name)
}

// ErrorLog returns the path of the supervisor-managed process log.
func (a *App) ErrorLog() string {
	return path.Join(a.LogDir(), "error.log")
}

// AccessLog returns the path of the nginx access log.
func (a *App) AccessLog() string {
	return path.Join(a.LogDir(), "access.log")
}

// MonitorConfig returns the path of the app's monitoring agent config file.
func (a *App) MonitorConfig() string {
	return path.Join(a.Home(), "newrelic.ini")
}

// Command returns the app server command line for the supervisor stanza.
// When monitor is true the server runs under the monitoring agent wrapper.
func (a *App) Command(monitor bool) string {
	workers := a.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	server := fmt.Sprintf("%s --workers %d --bind 127.0.0.1:%d %s.wsgi",
		path.Join(a.BinDir(), "gunicorn"), workers, a.Port, a.Name)
	if monitor {
		return fmt.Sprintf("%s run-program %s", path.Join(a.BinDir(), "newrelic-admin"), server)
	}
	return server
}

// LocationPrefix returns the URL prefix the app is served under. Apps
// installed as a full virtual host live at the root; apps installed as a
// location block on a shared test host live under /<name>/.
func (a *App) LocationPrefix(site bool) string {
	if site {
		return "/"
	}
	return "/" + a.Name + "/"
}

// Validate checks that the app descriptor is complete and in range.
func (a *App) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if a.Port < 1 || a.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", a.Port)
	}
	if a.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if a.Domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	return nil
}
