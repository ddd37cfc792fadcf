package cli

import (
	"os"

	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/daemon"
	"github.com/rkbl/appcfg/internal/input"
	"github.com/rkbl/appcfg/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	DaemonFactory    DaemonFactory
	RootChecker      RootChecker
	StdinReader      StdinReader
}

// ConfigLoader handles registry loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
}

// PlatformDetector handles platform path detection
type PlatformDetector interface {
	DetectPaths() (*platform.Paths, error)
}

// DaemonFactory creates daemon instances
type DaemonFactory interface {
	Nginx(paths daemon.NginxPaths) daemon.Nginx
	Supervisor(paths daemon.SupervisorPaths) daemon.Supervisor
	Varnish(paths daemon.VarnishPaths) daemon.Varnish
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// StdinReader reads from stdin
type StdinReader interface {
	ReadString(delim byte) (string, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	PlatformDetector: &realPlatformDetector{},
	DaemonFactory:    &realDaemonFactory{},
	RootChecker:      &realRootChecker{},
	StdinReader:      input.NewStdinReader(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to the underlying packages

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DetectPaths() (*platform.Paths, error) {
	return platform.DetectPaths()
}

type realDaemonFactory struct{}

func (r *realDaemonFactory) Nginx(paths daemon.NginxPaths) daemon.Nginx {
	return daemon.NewNginxWithPaths(paths)
}

func (r *realDaemonFactory) Supervisor(paths daemon.SupervisorPaths) daemon.Supervisor {
	return daemon.NewSupervisorWithPaths(paths)
}

func (r *realDaemonFactory) Varnish(paths daemon.VarnishPaths) daemon.Varnish {
	return daemon.NewVarnishWithPaths(paths)
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if os.Geteuid() != 0 {
		return errRootRequired
	}
	return nil
}
