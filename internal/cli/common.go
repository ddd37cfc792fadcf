package cli

import (
	"fmt"
	"regexp"

	"github.com/rkbl/appcfg/internal/auth"
	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/daemon"
	"github.com/rkbl/appcfg/internal/errors"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/rkbl/appcfg/internal/platform"
	"github.com/rkbl/appcfg/internal/template"
)

// errRootRequired is returned when a system operation runs without root
var errRootRequired = errors.ErrRootRequired

// daemons bundles the three daemon handles most commands need
type daemons struct {
	nginx      daemon.Nginx
	supervisor daemon.Supervisor
	varnish    daemon.Varnish
}

// loadConfig loads the app registry
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadConfigAndDaemons loads the registry and constructs daemon handles
// for the detected platform paths
func loadConfigAndDaemons() (*config.Config, *daemons, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	paths, err := deps.PlatformDetector.DetectPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect daemon paths: %w", err)
	}

	d := &daemons{
		nginx:      deps.DaemonFactory.Nginx(paths.Nginx),
		supervisor: deps.DaemonFactory.Supervisor(paths.Supervisor),
		varnish:    deps.DaemonFactory.Varnish(paths.Varnish),
	}
	return cfg, d, nil
}

// detectPaths returns the platform paths via the injected detector
func detectPaths() (*platform.Paths, error) {
	paths, err := deps.PlatformDetector.DetectPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to detect daemon paths: %w", err)
	}
	return paths, nil
}

// requireRoot checks for root privileges via the injected checker
func requireRoot() error {
	return deps.RootChecker.RequireRoot()
}

// nameRe matches valid app names. Names double as unix usernames and
// config file basenames, so they stay conservative.
var nameRe = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// validateName checks if an app name is valid
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid app name %s (must be lowercase alphanumeric, starting with a letter)", name)
	}
	return nil
}

// testAndReload tests the nginx config and reloads nginx.
// If rollback is provided, it will be called on test failure.
func testAndReload(nginx daemon.Nginx, reload bool, rollback func() error) error {
	output.Info("Testing nginx configuration...")
	if err := nginx.Test(); err != nil {
		if rollback != nil {
			if rbErr := rollback(); rbErr != nil {
				output.Warn("Rollback failed: %v", rbErr)
			}
		}
		return fmt.Errorf("configuration test failed: %w", err)
	}

	if reload {
		output.Info("Reloading nginx...")
		if err := nginx.Reload(); err != nil {
			return fmt.Errorf("failed to reload nginx: %w", err)
		}
	}

	return nil
}

// saveConfig saves the registry and returns error instead of just warning
func saveConfig(cfg *config.Config) error {
	if err := deps.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// upstreamPort returns the port nginx proxies to: the varnish front port
// for cached apps, the app port otherwise.
func upstreamPort(cfg *config.Config, app *config.App) int {
	if app.Cached {
		return cfg.CachePort
	}
	return app.Port
}

// renderSupervisor renders the program stanza for an app
func renderSupervisor(app *config.App, pause bool) (string, error) {
	return template.Render(template.Supervisor, template.NewSupervisorData(app, pause, app.Monitor))
}

// renderAppHost renders the nginx config for an app. With site set the
// result is a full server block, otherwise a location block for the
// shared test host. The admin location is always gated behind the app's
// htpasswd file; restricted apps additionally gate every other location
// behind it.
func renderAppHost(cfg *config.Config, app *config.App, site bool, locationsDir string) (string, error) {
	adminAuth := auth.Snippet(app.Name, auth.FilePath(locationsDir, app.Name))
	var authSnippet string
	if app.Restricted {
		authSnippet = adminAuth
	}
	data := template.NewAppHostData(app, site, upstreamPort(cfg, app), authSnippet, adminAuth)
	return template.Render(template.NginxApp, data)
}

// DryRunOperation describes a single operation that would be performed
type DryRunOperation struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Details string `json:"details,omitempty"`
}

// DryRunResult collects the operations a command would perform
type DryRunResult struct {
	App           string            `json:"app"`
	Operations    []DryRunOperation `json:"operations"`
	ConfigPreview string            `json:"config_preview,omitempty"`
}

// outputDryRun prints a dry-run result in JSON or human-readable form
func outputDryRun(result *DryRunResult) error {
	if jsonOutput {
		return output.JSON(result)
	}

	output.Info("Dry run for %s, no changes made:", result.App)
	for _, op := range result.Operations {
		if op.Details != "" {
			output.Item("%s %s (%s)", op.Action, op.Target, op.Details)
		} else {
			output.Item("%s %s", op.Action, op.Target)
		}
	}
	if result.ConfigPreview != "" {
		output.Print("")
		output.Print("%s", result.ConfigPreview)
	}
	return nil
}
