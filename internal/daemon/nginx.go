package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rkbl/appcfg/internal/executor"
)

// defaultSiteName is the filename of the default host config.
const defaultSiteName = "default"

// NginxDaemon implements the Nginx interface
type NginxDaemon struct {
	paths NginxPaths
	exec  executor.CommandExecutor
}

// NewNginx creates a new nginx daemon with default Debian paths
func NewNginx() *NginxDaemon {
	return NewNginxWithPaths(NginxPaths{
		SitesDir:     "/etc/nginx/sites-enabled",
		LocationsDir: "/etc/nginx/locations.d",
	})
}

// NewNginxWithPaths creates a new nginx daemon with custom paths
func NewNginxWithPaths(paths NginxPaths) *NginxDaemon {
	return &NginxDaemon{
		paths: paths,
		exec:  executor.NewSystemExecutor(),
	}
}

// NewNginxWithExecutor creates a new nginx daemon with custom paths and executor (for testing)
func NewNginxWithExecutor(paths NginxPaths, exec executor.CommandExecutor) *NginxDaemon {
	return &NginxDaemon{
		paths: paths,
		exec:  exec,
	}
}

// Paths returns the config paths
func (n *NginxDaemon) Paths() NginxPaths {
	return n.paths
}

func (n *NginxDaemon) sitePath(name string) string {
	return filepath.Join(n.paths.SitesDir, name)
}

func (n *NginxDaemon) locationPath(name string) string {
	return filepath.Join(n.paths.LocationsDir, name+".conf")
}

// InstallSite writes a full virtual host config for an app
func (n *NginxDaemon) InstallSite(name, content string) error {
	if err := os.MkdirAll(n.paths.SitesDir, 0755); err != nil {
		return fmt.Errorf("failed to create sites directory: %w", err)
	}
	if err := os.WriteFile(n.sitePath(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write site config: %w", err)
	}
	return nil
}

// InstallLocation writes a location-block include for the shared host
func (n *NginxDaemon) InstallLocation(name, content string) error {
	if err := os.MkdirAll(n.paths.LocationsDir, 0755); err != nil {
		return fmt.Errorf("failed to create locations directory: %w", err)
	}
	if err := os.WriteFile(n.locationPath(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write location config: %w", err)
	}
	return nil
}

// InstallDefault writes the default host config
func (n *NginxDaemon) InstallDefault(content string) error {
	if err := os.MkdirAll(n.paths.SitesDir, 0755); err != nil {
		return fmt.Errorf("failed to create sites directory: %w", err)
	}
	if err := os.WriteFile(n.sitePath(defaultSiteName), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write default site config: %w", err)
	}
	return nil
}

// Remove deletes an app's site and location configs
func (n *NginxDaemon) Remove(name string) error {
	removed := false
	for _, path := range []string{n.sitePath(name), n.locationPath(name)} {
		err := os.Remove(path)
		if err == nil {
			removed = true
			continue
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config file: %w", err)
		}
	}
	if !removed {
		return fmt.Errorf("app %s has no nginx config", name)
	}
	return nil
}

// IsInstalled checks whether an app has a site or location config
func (n *NginxDaemon) IsInstalled(name string) (bool, error) {
	for _, path := range []string{n.sitePath(name), n.locationPath(name)} {
		_, err := os.Stat(path)
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to check config status: %w", err)
		}
	}
	return false, nil
}

// List returns all app names with nginx configs
func (n *NginxDaemon) List() ([]string, error) {
	seen := make(map[string]bool)

	entries, err := os.ReadDir(n.paths.SitesDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read sites directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || name == defaultSiteName {
			continue
		}
		seen[name] = true
	}

	entries, err = os.ReadDir(n.paths.LocationsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read locations directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".conf") {
			continue
		}
		seen[strings.TrimSuffix(name, ".conf")] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Test validates the nginx config syntax
func (n *NginxDaemon) Test() error {
	output, err := n.exec.Execute("nginx", "-t")
	if err != nil {
		return fmt.Errorf("nginx config test failed: %s", string(output))
	}
	return nil
}

// Reload reloads nginx to apply changes
func (n *NginxDaemon) Reload() error {
	output, err := n.exec.Execute("systemctl", "reload", "nginx")
	if err != nil {
		// Try nginx -s reload as fallback
		output, err = n.exec.Execute("nginx", "-s", "reload")
		if err != nil {
			return fmt.Errorf("failed to reload nginx: %s", string(output))
		}
	}
	return nil
}
