// Package platform provides platform-specific path detection for daemon configurations.
package platform

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rkbl/appcfg/internal/daemon"
)

// Paths contains the detected config paths for all managed daemons.
type Paths struct {
	Nginx      daemon.NginxPaths
	Supervisor daemon.SupervisorPaths
	Varnish    daemon.VarnishPaths
}

// DetectPaths returns platform-specific default paths for the managed
// daemons. It checks for common installation locations based on the OS.
func DetectPaths() (*Paths, error) {
	switch runtime.GOOS {
	case "darwin":
		return detectDarwinPaths()
	case "linux":
		return detectLinuxPaths()
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectDarwinPaths detects paths for macOS (Homebrew installations).
func detectDarwinPaths() (*Paths, error) {
	for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
		if !pathExists(prefix) {
			continue
		}
		return &Paths{
			Nginx: daemon.NginxPaths{
				SitesDir:     prefix + "/etc/nginx/servers",
				LocationsDir: prefix + "/etc/nginx/locations.d",
			},
			Supervisor: daemon.SupervisorPaths{
				ConfDir: prefix + "/etc/supervisor.d",
			},
			Varnish: daemon.VarnishPaths{
				DefaultFile: prefix + "/etc/varnish/varnish.params",
				MainVCL:     prefix + "/etc/varnish/main.vcl",
				SitesVCL:    prefix + "/etc/varnish/sites.vcl",
				SitesDir:    prefix + "/etc/varnish/sites",
			},
		}, nil
	}

	return nil, fmt.Errorf("homebrew installation not found (checked /opt/homebrew and /usr/local)")
}

// detectLinuxPaths detects paths for Linux distributions.
func detectLinuxPaths() (*Paths, error) {
	// Debian/Ubuntu layout (most common)
	if pathExists("/etc/nginx/sites-enabled") || pathExists("/etc/nginx") {
		return &Paths{
			Nginx: daemon.NginxPaths{
				SitesDir:     "/etc/nginx/sites-enabled",
				LocationsDir: "/etc/nginx/locations.d",
			},
			Supervisor: daemon.SupervisorPaths{
				ConfDir: "/etc/supervisor/conf.d",
			},
			Varnish: daemon.VarnishPaths{
				DefaultFile: "/etc/default/varnish",
				MainVCL:     "/etc/varnish/main.vcl",
				SitesVCL:    "/etc/varnish/sites.vcl",
				SitesDir:    "/etc/varnish/sites",
			},
		}, nil
	}

	// RHEL/CentOS layout
	if pathExists("/etc/nginx/conf.d") {
		return &Paths{
			Nginx: daemon.NginxPaths{
				SitesDir:     "/etc/nginx/conf.d",
				LocationsDir: "/etc/nginx/locations.d",
			},
			Supervisor: daemon.SupervisorPaths{
				ConfDir: "/etc/supervisord.d",
			},
			Varnish: daemon.VarnishPaths{
				DefaultFile: "/etc/varnish/varnish.params",
				MainVCL:     "/etc/varnish/main.vcl",
				SitesVCL:    "/etc/varnish/sites.vcl",
				SitesDir:    "/etc/varnish/sites",
			},
		}, nil
	}

	return nil, fmt.Errorf("daemon configuration paths not found (checked /etc/nginx and /etc/nginx/conf.d)")
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
