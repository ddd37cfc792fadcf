package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkbl/appcfg/internal/executor"
)

// VarnishDaemon implements the Varnish interface
type VarnishDaemon struct {
	paths VarnishPaths
	exec  executor.CommandExecutor
}

// NewVarnish creates a new varnish daemon with default Debian paths
func NewVarnish() *VarnishDaemon {
	return NewVarnishWithPaths(VarnishPaths{
		DefaultFile: "/etc/default/varnish",
		MainVCL:     "/etc/varnish/main.vcl",
		SitesVCL:    "/etc/varnish/sites.vcl",
		SitesDir:    "/etc/varnish/sites",
	})
}

// NewVarnishWithPaths creates a new varnish daemon with custom paths
func NewVarnishWithPaths(paths VarnishPaths) *VarnishDaemon {
	return &VarnishDaemon{
		paths: paths,
		exec:  executor.NewSystemExecutor(),
	}
}

// NewVarnishWithExecutor creates a new varnish daemon with custom paths and executor (for testing)
func NewVarnishWithExecutor(paths VarnishPaths, exec executor.CommandExecutor) *VarnishDaemon {
	return &VarnishDaemon{
		paths: paths,
		exec:  exec,
	}
}

// Paths returns the config paths
func (v *VarnishDaemon) Paths() VarnishPaths {
	return v.paths
}

func (v *VarnishDaemon) vclPath(name string) string {
	return filepath.Join(v.paths.SitesDir, name+".vcl")
}

func (v *VarnishDaemon) includeLine(name string) string {
	return fmt.Sprintf("include %q;", v.vclPath(name))
}

// InstallDefault writes the daemon options file
func (v *VarnishDaemon) InstallDefault(content string) error {
	if err := os.MkdirAll(filepath.Dir(v.paths.DefaultFile), 0755); err != nil {
		return fmt.Errorf("failed to create default file directory: %w", err)
	}
	if err := os.WriteFile(v.paths.DefaultFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write varnish defaults: %w", err)
	}
	return nil
}

// InstallMain writes the main VCL
func (v *VarnishDaemon) InstallMain(content string) error {
	if err := os.MkdirAll(filepath.Dir(v.paths.MainVCL), 0755); err != nil {
		return fmt.Errorf("failed to create vcl directory: %w", err)
	}
	if err := os.WriteFile(v.paths.MainVCL, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write main vcl: %w", err)
	}
	return nil
}

// InstallSite writes an app's VCL and ensures the sites VCL includes it
func (v *VarnishDaemon) InstallSite(name, content string) error {
	if err := os.MkdirAll(v.paths.SitesDir, 0755); err != nil {
		return fmt.Errorf("failed to create sites directory: %w", err)
	}
	if err := os.WriteFile(v.vclPath(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write site vcl: %w", err)
	}
	return v.ensureInclude(name)
}

// ensureInclude appends the app's include line to the sites VCL if missing
func (v *VarnishDaemon) ensureInclude(name string) error {
	line := v.includeLine(name)

	data, err := os.ReadFile(v.paths.SitesVCL)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read sites vcl: %w", err)
	}
	if strings.Contains(string(data), line) {
		return nil
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"

	if err := os.WriteFile(v.paths.SitesVCL, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write sites vcl: %w", err)
	}
	return nil
}

// RemoveSite deletes an app's VCL and drops its include line
func (v *VarnishDaemon) RemoveSite(name string) error {
	if err := os.Remove(v.vclPath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("app %s has no vcl", name)
		}
		return fmt.Errorf("failed to remove site vcl: %w", err)
	}

	data, err := os.ReadFile(v.paths.SitesVCL)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sites vcl: %w", err)
	}

	line := v.includeLine(name)
	var kept []string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) == line {
			continue
		}
		kept = append(kept, l)
	}

	if err := os.WriteFile(v.paths.SitesVCL, []byte(strings.Join(kept, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write sites vcl: %w", err)
	}
	return nil
}

// IsInstalled checks whether an app has a VCL
func (v *VarnishDaemon) IsInstalled(name string) (bool, error) {
	_, err := os.Stat(v.vclPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check vcl status: %w", err)
	}
	return true, nil
}

// Restart restarts varnish to load new VCL
func (v *VarnishDaemon) Restart() error {
	output, err := v.exec.Execute("systemctl", "restart", "varnish")
	if err != nil {
		// Try the init script as fallback
		output, err = v.exec.Execute("service", "varnish", "restart")
		if err != nil {
			return fmt.Errorf("failed to restart varnish: %s", string(output))
		}
	}
	return nil
}
