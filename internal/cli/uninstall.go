package cli

import (
	"os"
	"path/filepath"

	"github.com/rkbl/appcfg/internal/auth"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Remove an app's daemon configs",
	Long: `Stop an app and remove its daemon configs.

The registry entry stays; use "appcfg remove" to drop it entirely.

Examples:
  appcfg uninstall wordbank
  appcfg uninstall wordbank --no-reload`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := validateName(name); err != nil {
		return err
	}

	cfg, d, err := loadConfigAndDaemons()
	if err != nil {
		return err
	}

	app, err := cfg.GetApp(name)
	if err != nil {
		return err
	}

	if dryRun {
		nginxPaths := d.nginx.Paths()
		supPaths := d.supervisor.Paths()
		operations := []DryRunOperation{
			{Action: "stop_program", Target: name},
			{Action: "remove_file", Target: filepath.Join(supPaths.ConfDir, name+".conf")},
			{Action: "remove_file", Target: filepath.Join(nginxPaths.SitesDir, name)},
			{Action: "remove_file", Target: filepath.Join(nginxPaths.LocationsDir, name+".conf")},
		}
		if app.Cached {
			operations = append(operations, DryRunOperation{
				Action: "remove_file",
				Target: filepath.Join(d.varnish.Paths().SitesDir, name+".vcl"),
			})
		}
		return outputDryRun(&DryRunResult{App: name, Operations: operations})
	}

	if err := requireRoot(); err != nil {
		return err
	}

	// Stop the program before pulling its stanza
	if installed, _ := d.supervisor.IsInstalled(name); installed {
		output.Info("Stopping app...")
		if err := d.supervisor.Stop(name); err != nil {
			output.Warn("Could not stop app: %v", err)
		}
		if err := d.supervisor.Remove(name); err != nil {
			output.Warn("Could not remove supervisor stanza: %v", err)
		}
		if err := d.supervisor.Update(name); err != nil {
			output.Warn("Could not update supervisor: %v", err)
		}
	}

	output.Info("Removing nginx config...")
	if installed, _ := d.nginx.IsInstalled(name); installed {
		if err := d.nginx.Remove(name); err != nil {
			return err
		}
	}

	if app.Cached {
		output.Info("Removing varnish config...")
		if err := d.varnish.RemoveSite(name); err != nil {
			output.Warn("Could not remove varnish config: %v", err)
		}
		app.Cached = false
	}

	// Leftover support files
	for _, path := range []string{
		filepath.Join(logrotateDir, name),
		auth.FilePath(d.nginx.Paths().LocationsDir, name),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			output.Warn("Could not remove %s: %v", path, err)
		}
	}

	// Post-removal check only, nothing to roll back
	if err := testAndReload(d.nginx, !noReload, nil); err != nil {
		output.Warn("Post-removal check failed: %v", err)
	}

	app.Installed = false
	if err := saveConfig(cfg); err != nil {
		output.Warn("App uninstalled but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success":   true,
			"app":       name,
			"installed": false,
		},
		"App %s uninstalled", name,
	)
}
