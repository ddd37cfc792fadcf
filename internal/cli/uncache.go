package cli

import (
	"path/filepath"

	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var uncacheCmd = &cobra.Command{
	Use:   "uncache <name>",
	Short: "Take varnish out from in front of an app",
	Long: `Remove the varnish cache from in front of an app.

Drops the app's VCL and rewrites its nginx config to proxy to the app
port again.

Examples:
  appcfg uncache wordbank`,
	Args: cobra.ExactArgs(1),
	RunE: runUncache,
}

func init() {
	uncacheCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(uncacheCmd)
}

func runUncache(cmd *cobra.Command, args []string) error {
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
	if !app.Cached {
		output.Info("App %s is not cached", name)
		return nil
	}

	app.Cached = false
	site := app.Environment == config.EnvProduction
	nginxContent, err := renderAppHost(cfg, app, site, d.nginx.Paths().LocationsDir)
	if err != nil {
		app.Cached = true
		return err
	}

	if dryRun {
		app.Cached = true
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{Action: "remove_file", Target: filepath.Join(d.varnish.Paths().SitesDir, name+".vcl")},
				{Action: "restart_server", Target: "varnish"},
				{Action: "update_file", Target: "nginx config", Details: "proxy to the app port"},
			},
		})
	}

	if err := requireRoot(); err != nil {
		return err
	}

	// nginx first so no requests hit varnish while its VCL disappears
	output.Info("Pointing nginx back at the app...")
	if err := installAppHost(d, name, site, nginxContent); err != nil {
		return err
	}
	if err := testAndReload(d.nginx, !noReload, nil); err != nil {
		return err
	}

	output.Info("Removing varnish config...")
	if err := d.varnish.RemoveSite(name); err != nil {
		return err
	}
	if err := d.varnish.Restart(); err != nil {
		output.Warn("Could not restart varnish: %v", err)
	}

	if err := saveConfig(cfg); err != nil {
		output.Warn("App uncached but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"app":     name,
			"cached":  false,
		},
		"App %s no longer cached", name,
	)
}
