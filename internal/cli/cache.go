package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/rkbl/appcfg/internal/template"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache <name>",
	Short: "Put varnish in front of an app",
	Long: `Front an app with the varnish cache.

Installs the varnish daemon options, the main VCL and a per-app VCL, and
rewrites the app's nginx config to proxy to the cache port instead of the
app port.

Examples:
  appcfg cache wordbank`,
	Args: cobra.ExactArgs(1),
	RunE: runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
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
	if !app.Installed {
		return fmt.Errorf("app %s is not installed, run 'appcfg install %s' first", name, name)
	}
	if app.Cached {
		output.Info("App %s is already cached", name)
		return nil
	}

	varnishPaths := d.varnish.Paths()

	daemonOpts, err := template.Render(template.VarnishDefault,
		template.NewVarnishDefaultData(cfg.CachePort))
	if err != nil {
		return err
	}
	mainVCL, err := template.Render(template.VarnishMain,
		template.VarnishMainData{SitesInclude: varnishPaths.SitesVCL})
	if err != nil {
		return err
	}
	siteVCL, err := template.Render(template.VarnishSite, template.NewVarnishSiteData(app))
	if err != nil {
		return err
	}

	// nginx must point at the cache front port once varnish is up
	app.Cached = true
	site := app.Environment == config.EnvProduction
	nginxContent, err := renderAppHost(cfg, app, site, d.nginx.Paths().LocationsDir)
	if err != nil {
		app.Cached = false
		return err
	}

	if dryRun {
		app.Cached = false
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{Action: "create_file", Target: varnishPaths.DefaultFile, Details: fmt.Sprintf("Varnish on port %d", cfg.CachePort)},
				{Action: "create_file", Target: varnishPaths.MainVCL},
				{Action: "create_file", Target: filepath.Join(varnishPaths.SitesDir, name+".vcl")},
				{Action: "restart_server", Target: "varnish"},
				{Action: "update_file", Target: "nginx config", Details: fmt.Sprintf("proxy to cache port %d", cfg.CachePort)},
			},
			ConfigPreview: siteVCL,
		})
	}

	if err := requireRoot(); err != nil {
		return err
	}

	output.Info("Installing varnish configs...")
	if err := d.varnish.InstallDefault(daemonOpts); err != nil {
		return err
	}
	if err := d.varnish.InstallMain(mainVCL); err != nil {
		return err
	}
	if err := d.varnish.InstallSite(name, siteVCL); err != nil {
		return err
	}

	output.Info("Restarting varnish...")
	if err := d.varnish.Restart(); err != nil {
		return err
	}

	output.Info("Pointing nginx at the cache...")
	if err := installAppHost(d, name, site, nginxContent); err != nil {
		return err
	}

	// On a broken config, fall back to proxying the app directly
	rollback := func() error {
		output.Info("Rolling back changes...")
		app.Cached = false
		content, rbErr := renderAppHost(cfg, app, site, d.nginx.Paths().LocationsDir)
		if rbErr != nil {
			return rbErr
		}
		if rbErr := installAppHost(d, name, site, content); rbErr != nil {
			return rbErr
		}
		return d.varnish.RemoveSite(name)
	}
	if err := testAndReload(d.nginx, !noReload, rollback); err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		output.Warn("App cached but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success":    true,
			"app":        name,
			"cached":     true,
			"cache_port": cfg.CachePort,
		},
		"App %s now cached on port %d", name, cfg.CachePort,
	)
}

// installAppHost writes the nginx config through the right install path
// for the app's environment
func installAppHost(d *daemons, name string, site bool, content string) error {
	if site {
		return d.nginx.InstallSite(name, content)
	}
	return d.nginx.InstallLocation(name, content)
}
