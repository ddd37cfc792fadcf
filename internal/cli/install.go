package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkbl/appcfg/internal/auth"
	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/rkbl/appcfg/internal/template"
	"github.com/spf13/cobra"
)

var (
	installEnv     string
	installUsers   []string
	installMonitor bool
	installSSL     bool
	noReload       bool
)

// logrotateDir is where per-app logrotate stanzas are installed
// (package variable so tests can redirect it)
var logrotateDir = "/etc/logrotate.d"

var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install an app's daemon configs",
	Long: `Generate and install the daemon configs that serve an app.

In the production environment the app gets its own nginx virtual host and
a logrotate stanza. In the test environment it is served as a location
block under /<name>/ on the shared default host, which is installed
alongside it.

Both environments install a supervisor program stanza and start the app.
The app's admin location is always gated behind basic auth, so the first
install must supply credentials with --user.

Examples:
  appcfg install wordbank --env production --user alice:secret
  appcfg install wordbank --env test --user alice:secret
  appcfg install wordbank --env production --user alice:secret --user bob:secret
  appcfg install wordbank --env test --ssl --user alice:secret`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installEnv, "env", "e", config.EnvProduction, "Deployment environment (test, production)")
	installCmd.Flags().StringArrayVar(&installUsers, "user", nil, "Basic auth credential as user:password (repeatable)")
	installCmd.Flags().BoolVar(&installMonitor, "monitor", false, "Run the app under the monitoring agent")
	installCmd.Flags().BoolVar(&installSSL, "ssl", false, "Install the shared default host with SSL (test env)")
	installCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := validateName(name); err != nil {
		return err
	}
	if !config.IsValidEnvironment(installEnv) {
		return fmt.Errorf("invalid environment: %s. Valid environments: %s",
			installEnv, strings.Join(config.ValidEnvironments(), ", "))
	}

	users, err := parseUsers(installUsers)
	if err != nil {
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

	app.Environment = installEnv
	app.Monitor = installMonitor

	// Test hosts are shared, cap the per-app worker count
	if installEnv == config.EnvTest && app.Workers > config.MaxTestWorkers {
		app.Workers = config.MaxTestWorkers
	}

	site := installEnv == config.EnvProduction
	locationsDir := d.nginx.Paths().LocationsDir

	// Render everything before touching the system
	stanza, err := renderSupervisor(app, false)
	if err != nil {
		return fmt.Errorf("failed to render supervisor stanza: %w", err)
	}
	nginxContent, err := renderAppHost(cfg, app, site, locationsDir)
	if err != nil {
		return fmt.Errorf("failed to render nginx config: %w", err)
	}

	var defaultHost, logrotateContent string
	if site {
		logrotateContent, err = template.Render(template.Logrotate,
			template.LogrotateData{LogDir: app.LogDir()})
		if err != nil {
			return fmt.Errorf("failed to render logrotate config: %w", err)
		}
	} else {
		defaultHost, err = template.Render(template.NginxDefault, template.DefaultHostData{
			ServerName:       "_",
			Root:             "/var/www/html",
			SSL:              installSSL,
			SSLCert:          defaultSSLCert,
			SSLKey:           defaultSSLKey,
			LocationsInclude: filepath.Join(locationsDir, "*.conf"),
		})
		if err != nil {
			return fmt.Errorf("failed to render default host: %w", err)
		}
	}

	if dryRun {
		return outputInstallDryRun(name, site, d, app, nginxContent)
	}

	if err := requireRoot(); err != nil {
		return err
	}

	// The admin location always references the app's htpasswd file, so
	// the credentials must exist before nginx does
	htpasswdPath := auth.FilePath(locationsDir, name)
	if len(users) > 0 {
		output.Info("Writing htpasswd file...")
		if err := os.MkdirAll(locationsDir, 0755); err != nil {
			return fmt.Errorf("failed to create locations directory: %w", err)
		}
		if err := auth.EnsureUsers(htpasswdPath, users); err != nil {
			return err
		}
	} else if _, err := os.Stat(htpasswdPath); os.IsNotExist(err) {
		return fmt.Errorf("no credentials at %s for the admin location, pass --user", htpasswdPath)
	}

	output.Info("Installing supervisor stanza...")
	if err := d.supervisor.Install(name, stanza); err != nil {
		return err
	}

	output.Info("Installing nginx config...")
	if site {
		err = d.nginx.InstallSite(name, nginxContent)
	} else {
		err = d.nginx.InstallLocation(name, nginxContent)
	}
	if err != nil {
		return err
	}

	if site {
		if err := os.MkdirAll(logrotateDir, 0755); err != nil {
			return fmt.Errorf("failed to create logrotate directory: %w", err)
		}
		logrotatePath := filepath.Join(logrotateDir, name)
		if err := os.WriteFile(logrotatePath, []byte(logrotateContent), 0644); err != nil {
			return fmt.Errorf("failed to write logrotate config: %w", err)
		}
	} else {
		output.Info("Installing default host...")
		if err := d.nginx.InstallDefault(defaultHost); err != nil {
			return err
		}
	}

	// Bad nginx config must not linger, a later manual reload would kill
	// every site on the box
	rollback := func() error {
		output.Info("Rolling back changes...")
		return d.nginx.Remove(name)
	}
	if err := testAndReload(d.nginx, !noReload, rollback); err != nil {
		return err
	}

	output.Info("Starting app...")
	if err := d.supervisor.Update(name); err != nil {
		return err
	}
	if err := d.supervisor.Restart(name); err != nil {
		return err
	}

	app.Installed = true
	if err := saveConfig(cfg); err != nil {
		output.Warn("App installed but config save failed: %v", err)
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"app":     name,
			"env":     installEnv,
			"domain":  app.Domain,
		},
		"App %s installed (%s)", name, installEnv,
	)
}

// parseUsers splits user:password flags into credentials
func parseUsers(specs []string) ([]auth.User, error) {
	users := make([]auth.User, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid user spec %q, expected user:password", spec)
		}
		users = append(users, auth.User{Name: parts[0], Password: parts[1]})
	}
	return users, nil
}

// outputInstallDryRun outputs what install would do in dry-run mode
func outputInstallDryRun(name string, site bool, d *daemons, app *config.App, nginxContent string) error {
	nginxPaths := d.nginx.Paths()
	supPaths := d.supervisor.Paths()

	operations := []DryRunOperation{
		{
			Action:  "create_file",
			Target:  filepath.Join(supPaths.ConfDir, name+".conf"),
			Details: "Supervisor program stanza",
		},
	}

	if site {
		operations = append(operations,
			DryRunOperation{
				Action:  "create_file",
				Target:  filepath.Join(nginxPaths.SitesDir, name),
				Details: fmt.Sprintf("Virtual host for %s", app.Domain),
			},
			DryRunOperation{
				Action:  "create_file",
				Target:  filepath.Join(logrotateDir, name),
				Details: "Logrotate stanza",
			},
		)
	} else {
		operations = append(operations,
			DryRunOperation{
				Action:  "create_file",
				Target:  filepath.Join(nginxPaths.LocationsDir, name+".conf"),
				Details: fmt.Sprintf("Location block under /%s/", name),
			},
			DryRunOperation{
				Action:  "create_file",
				Target:  filepath.Join(nginxPaths.SitesDir, "default"),
				Details: "Shared default host",
			},
		)
	}

	operations = append(operations, DryRunOperation{
		Action:  "create_file",
		Target:  auth.FilePath(nginxPaths.LocationsDir, name),
		Details: "Basic auth credentials for the admin location",
	})

	if !noReload {
		operations = append(operations,
			DryRunOperation{Action: "test_config", Target: "nginx"},
			DryRunOperation{Action: "reload_server", Target: "nginx"},
		)
	}
	operations = append(operations,
		DryRunOperation{Action: "restart_program", Target: name, Details: "supervisorctl update + restart"},
	)

	return outputDryRun(&DryRunResult{
		App:           name,
		Operations:    operations,
		ConfigPreview: nginxContent,
	})
}
