package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/rkbl/appcfg/internal/template"
	"github.com/spf13/cobra"
)

var (
	renderPause    bool
	renderSite     bool
	renderSSL      bool
	renderHours    int
	renderRoot     string
	renderHostname string
)

// Default certificate paths for the SSL default host
const (
	defaultSSLCert = "/etc/ssl/certs/server.pem"
	defaultSSLKey  = "/etc/ssl/private/server.key"
)

var renderCmd = &cobra.Command{
	Use:   "render <template> [name]",
	Short: "Render a config template to stdout",
	Long: `Render a config template to stdout without installing anything.

Most templates describe a single app and take its name as second argument.
The nginx-default, varnish-default and varnish-main templates are
app-independent and take no name.

Examples:
  appcfg render supervisor wordbank
  appcfg render supervisor wordbank --pause
  appcfg render nginx-app wordbank --site
  appcfg render nginx-default --ssl
  appcfg render 503 wordbank --hours 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderPause, "pause", false, "Render the supervisor stanza with autostart disabled")
	renderCmd.Flags().BoolVar(&renderSite, "site", false, "Render the nginx config as a full virtual host")
	renderCmd.Flags().BoolVar(&renderSSL, "ssl", false, "Render the default host with SSL enabled")
	renderCmd.Flags().IntVar(&renderHours, "hours", 2, "Hours until maintenance is expected to end")
	renderCmd.Flags().StringVar(&renderRoot, "root", "/var/www/html", "Document root for the default host")
	renderCmd.Flags().StringVar(&renderHostname, "server-name", "_", "Server name for the default host")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	tmpl := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// App-independent templates
	switch tmpl {
	case template.NginxDefault:
		paths, err := detectPaths()
		if err != nil {
			return err
		}
		return renderToStdout(tmpl, template.DefaultHostData{
			ServerName:       renderHostname,
			Root:             renderRoot,
			SSL:              renderSSL,
			SSLCert:          defaultSSLCert,
			SSLKey:           defaultSSLKey,
			LocationsInclude: filepath.Join(paths.Nginx.LocationsDir, "*.conf"),
		})
	case template.VarnishDefault:
		return renderToStdout(tmpl, template.NewVarnishDefaultData(cfg.CachePort))
	case template.VarnishMain:
		return renderToStdout(tmpl, template.VarnishMainData{SitesInclude: template.VarnishSitesVCL})
	}

	if len(args) < 2 {
		return fmt.Errorf("template %s needs an app name", tmpl)
	}
	name := args[1]
	if err := validateName(name); err != nil {
		return err
	}
	app, err := cfg.GetApp(name)
	if err != nil {
		return err
	}

	switch tmpl {
	case template.Supervisor:
		content, err := renderSupervisor(app, renderPause)
		if err != nil {
			return err
		}
		output.Print("%s", content)
		return nil
	case template.NginxApp:
		paths, err := detectPaths()
		if err != nil {
			return err
		}
		content, err := renderAppHost(cfg, app, renderSite, paths.Nginx.LocationsDir)
		if err != nil {
			return err
		}
		output.Print("%s", content)
		return nil
	case template.Maintenance:
		return renderToStdout(tmpl, template.NewMaintenanceData(app, time.Duration(renderHours)*time.Hour))
	case template.Logrotate:
		return renderToStdout(tmpl, template.LogrotateData{LogDir: app.LogDir()})
	case template.VarnishSite:
		return renderToStdout(tmpl, template.NewVarnishSiteData(app))
	default:
		return fmt.Errorf("unknown template %s (available: %s)", tmpl, strings.Join(template.Available(), ", "))
	}
}

func renderToStdout(name string, data interface{}) error {
	content, err := template.Render(name, data)
	if err != nil {
		return err
	}
	output.Print("%s", content)
	return nil
}
