package template

import (
	"fmt"
	"path"
	"time"

	"github.com/rkbl/appcfg/internal/config"
)

// Varnish defaults used when rendering the cache configs.
const (
	VarnishAdminPort   = 6082
	VarnishTTL         = 3600
	VarnishStorageSize = "10G"
	VarnishSitesVCL    = "/etc/varnish/sites.vcl"
)

// SupervisorData is the data for the supervisor program stanza.
type SupervisorData struct {
	Name        string
	Command     string
	Directory   string
	User        string
	Environment []string
	Log         string
	Pause       bool
}

// NewSupervisorData builds the stanza data for an app. When pause is true
// the stanza disables autostart and autorestart so the program stays down
// across supervisor restarts. When monitor is true the command runs under
// the monitoring agent wrapper and the agent config path is exported.
func NewSupervisorData(app *config.App, pause, monitor bool) SupervisorData {
	d := SupervisorData{
		Name:      app.Name,
		Command:   app.Command(monitor),
		Directory: app.SrcDir(),
		User:      app.Name,
		Log:       app.ErrorLog(),
		Pause:     pause,
	}
	if monitor {
		d.Environment = append(d.Environment,
			fmt.Sprintf("NEW_RELIC_CONFIG_FILE=%q", app.MonitorConfig()))
	}
	return d
}

// AppHostData is the data for the nginx app virtual host. With Site set
// the template renders a complete server block; without it, only the
// location blocks for inclusion into a shared host.
type AppHostData struct {
	Name      string
	Domain    string
	Port      int
	Site      bool
	Location  string
	WWW       string
	AccessLog string
	StaticDir string
	Auth      string
	AdminAuth string
}

// NewAppHostData builds the app host data. port is the upstream the proxy
// locations point at: the app port normally, the varnish front port when
// the app is cached.
func NewAppHostData(app *config.App, site bool, port int, auth, adminAuth string) AppHostData {
	return AppHostData{
		Name:      app.Name,
		Domain:    app.Domain,
		Port:      port,
		Site:      site,
		Location:  app.LocationPrefix(site),
		WWW:       app.WWW(),
		AccessLog: app.AccessLog(),
		StaticDir: path.Join(app.SrcDir(), app.Name, "static"),
		Auth:      auth,
		AdminAuth: adminAuth,
	}
}

// DefaultHostData is the data for the generic static/SSL default host.
// LocationsInclude is a glob of per-app location configs the host pulls
// in, so test-environment apps are served from it.
type DefaultHostData struct {
	ServerName       string
	Root             string
	SSL              bool
	SSLCert          string
	SSLKey           string
	LocationsInclude string
}

// MaintenanceData is the data for the 503 maintenance page.
type MaintenanceData struct {
	Domain   string
	Deadline string
}

// NewMaintenanceData builds the 503 page data with a human-readable
// deadline the given duration from now.
func NewMaintenanceData(app *config.App, d time.Duration) MaintenanceData {
	return MaintenanceData{
		Domain:   app.Domain,
		Deadline: time.Now().Add(d).Format("2006-01-02 15:04 MST"),
	}
}

// LogrotateData is the data for the logrotate stanza.
type LogrotateData struct {
	LogDir string
}

// VarnishDefaultData is the data for /etc/default/varnish.
type VarnishDefaultData struct {
	ListenPort  int
	AdminPort   int
	TTL         int
	StorageSize string
}

// NewVarnishDefaultData builds the varnish daemon options with defaults.
func NewVarnishDefaultData(listenPort int) VarnishDefaultData {
	return VarnishDefaultData{
		ListenPort:  listenPort,
		AdminPort:   VarnishAdminPort,
		TTL:         VarnishTTL,
		StorageSize: VarnishStorageSize,
	}
}

// VarnishMainData is the data for the main VCL.
type VarnishMainData struct {
	SitesInclude string
}

// VarnishSiteData is the data for a per-app VCL.
type VarnishSiteData struct {
	Name   string
	Domain string
	Port   int
	TTL    int
}

// NewVarnishSiteData builds the per-app backend/cache data.
func NewVarnishSiteData(app *config.App) VarnishSiteData {
	return VarnishSiteData{
		Name:   app.Name,
		Domain: app.Domain,
		Port:   app.Port,
		TTL:    VarnishTTL,
	}
}
