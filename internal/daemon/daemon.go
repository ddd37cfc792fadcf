package daemon

// NginxPaths contains the nginx config directory paths. Sites are written
// directly into the enabled sites directory; location blocks for the
// shared test host go into their own include directory.
type NginxPaths struct {
	SitesDir     string // full virtual host configs
	LocationsDir string // location-block includes and htpasswd files
}

// SupervisorPaths contains the supervisor config directory paths.
type SupervisorPaths struct {
	ConfDir string // program stanza directory
}

// VarnishPaths contains the varnish config file and directory paths.
type VarnishPaths struct {
	DefaultFile string // daemon options (/etc/default/varnish)
	MainVCL     string // main VCL with host normalization
	SitesVCL    string // VCL that includes all per-app VCLs
	SitesDir    string // per-app VCL directory
}

// Nginx drives the reverse proxy / web server.
type Nginx interface {
	// InstallSite writes a full virtual host config for an app
	InstallSite(name, content string) error

	// InstallLocation writes a location-block include for the shared host
	InstallLocation(name, content string) error

	// InstallDefault writes the default host config
	InstallDefault(content string) error

	// Remove deletes an app's site and location configs
	Remove(name string) error

	// IsInstalled checks whether an app has a site or location config
	IsInstalled(name string) (bool, error)

	// List returns all app names with nginx configs
	List() ([]string, error)

	// Test validates the nginx config syntax
	Test() error

	// Reload reloads nginx
	Reload() error

	// Paths returns the config paths
	Paths() NginxPaths
}

// Supervisor drives the process supervisor.
type Supervisor interface {
	// Install writes an app's program stanza
	Install(name, content string) error

	// Remove deletes an app's program stanza
	Remove(name string) error

	// IsInstalled checks whether an app has a program stanza
	IsInstalled(name string) (bool, error)

	// Update makes the supervisor pick up stanza changes (reread + update)
	Update(name string) error

	// Restart restarts the program
	Restart(name string) error

	// Stop stops the program
	Stop(name string) error

	// Status returns the supervisorctl status line for the program
	Status(name string) (string, error)

	// Paths returns the config paths
	Paths() SupervisorPaths
}

// Varnish drives the cache daemon.
type Varnish interface {
	// InstallDefault writes the daemon options file
	InstallDefault(content string) error

	// InstallMain writes the main VCL
	InstallMain(content string) error

	// InstallSite writes an app's VCL and ensures it is included
	InstallSite(name, content string) error

	// RemoveSite deletes an app's VCL and its include line
	RemoveSite(name string) error

	// IsInstalled checks whether an app has a VCL
	IsInstalled(name string) (bool, error)

	// Restart restarts varnish to load new VCL
	Restart() error

	// Paths returns the config paths
	Paths() VarnishPaths
}
