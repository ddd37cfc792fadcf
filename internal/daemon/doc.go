// Package daemon provides abstractions for the system daemons that serve
// registered apps: nginx (web server), supervisor (process control) and
// varnish (cache).
//
// Each daemon is modelled as an interface so commands can be tested with
// mock implementations, plus a concrete implementation that writes config
// files and shells out through executor.CommandExecutor.
//
// # Config Layout
//
//   - Nginx: full virtual host configs go into the sites directory
//     (sites-enabled on Debian); location-block includes for the shared
//     test host go into the locations directory.
//   - Supervisor: program stanzas go into conf.d, one <app>.conf each.
//   - Varnish: daemon options, a main VCL, and a sites VCL that includes
//     one generated VCL per cached app.
//
// # Basic Usage
//
// Create a daemon with platform-specific paths:
//
//	nginx := daemon.NewNginxWithPaths(daemon.NginxPaths{
//	    SitesDir:     "/etc/nginx/sites-enabled",
//	    LocationsDir: "/etc/nginx/locations.d",
//	})
//
//	err := nginx.InstallSite("myapp", content)
//
// # Testing
//
// Each implementation provides a WithExecutor constructor that accepts a
// mock executor.CommandExecutor, and the package ships MockNginx,
// MockSupervisor and MockVarnish for command-level tests:
//
//	mockExec := &executor.MockExecutor{}
//	nginx := daemon.NewNginxWithExecutor(paths, mockExec)
//
// # Error Handling
//
// All daemon methods return descriptive errors that include context about
// the operation that failed. Errors are wrapped using fmt.Errorf with %w
// to maintain the error chain.
package daemon
