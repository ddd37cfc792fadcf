// Package template provides rendering of deployment configuration files
// from embedded Go templates.
//
// The template package contains the configuration templates consumed by
// the daemons appcfg drives: a supervisor program stanza, nginx virtual
// host configs, varnish cache configs, a logrotate stanza, and a
// maintenance page. Templates are embedded in the binary using go:embed
// directives.
//
// # Template Organization
//
//	supervisor/program.conf.tmpl   supervisor program stanza
//	nginx/app.conf.tmpl            app virtual host / location blocks
//	nginx/default.conf.tmpl        generic static/SSL default host
//	nginx/503.html.tmpl            maintenance page
//	varnish/default.tmpl           varnish daemon options
//	varnish/main.vcl.tmpl          main VCL with host normalization
//	varnish/site.vcl.tmpl          per-app backend and cache policy
//	logrotate/app.conf.tmpl        log rotation stanza
//
// # Rendering
//
// Each template has a typed data struct and usually a constructor that
// derives the data from a registered app:
//
//	data := template.NewSupervisorData(app, false, true)
//	content, err := template.Render(template.Supervisor, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Conditional Blocks
//
// Boolean flags switch entire blocks on or off:
//
//   - SupervisorData.Pause renders autostart/autorestart as false so a
//     stopped program stays down.
//   - AppHostData.Site switches between a full server block and bare
//     location blocks for a shared host.
//   - DefaultHostData.SSL switches between a plain port-80 host and a
//     port-443 host with certificate directives plus an HTTP redirect.
//
// # Custom Functions
//
// Templates have access to the sprig function map (join, indent, etc.).
package template
