package template

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Template names accepted by Render.
const (
	Supervisor     = "supervisor"
	NginxApp       = "nginx-app"
	NginxDefault   = "nginx-default"
	Maintenance    = "503"
	Logrotate      = "logrotate"
	VarnishDefault = "varnish-default"
	VarnishMain    = "varnish-main"
	VarnishSite    = "varnish-site"
)

// files maps template names to embedded file paths
var files = map[string]string{
	Supervisor:     "supervisor/program.conf.tmpl",
	NginxApp:       "nginx/app.conf.tmpl",
	NginxDefault:   "nginx/default.conf.tmpl",
	Maintenance:    "nginx/503.html.tmpl",
	Logrotate:      "logrotate/app.conf.tmpl",
	VarnishDefault: "varnish/default.tmpl",
	VarnishMain:    "varnish/main.vcl.tmpl",
	VarnishSite:    "varnish/site.vcl.tmpl",
}

// Render renders the named template with the given data
func Render(name string, data interface{}) (string, error) {
	path, ok := files[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	content, err := templates.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}

// Available returns all template names
func Available() []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
