package template

import "embed"

//go:embed supervisor/*.tmpl nginx/*.tmpl varnish/*.tmpl logrotate/*.tmpl
var templates embed.FS
