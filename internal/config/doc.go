// Package config manages the appcfg application registry stored in YAML
// format.
//
// The config package provides persistent storage for application
// descriptors, tracking names, domains, ports, worker counts, and install
// state. The registry is stored in the user's home directory at
// ~/.config/appcfg/config.yaml.
//
// # Registry Structure
//
// The main Config struct contains:
//   - Base domain used to derive app domains (<name>.<base_domain>)
//   - Contact email written into rendered configs where daemons want one
//   - Varnish cache front port
//   - Map of all registered apps
//
// Example config.yaml:
//
//	base_domain: example.org
//	email: ops@example.org
//	cache_port: 6081
//	apps:
//	  wordbank:
//	    name: wordbank
//	    domain: wordbank.example.org
//	    port: 8888
//	    workers: 5
//	    environment: production
//	    installed: true
//	    created_at: 2026-02-01T10:00:00Z
//
// # Derived Paths
//
// The App type derives all filesystem paths from the name, matching the
// layout the rendered configs assume:
//
//	/home/<name>          app user home
//	/home/<name>/www      static fallback dir (503 page, files)
//	/srv/<name>/venv/bin  app server binaries
//	/var/log/<name>       log directory
//
// # Invariants
//
// App names and ports are unique across the registry; AddApp enforces
// both so any subset of apps can be deployed on the same host.
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
