package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/daemon"
	"github.com/rkbl/appcfg/internal/executor"
)

func TestCheckSystemRequirements(t *testing.T) {
	t.Run("AllInstalled", func(t *testing.T) {
		mockExec := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				switch name {
				case "nginx":
					return []byte("nginx version: nginx/1.24.0"), nil
				case "supervisord":
					return []byte("4.2.5"), nil
				case "varnishd":
					return []byte("varnishd (varnish-7.4.2 revision)"), nil
				}
				return []byte(""), nil
			},
		}

		results := checkSystemRequirements(mockExec, config.New())

		for _, want := range []string{
			"Nginx installed (1.24.0)",
			"Supervisor installed (4.2.5)",
		} {
			found := false
			for _, r := range results {
				if r.Message == want && r.Status == "success" {
					found = true
				}
			}
			if !found {
				t.Errorf("missing check %q in %v", want, results)
			}
		}
	})

	t.Run("MissingDaemons", func(t *testing.T) {
		mockExec := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				return "", errors.New("not found")
			},
		}

		cfg := config.New()
		results := checkSystemRequirements(mockExec, cfg)

		var nginxStatus, varnishStatus string
		for _, r := range results {
			if strings.HasPrefix(r.Message, "Nginx") {
				nginxStatus = r.Status
			}
			if strings.HasPrefix(r.Message, "Varnish") {
				varnishStatus = r.Status
			}
		}
		if nginxStatus != "error" {
			t.Errorf("missing nginx should be an error, got %s", nginxStatus)
		}
		// No cached apps, varnish is optional
		if varnishStatus != "warning" {
			t.Errorf("missing varnish should be a warning without cached apps, got %s", varnishStatus)
		}
	})

	t.Run("VarnishRequiredForCachedApps", func(t *testing.T) {
		mockExec := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				return "", errors.New("not found")
			},
		}

		cfg := config.New()
		cfg.Apps["wordbank"] = &config.App{
			Name: "wordbank", Domain: "wordbank.example.org", Port: 8901, Cached: true,
		}
		results := checkSystemRequirements(mockExec, cfg)

		for _, r := range results {
			if strings.HasPrefix(r.Message, "Varnish") && r.Status != "error" {
				t.Errorf("missing varnish should be an error with cached apps, got %s", r.Status)
			}
		}
	})
}

func TestCheckApps(t *testing.T) {
	cfg := config.New()
	cfg.Apps["wordbank"] = &config.App{
		Name: "wordbank", Domain: "wordbank.example.org", Port: 8901, Installed: true,
	}

	t.Run("Healthy", func(t *testing.T) {
		d := &daemons{
			nginx:      daemon.NewMockNginx("/tmp/sites", "/tmp/locations"),
			supervisor: daemon.NewMockSupervisor("/tmp/conf.d"),
			varnish:    daemon.NewMockVarnish(daemon.VarnishPaths{}),
		}
		d.nginx.(*daemon.MockNginx).IsInstalledFunc = func(name string) (bool, error) { return true, nil }
		d.supervisor.(*daemon.MockSupervisor).IsInstalledFunc = func(name string) (bool, error) { return true, nil }

		statuses := checkApps(d, cfg)
		if len(statuses) != 1 {
			t.Fatalf("expected 1 app status, got %d", len(statuses))
		}
		last := statuses[0].Checks[len(statuses[0].Checks)-1]
		if last.Status != "success" {
			t.Errorf("expected success, got %s (%s)", last.Status, last.Message)
		}
	})

	t.Run("InstallMismatch", func(t *testing.T) {
		d := &daemons{
			nginx:      daemon.NewMockNginx("/tmp/sites", "/tmp/locations"),
			supervisor: daemon.NewMockSupervisor("/tmp/conf.d"),
			varnish:    daemon.NewMockVarnish(daemon.VarnishPaths{}),
		}
		// Registry says installed, disk says no

		statuses := checkApps(d, cfg)
		found := false
		for _, c := range statuses[0].Checks {
			if strings.Contains(c.Message, "install mismatch") && c.Status == "warning" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected install mismatch warning, got %v", statuses[0].Checks)
		}
	})

	t.Run("SortedByName", func(t *testing.T) {
		multi := config.New()
		for _, name := range []string{"zebra", "atlas", "mango"} {
			multi.Apps[name] = &config.App{
				Name: name, Domain: name + ".example.org", Port: 8900,
			}
		}
		d := &daemons{
			nginx:      daemon.NewMockNginx("/tmp/sites", "/tmp/locations"),
			supervisor: daemon.NewMockSupervisor("/tmp/conf.d"),
			varnish:    daemon.NewMockVarnish(daemon.VarnishPaths{}),
		}

		statuses := checkApps(d, multi)
		want := []string{"atlas", "mango", "zebra"}
		if len(statuses) != len(want) {
			t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
		}
		for i, name := range want {
			if statuses[i].Name != name {
				t.Errorf("expected %v order, got %s at %d", want, statuses[i].Name, i)
			}
		}
	})

	t.Run("MissingStanza", func(t *testing.T) {
		d := &daemons{
			nginx:      daemon.NewMockNginx("/tmp/sites", "/tmp/locations"),
			supervisor: daemon.NewMockSupervisor("/tmp/conf.d"),
			varnish:    daemon.NewMockVarnish(daemon.VarnishPaths{}),
		}
		d.nginx.(*daemon.MockNginx).IsInstalledFunc = func(name string) (bool, error) { return true, nil }

		statuses := checkApps(d, cfg)
		found := false
		for _, c := range statuses[0].Checks {
			if strings.Contains(c.Message, "supervisor stanza missing") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected missing stanza warning, got %v", statuses[0].Checks)
		}
	})
}
