package cli

import (
	"strings"
	"testing"

	"github.com/rkbl/appcfg/internal/config"
)

func cacheTestApp() *config.App {
	return &config.App{
		Name:        "wordbank",
		Domain:      "wordbank.example.org",
		Port:        8901,
		Environment: config.EnvProduction,
		Installed:   true,
	}
}

func TestRunCache(t *testing.T) {
	noReload = false
	dryRun = false

	helper := NewTestHelper(t)
	helper.AddApp(cacheTestApp())

	if err := runCache(cacheCmd, []string{"wordbank"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	varnish := helper.Varnish()
	nginx := helper.Nginx()

	// Varnish stack installed and restarted
	if len(varnish.InstallDefaultCalls) != 1 {
		t.Fatalf("expected 1 InstallDefault call, got %d", len(varnish.InstallDefaultCalls))
	}
	if !strings.Contains(varnish.InstallDefaultCalls[0], ":6081") {
		t.Errorf("daemon options missing cache port:\n%s", varnish.InstallDefaultCalls[0])
	}
	if len(varnish.InstallMainCalls) != 1 {
		t.Errorf("expected 1 InstallMain call, got %d", len(varnish.InstallMainCalls))
	}
	if len(varnish.InstallSiteCalls) != 1 {
		t.Fatalf("expected 1 InstallSite call, got %d", len(varnish.InstallSiteCalls))
	}
	vcl := varnish.InstallSiteCalls[0].Content
	if !strings.Contains(vcl, "127.0.0.1") || !strings.Contains(vcl, "8901") {
		t.Errorf("site vcl missing backend address:\n%s", vcl)
	}
	if varnish.RestartCalls != 1 {
		t.Errorf("expected 1 varnish restart, got %d", varnish.RestartCalls)
	}

	// nginx rewritten to proxy to the cache port
	if len(nginx.InstallSiteCalls) != 1 {
		t.Fatalf("expected 1 nginx InstallSite call, got %d", len(nginx.InstallSiteCalls))
	}
	content := nginx.InstallSiteCalls[0].Content
	if !strings.Contains(content, "proxy_pass http://127.0.0.1:6081") {
		t.Errorf("nginx config should proxy to the cache port:\n%s", content)
	}
	if nginx.TestCalls != 1 || nginx.ReloadCalls != 1 {
		t.Errorf("expected nginx test and reload, got %d and %d", nginx.TestCalls, nginx.ReloadCalls)
	}

	if !helper.GetConfig().Apps["wordbank"].Cached {
		t.Error("app should be marked cached")
	}
}

func TestRunCacheNotInstalled(t *testing.T) {
	dryRun = false
	helper := NewTestHelper(t)
	app := cacheTestApp()
	app.Installed = false
	helper.AddApp(app)

	err := runCache(cacheCmd, []string{"wordbank"})
	if err == nil || !strings.Contains(err.Error(), "not installed") {
		t.Errorf("expected not installed error, got %v", err)
	}
}

func TestRunCacheAlreadyCached(t *testing.T) {
	dryRun = false
	helper := NewTestHelper(t)
	app := cacheTestApp()
	app.Cached = true
	helper.AddApp(app)

	if err := runCache(cacheCmd, []string{"wordbank"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if helper.Varnish().RestartCalls != 0 {
		t.Error("already cached app must not touch varnish")
	}
}

func TestRunUncache(t *testing.T) {
	noReload = false
	dryRun = false

	helper := NewTestHelper(t)
	app := cacheTestApp()
	app.Cached = true
	helper.AddApp(app)

	if err := runUncache(uncacheCmd, []string{"wordbank"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	varnish := helper.Varnish()
	nginx := helper.Nginx()

	if len(varnish.RemoveSiteCalls) != 1 || varnish.RemoveSiteCalls[0] != "wordbank" {
		t.Errorf("expected RemoveSite call, got %v", varnish.RemoveSiteCalls)
	}
	if varnish.RestartCalls != 1 {
		t.Errorf("expected 1 varnish restart, got %d", varnish.RestartCalls)
	}

	// nginx points back at the app port
	if len(nginx.InstallSiteCalls) != 1 {
		t.Fatalf("expected 1 nginx InstallSite call, got %d", len(nginx.InstallSiteCalls))
	}
	if !strings.Contains(nginx.InstallSiteCalls[0].Content, "proxy_pass http://127.0.0.1:8901") {
		t.Errorf("nginx config should proxy to the app port:\n%s", nginx.InstallSiteCalls[0].Content)
	}

	if helper.GetConfig().Apps["wordbank"].Cached {
		t.Error("app should no longer be marked cached")
	}
}

func TestRunUncacheNotCached(t *testing.T) {
	dryRun = false
	helper := NewTestHelper(t)
	helper.AddApp(cacheTestApp())

	if err := runUncache(uncacheCmd, []string{"wordbank"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(helper.Varnish().RemoveSiteCalls) != 0 {
		t.Error("uncached app must not touch varnish")
	}
}
