package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rkbl/appcfg/internal/errors"
)

func TestConfig(t *testing.T) {
	// Create temp directory for test config
	tempDir := t.TempDir()

	// Override config path for testing
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	// Create the .config/appcfg directory
	cfgDir := filepath.Join(tempDir, ".config", "appcfg")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	t.Run("New", func(t *testing.T) {
		cfg := New()
		if cfg.BaseDomain != "example.org" {
			t.Errorf("expected example.org base domain, got %s", cfg.BaseDomain)
		}
		if cfg.CachePort != DefaultCachePort {
			t.Errorf("expected cache port %d, got %d", DefaultCachePort, cfg.CachePort)
		}
		if cfg.Apps == nil {
			t.Error("Apps should be initialized")
		}
	})

	t.Run("LoadNonexistent", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		// Should return default config when file doesn't exist
		if cfg.BaseDomain != "example.org" {
			t.Errorf("expected example.org base domain, got %s", cfg.BaseDomain)
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		cfg := New()
		cfg.Apps["wordbank"] = &App{
			Name:        "wordbank",
			Domain:      "wordbank.example.org",
			Port:        8888,
			Workers:     5,
			Environment: EnvProduction,
			Installed:   true,
			CreatedAt:   time.Now(),
		}

		if err := cfg.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		// Verify file exists
		loadedPath := filepath.Join(cfgDir, "config.yaml")
		if _, err := os.Stat(loadedPath); os.IsNotExist(err) {
			t.Error("config file was not created")
		}

		// Load and verify
		loaded, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		app, exists := loaded.Apps["wordbank"]
		if !exists {
			t.Fatal("app not found")
		}
		if app.Domain != "wordbank.example.org" {
			t.Errorf("expected wordbank.example.org, got %s", app.Domain)
		}
		if app.Port != 8888 {
			t.Errorf("expected port 8888, got %d", app.Port)
		}
		if !app.Installed {
			t.Error("expected Installed to be true")
		}
	})

	t.Run("AddApp", func(t *testing.T) {
		cfg := New()
		app := &App{Name: "atlas", Domain: "atlas.example.org", Port: 8887}

		if err := cfg.AddApp(app); err != nil {
			t.Fatalf("AddApp failed: %v", err)
		}

		// Adding again should fail
		err := cfg.AddApp(app)
		if err == nil {
			t.Error("expected error when adding duplicate app")
		}
		if !errors.Is(err, errors.ErrAppExists) {
			t.Errorf("expected ErrAppExists, got %v", err)
		}
	})

	t.Run("AddAppPortConflict", func(t *testing.T) {
		cfg := New()
		if err := cfg.AddApp(&App{Name: "atlas", Domain: "atlas.example.org", Port: 8887}); err != nil {
			t.Fatalf("AddApp failed: %v", err)
		}

		err := cfg.AddApp(&App{Name: "wordbank", Domain: "wordbank.example.org", Port: 8887})
		if err == nil {
			t.Error("expected error for port conflict")
		}
	})

	t.Run("GetApp", func(t *testing.T) {
		cfg := New()
		cfg.Apps["atlas"] = &App{Name: "atlas"}

		app, err := cfg.GetApp("atlas")
		if err != nil {
			t.Fatalf("GetApp failed: %v", err)
		}
		if app.Name != "atlas" {
			t.Errorf("expected atlas, got %s", app.Name)
		}

		_, err = cfg.GetApp("missing")
		if err == nil {
			t.Error("expected error for missing app")
		}
		if !errors.Is(err, errors.ErrAppNotFound) {
			t.Errorf("expected ErrAppNotFound, got %v", err)
		}
	})

	t.Run("RemoveApp", func(t *testing.T) {
		cfg := New()
		cfg.Apps["atlas"] = &App{Name: "atlas"}

		if err := cfg.RemoveApp("atlas"); err != nil {
			t.Fatalf("RemoveApp failed: %v", err)
		}
		if _, exists := cfg.Apps["atlas"]; exists {
			t.Error("app should have been removed")
		}

		if err := cfg.RemoveApp("atlas"); err == nil {
			t.Error("expected error removing missing app")
		}
	})

	t.Run("ListApps", func(t *testing.T) {
		cfg := New()
		cfg.Apps["a"] = &App{Name: "a"}
		cfg.Apps["b"] = &App{Name: "b"}

		apps := cfg.ListApps()
		if len(apps) != 2 {
			t.Errorf("expected 2 apps, got %d", len(apps))
		}
	})

	t.Run("DefaultDomain", func(t *testing.T) {
		cfg := New()
		cfg.BaseDomain = "lang.net"
		if got := cfg.DefaultDomain("atlas"); got != "atlas.lang.net" {
			t.Errorf("expected atlas.lang.net, got %s", got)
		}
	})
}

func TestLoadCorruptConfig(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	cfgDir := filepath.Join(tempDir, ".config", "appcfg")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("{invalid yaml["), 0644); err != nil {
		t.Fatalf("failed to write corrupt config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error loading corrupt config")
	}
}
