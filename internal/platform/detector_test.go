package platform

import (
	"runtime"
	"testing"
)

func TestDetectPaths(t *testing.T) {
	paths, err := DetectPaths()

	// Test platform-specific behavior
	switch runtime.GOOS {
	case "darwin", "linux":
		if err != nil {
			t.Logf("Detection failed (may be expected if daemons not installed): %v", err)
			return
		}

		// Verify we got valid paths
		if paths.Nginx.SitesDir == "" {
			t.Error("nginx sites path is empty")
		}
		if paths.Nginx.LocationsDir == "" {
			t.Error("nginx locations path is empty")
		}
		if paths.Supervisor.ConfDir == "" {
			t.Error("supervisor conf path is empty")
		}
		if paths.Varnish.SitesVCL == "" {
			t.Error("varnish sites vcl path is empty")
		}

	default:
		if err == nil {
			t.Errorf("expected error on unsupported platform %s, but got nil", runtime.GOOS)
		}
	}
}

func TestPathExists(t *testing.T) {
	// Root path should always exist
	if !pathExists("/") {
		t.Error("root path should exist")
	}

	// Non-existent path should return false
	if pathExists("/this/path/should/definitely/not/exist/anywhere") {
		t.Error("non-existent path should return false")
	}
}

func TestPlatform(t *testing.T) {
	p := Platform()
	if p == "" {
		t.Error("Platform() should return non-empty string")
	}

	// Should contain GOOS and GOARCH
	expected := runtime.GOOS + "/" + runtime.GOARCH
	if p != expected {
		t.Errorf("expected %s, got %s", expected, p)
	}
}

func TestDetectDarwinPaths(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("skipping macOS-specific test on non-darwin platform")
	}

	paths, err := detectDarwinPaths()
	if err != nil {
		t.Logf("Darwin detection failed (may be expected): %v", err)
		return
	}

	// Check that paths use either Apple Silicon or Intel Homebrew prefix
	if paths.Nginx.SitesDir != "/opt/homebrew/etc/nginx/servers" &&
		paths.Nginx.SitesDir != "/usr/local/etc/nginx/servers" {
		t.Errorf("unexpected nginx path: %s", paths.Nginx.SitesDir)
	}
}

func TestDetectLinuxPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("skipping Linux-specific test on non-linux platform")
	}

	paths, err := detectLinuxPaths()
	if err != nil {
		t.Logf("Linux detection failed (may be expected if nginx not installed): %v", err)
		return
	}

	if paths.Nginx.SitesDir == "" {
		t.Error("nginx sites path should not be empty on Linux")
	}
	if paths.Varnish.DefaultFile == "" {
		t.Error("varnish defaults path should not be empty on Linux")
	}
}
