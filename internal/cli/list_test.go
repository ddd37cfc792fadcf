package cli

import (
	"testing"

	"github.com/rkbl/appcfg/internal/config"
)

func TestRunList(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		NewTestHelper(t)

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("WithApps", func(t *testing.T) {
		helper := NewTestHelper(t)
		helper.AddApp(&config.App{
			Name: "wordbank", Domain: "wordbank.example.org", Port: 8901, Installed: true,
		})
		helper.AddApp(&config.App{
			Name: "atlas", Domain: "atlas.example.org", Port: 8902,
		})

		nginx := helper.Nginx()
		nginx.IsInstalledFunc = func(name string) (bool, error) {
			return name == "wordbank", nil
		}

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Install state comes from disk, one probe per registered app
		if len(nginx.IsInstalledCalls) != 2 {
			t.Errorf("expected 2 IsInstalled probes, got %d", len(nginx.IsInstalledCalls))
		}
		if nginx.ListCalls != 1 {
			t.Errorf("expected 1 List call, got %d", nginx.ListCalls)
		}
	})

	t.Run("UnregisteredConfigs", func(t *testing.T) {
		helper := NewTestHelper(t)

		// A config on disk without a registry entry still shows up
		nginx := helper.Nginx()
		nginx.ListFunc = func() ([]string, error) {
			return []string{"stray"}, nil
		}

		if err := runList(listCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
