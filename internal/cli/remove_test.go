package cli

import (
	"strings"
	"testing"

	"github.com/rkbl/appcfg/internal/config"
)

func TestRunRemove(t *testing.T) {
	registered := func() *config.App {
		return &config.App{Name: "wordbank", Domain: "wordbank.example.org", Port: 8901}
	}

	tests := []struct {
		name        string
		app         *config.App
		force       bool
		stdin       string
		wantErr     bool
		errContains string
		wantKept    bool
	}{
		{
			name:  "remove with confirmation",
			app:   registered(),
			stdin: "y\n",
		},
		{
			name:     "removal cancelled",
			app:      registered(),
			stdin:    "n\n",
			wantKept: true,
		},
		{
			name:  "force skips confirmation",
			app:   registered(),
			force: true,
			stdin: "", // would fail if read
		},
		{
			name: "installed app needs uninstall first",
			app: &config.App{
				Name: "wordbank", Domain: "wordbank.example.org", Port: 8901, Installed: true,
			},
			stdin:       "y\n",
			wantErr:     true,
			errContains: "uninstall",
			wantKept:    true,
		},
		{
			name:        "unknown app",
			wantErr:     true,
			errContains: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forceRemove = tt.force
			dryRun = false

			helper := NewTestHelper(t)
			if tt.app != nil {
				helper.AddApp(tt.app)
			}
			helper.SetStdinInput(tt.stdin)

			err := runRemove(removeCmd, []string{"wordbank"})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, exists := helper.GetConfig().Apps["wordbank"]
			if tt.app == nil {
				return
			}
			if exists != tt.wantKept {
				t.Errorf("expected kept=%v, got %v", tt.wantKept, exists)
			}
		})
	}
}
