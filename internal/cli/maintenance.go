package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/rkbl/appcfg/internal/template"
	"github.com/spf13/cobra"
)

var (
	maintenanceHours int
	maintenanceOff   bool
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance <name>",
	Short: "Put up or take down an app's maintenance page",
	Long: `Write a maintenance page announcing when the app is expected back.

nginx serves the page whenever the app itself is unreachable, so putting
an app into maintenance is writing the page and stopping the app:

  appcfg maintenance wordbank --hours 4
  appcfg stop wordbank

Take it down again with:

  appcfg maintenance wordbank --off
  appcfg start wordbank`,
	Args: cobra.ExactArgs(1),
	RunE: runMaintenance,
}

func init() {
	maintenanceCmd.Flags().IntVar(&maintenanceHours, "hours", 2, "Hours until the app is expected back")
	maintenanceCmd.Flags().BoolVar(&maintenanceOff, "off", false, "Remove the maintenance page")

	rootCmd.AddCommand(maintenanceCmd)
}

func runMaintenance(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := validateName(name); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := cfg.GetApp(name)
	if err != nil {
		return err
	}

	pagePath := filepath.Join(app.WWW(), "503.html")

	if maintenanceOff {
		if dryRun {
			return outputDryRun(&DryRunResult{
				App:        name,
				Operations: []DryRunOperation{{Action: "remove_file", Target: pagePath}},
			})
		}
		if err := requireRoot(); err != nil {
			return err
		}
		if err := os.Remove(pagePath); err != nil {
			if os.IsNotExist(err) {
				output.Info("No maintenance page installed for %s", name)
				return nil
			}
			return fmt.Errorf("failed to remove maintenance page: %w", err)
		}
		return outputResult(
			map[string]interface{}{"success": true, "app": name, "maintenance": false},
			"Maintenance page for %s removed", name,
		)
	}

	content, err := template.Render(template.Maintenance,
		template.NewMaintenanceData(app, time.Duration(maintenanceHours)*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to render maintenance page: %w", err)
	}

	if dryRun {
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{
					Action:  "create_file",
					Target:  pagePath,
					Details: fmt.Sprintf("Maintenance page, back in %dh", maintenanceHours),
				},
			},
			ConfigPreview: content,
		})
	}

	if err := requireRoot(); err != nil {
		return err
	}

	if err := os.MkdirAll(app.WWW(), 0755); err != nil {
		return fmt.Errorf("failed to create www directory: %w", err)
	}
	if err := os.WriteFile(pagePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write maintenance page: %w", err)
	}

	output.Info("Stop the app to activate the page: appcfg stop %s", name)
	return outputResult(
		map[string]interface{}{"success": true, "app": name, "maintenance": true},
		"Maintenance page for %s installed", name,
	)
}
