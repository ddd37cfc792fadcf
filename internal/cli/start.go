package cli

import (
	"path/filepath"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start an app",
	Long: `Start an app under supervisor.

The program stanza is rewritten with autostart enabled so the app also
comes back up when supervisor itself restarts.

Examples:
  appcfg start wordbank`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	return setRunState(args[0], true)
}

// setRunState rewrites the app's program stanza for the wanted state and
// drives supervisor to apply it. Stopped apps get a paused stanza so they
// stay down across supervisor restarts.
func setRunState(name string, run bool) error {
	if err := validateName(name); err != nil {
		return err
	}

	cfg, d, err := loadConfigAndDaemons()
	if err != nil {
		return err
	}

	app, err := cfg.GetApp(name)
	if err != nil {
		return err
	}

	stanza, err := renderSupervisor(app, !run)
	if err != nil {
		return err
	}

	if dryRun {
		action := "start_program"
		if !run {
			action = "stop_program"
		}
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{
					Action:  "update_file",
					Target:  filepath.Join(d.supervisor.Paths().ConfDir, name+".conf"),
					Details: "Supervisor program stanza",
				},
				{Action: action, Target: name},
			},
			ConfigPreview: stanza,
		})
	}

	if err := requireRoot(); err != nil {
		return err
	}

	if err := d.supervisor.Install(name, stanza); err != nil {
		return err
	}
	if err := d.supervisor.Update(name); err != nil {
		return err
	}

	if run {
		output.Info("Starting app...")
		if err := d.supervisor.Restart(name); err != nil {
			return err
		}
		return outputResult(
			map[string]interface{}{"success": true, "app": name, "running": true},
			"App %s started", name,
		)
	}

	output.Info("Stopping app...")
	if err := d.supervisor.Stop(name); err != nil {
		return err
	}
	return outputResult(
		map[string]interface{}{"success": true, "app": name, "running": false},
		"App %s stopped", name,
	)
}
