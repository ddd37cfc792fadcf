package cli

import (
	"fmt"
	"strings"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var forceRemove bool

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove an app from the registry",
	Long: `Remove an app from the registry.

Installed apps must be uninstalled first so their daemon configs do not
leak; pass --force to remove the registry entry anyway.

Examples:
  appcfg remove wordbank
  appcfg rm wordbank --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Force removal without confirmation")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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

	if app.Installed && !forceRemove {
		return fmt.Errorf("app %s is installed, run 'appcfg uninstall %s' first (or use --force)", name, name)
	}

	if dryRun {
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{Action: "unregister_app", Target: name},
			},
		})
	}

	// Confirm removal if not forced
	if !forceRemove {
		output.Print("Are you sure you want to remove app '%s'? [y/N]: ", name)
		answer, _ := deps.StdinReader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			output.Info("Removal cancelled")
			return nil
		}
	}

	if err := cfg.RemoveApp(name); err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"app":     name,
			"removed": true,
		},
		"App %s removed", name,
	)
}
