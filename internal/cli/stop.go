package cli

import (
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop an app",
	Long: `Stop an app under supervisor.

The program stanza is rewritten with autostart disabled so the app stays
down across supervisor restarts, until "appcfg start" brings it back.

Examples:
  appcfg stop wordbank`,
	Args: cobra.ExactArgs(1),
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	return setRunState(args[0], false)
}
