package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var (
	logsAccess bool
	logsError  bool
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs <name>",
	Short: "View logs for an app",
	Long: `View the access and process logs for an app.

By default, shows both logs. Use --access or --error to show only one.

Examples:
  appcfg logs wordbank           # Show both logs
  appcfg logs wordbank --access  # Show only the nginx access log
  appcfg logs wordbank --error   # Show only the app process log
  appcfg logs wordbank -f        # Follow logs in real-time
  appcfg logs wordbank -n 50     # Show last 50 lines`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&logsAccess, "access", false, "Show access log only")
	logsCmd.Flags().BoolVar(&logsError, "error", false, "Show app process log only")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 20, "Number of lines to show")

	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
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

	// Determine which logs to show
	showAccess := true
	showError := true
	if logsAccess && !logsError {
		showError = false
	} else if logsError && !logsAccess {
		showAccess = false
	}

	// Collect log files to tail
	var logFiles []string
	if showAccess {
		if _, err := os.Stat(app.AccessLog()); err == nil {
			logFiles = append(logFiles, app.AccessLog())
		} else {
			output.Warn("Access log not found: %s", app.AccessLog())
		}
	}
	if showError {
		if _, err := os.Stat(app.ErrorLog()); err == nil {
			logFiles = append(logFiles, app.ErrorLog())
		} else {
			output.Warn("Process log not found: %s", app.ErrorLog())
		}
	}

	if len(logFiles) == 0 {
		return fmt.Errorf("no log files found for %s", name)
	}

	// Build tail command
	tailArgs := []string{}
	if logsFollow {
		tailArgs = append(tailArgs, "-f")
	}
	tailArgs = append(tailArgs, "-n", fmt.Sprintf("%d", logsLines))
	tailArgs = append(tailArgs, logFiles...)

	tailPath, err := exec.LookPath("tail")
	if err != nil {
		return fmt.Errorf("tail command not found")
	}

	if len(logFiles) == 1 {
		output.Info("Showing logs from: %s", logFiles[0])
	} else {
		output.Info("Showing logs from:")
		for _, f := range logFiles {
			output.Print("  - %s", f)
		}
	}
	output.Print("")

	tailCmd := exec.Command(tailPath, tailArgs...)
	tailCmd.Stdin = os.Stdin
	tailCmd.Stdout = os.Stdout
	tailCmd.Stderr = os.Stderr

	if err := tailCmd.Run(); err != nil {
		// Check for interrupt signals (130 = SIGINT/Ctrl+C, 143 = SIGTERM)
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode := exitErr.ExitCode()
			if exitCode == 130 || exitCode == 143 {
				return nil
			}
		}
		return fmt.Errorf("failed to read logs: %w", err)
	}

	return nil
}
