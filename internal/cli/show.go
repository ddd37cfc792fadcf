package cli

import (
	"time"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show details of an app",
	Long: `Show detailed information about a registered app.

Examples:
  appcfg show wordbank
  appcfg show wordbank --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the detailed app information for output
type showDetail struct {
	Name       string    `json:"name"`
	Domain     string    `json:"domain"`
	Port       int       `json:"port"`
	Workers    int       `json:"workers"`
	Env        string    `json:"env,omitempty"`
	Restricted bool      `json:"restricted"`
	Cached     bool      `json:"cached"`
	Installed  bool      `json:"installed"`
	Status     string    `json:"status,omitempty"`
	SrcDir     string    `json:"src_dir"`
	LogDir     string    `json:"log_dir"`
	CreatedAt  time.Time `json:"created_at"`
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

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

	installed, err := d.nginx.IsInstalled(name)
	if err != nil {
		output.Warn("Could not determine install status: %v", err)
	}

	detail := showDetail{
		Name:       app.Name,
		Domain:     app.Domain,
		Port:       app.Port,
		Workers:    app.Workers,
		Env:        app.Environment,
		Restricted: app.Restricted,
		Cached:     app.Cached,
		Installed:  installed,
		SrcDir:     app.SrcDir(),
		LogDir:     app.LogDir(),
		CreatedAt:  app.CreatedAt,
	}

	// Only ask supervisor for running state when there is a stanza
	if hasStanza, _ := d.supervisor.IsInstalled(name); hasStanza {
		if status, err := d.supervisor.Status(name); err == nil {
			detail.Status = status
		}
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	output.Print("")
	output.Print("Name:        %s", detail.Name)
	output.Print("Domain:      %s", detail.Domain)
	output.Print("Port:        %d", detail.Port)
	output.Print("Workers:     %d", detail.Workers)

	if detail.Env != "" {
		output.Print("Environment: %s", detail.Env)
	}

	if detail.Restricted {
		output.Print("Restricted:  yes")
	}
	if detail.Cached {
		output.Print("Cached:      yes")
	}

	if detail.Installed {
		output.Print("Installed:   yes")
	} else {
		output.Print("Installed:   no")
	}

	if detail.Status != "" {
		output.Print("Status:      %s", detail.Status)
	}

	output.Print("Source:      %s", detail.SrcDir)
	output.Print("Logs:        %s", detail.LogDir)
	output.Print("Created:     %s", detail.CreatedAt.Format("2006-01-02 15:04:05"))
	output.Print("")

	return nil
}
