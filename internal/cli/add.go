package cli

import (
	"fmt"
	"time"

	"github.com/rkbl/appcfg/internal/config"
	"github.com/spf13/cobra"
)

var (
	addDomain     string
	addPort       int
	addWorkers    int
	addRestricted bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new app",
	Long: `Register a new app in the registry.

Registration only records the app; use "appcfg install" to generate and
install the daemon configs. The domain defaults to <name>.<base_domain>.

Examples:
  appcfg add wordbank --port 8901
  appcfg add wordbank --port 8901 --domain wordbank.example.org
  appcfg add wordbank --port 8901 --workers 3 --restricted`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDomain, "domain", "d", "", "Domain the app is served under (default <name>.<base_domain>)")
	addCmd.Flags().IntVarP(&addPort, "port", "p", 0, "Port the app server binds to (required)")
	addCmd.Flags().IntVarP(&addWorkers, "workers", "w", config.DefaultWorkers, "Number of app server workers")
	addCmd.Flags().BoolVar(&addRestricted, "restricted", false, "Protect the whole app with HTTP basic auth")
	_ = addCmd.MarkFlagRequired("port")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := validateName(name); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	domain := addDomain
	if domain == "" {
		domain = cfg.DefaultDomain(name)
	}

	app := &config.App{
		Name:       name,
		Domain:     domain,
		Port:       addPort,
		Workers:    addWorkers,
		Restricted: addRestricted,
		CreatedAt:  time.Now(),
	}

	if dryRun {
		return outputDryRun(&DryRunResult{
			App: name,
			Operations: []DryRunOperation{
				{
					Action:  "register_app",
					Target:  name,
					Details: fmt.Sprintf("domain %s, port %d", domain, addPort),
				},
			},
		})
	}

	// AddApp validates the app and enforces unique names and ports
	if err := cfg.AddApp(app); err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"app":     name,
			"domain":  domain,
			"port":    addPort,
		},
		"App %s registered (%s, port %d)", name, domain, addPort,
	)
}
