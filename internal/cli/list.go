package cli

import (
	"fmt"
	"sort"

	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all registered apps",
	Long: `List all registered apps.

Examples:
  appcfg list
  appcfg ls
  appcfg list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type appListItem struct {
	Name       string `json:"name"`
	Domain     string `json:"domain"`
	Port       int    `json:"port"`
	Env        string `json:"env,omitempty"`
	Restricted bool   `json:"restricted"`
	Cached     bool   `json:"cached"`
	Installed  bool   `json:"installed"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, d, err := loadConfigAndDaemons()
	if err != nil {
		return err
	}

	// Read nginx state to catch configs for apps missing from the registry
	nginxApps, err := d.nginx.List()
	if err != nil {
		output.Warn("Could not read nginx configs: %v", err)
	}

	items := make([]appListItem, 0, len(cfg.Apps))
	for name, app := range cfg.Apps {
		installed, _ := d.nginx.IsInstalled(name)
		items = append(items, appListItem{
			Name:       name,
			Domain:     app.Domain,
			Port:       app.Port,
			Env:        app.Environment,
			Restricted: app.Restricted,
			Cached:     app.Cached,
			Installed:  installed,
		})
	}

	// Configs present on disk but not registered
	for _, name := range nginxApps {
		if _, exists := cfg.Apps[name]; !exists {
			items = append(items, appListItem{
				Name:      name,
				Installed: true,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	if len(items) == 0 {
		if jsonOutput {
			return output.JSON([]appListItem{})
		}
		output.Info("No apps registered")
		return nil
	}

	if jsonOutput {
		return output.JSON(items)
	}

	headers := []string{"NAME", "DOMAIN", "PORT", "ENV", "CACHED", "INSTALLED"}
	rows := make([][]string, 0, len(items))

	for _, item := range items {
		port := ""
		if item.Port != 0 {
			port = fmt.Sprintf("%d", item.Port)
		}
		env := item.Env
		if env == "" {
			env = "-"
		}

		cached := "no"
		if item.Cached {
			cached = "yes"
		}

		installed := "no"
		if item.Installed {
			installed = "yes"
		}

		rows = append(rows, []string{
			item.Name,
			item.Domain,
			port,
			env,
			cached,
			installed,
		})
	}

	output.Table(headers, rows)
	return nil
}
