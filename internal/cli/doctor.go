package cli

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rkbl/appcfg/internal/auth"
	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/executor"
	"github.com/rkbl/appcfg/internal/output"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the system and app configuration.

Checks:
  - Daemon installation (nginx, supervisor, varnish)
  - htpasswd availability for restricted apps
  - Registry validity
  - App install and run status

Examples:
  appcfg doctor
  appcfg doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// AppStatus represents the status of a single app
type AppStatus struct {
	Name      string        `json:"name"`
	Installed bool          `json:"installed"`
	Checks    []CheckResult `json:"checks"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	SystemRequirements []CheckResult `json:"system_requirements"`
	Configuration      []CheckResult `json:"configuration"`
	Apps               []AppStatus   `json:"apps"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	exec := executor.NewSystemExecutor()

	cfg, d, err := loadConfigAndDaemons()
	if err != nil {
		return err
	}

	report := &DoctorReport{}
	report.SystemRequirements = checkSystemRequirements(exec, cfg)
	report.Configuration = checkConfiguration(d, cfg)
	report.Apps = checkApps(d, cfg)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkSystemRequirements(exec executor.CommandExecutor, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	// Version extraction patterns
	versionPatterns := map[string]*regexp.Regexp{
		"nginx":       regexp.MustCompile(`nginx/(\d+\.\d+\.\d+)`),
		"supervisord": regexp.MustCompile(`(\d+\.\d+\.\d+)`),
		"varnishd":    regexp.MustCompile(`varnish-(\d+\.\d+\.\d+)`),
	}

	anyCached := false
	for _, app := range cfg.Apps {
		if app.Cached {
			anyCached = true
			break
		}
	}

	daemonChecks := []struct {
		name        string
		binary      string
		versionFlag string
		optional    bool
	}{
		{"Nginx", "nginx", "-v", false},
		{"Supervisor", "supervisord", "--version", false},
		{"Varnish", "varnishd", "-V", !anyCached},
	}

	for _, dc := range daemonChecks {
		if _, err := exec.LookPath(dc.binary); err == nil {
			versionOutput, err := exec.Execute(dc.binary, dc.versionFlag)
			version := "unknown"
			if err == nil {
				if pattern, ok := versionPatterns[dc.binary]; ok {
					if matches := pattern.FindStringSubmatch(string(versionOutput)); len(matches) >= 2 {
						version = matches[1]
					}
				}
			}
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("%s installed (%s)", dc.name, version),
			})
		} else {
			status := "error"
			suffix := ""
			if dc.optional {
				status = "warning"
				suffix = " (optional)"
			}
			results = append(results, CheckResult{
				Status:  status,
				Message: fmt.Sprintf("%s not installed%s", dc.name, suffix),
			})
		}
	}

	// htpasswd is only needed for restricted apps
	needsAuth := false
	for _, app := range cfg.Apps {
		if app.Restricted {
			needsAuth = true
			break
		}
	}
	if auth.IsInstalled() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "htpasswd installed",
		})
	} else {
		status := "warning"
		if needsAuth {
			status = "error"
		}
		results = append(results, CheckResult{
			Status:  status,
			Message: "htpasswd not installed",
		})
	}

	return results
}

func checkConfiguration(d *daemons, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	// Check registry file exists
	configPath, pathErr := config.ConfigPath()
	if pathErr == nil {
		if _, err := os.Stat(configPath); err == nil {
			// Use ~ notation for display
			displayPath := strings.Replace(configPath, os.Getenv("HOME"), "~", 1)
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("Registry exists (%s)", displayPath),
			})
		} else {
			results = append(results, CheckResult{
				Status:  "warning",
				Message: "Registry not found (no apps registered yet)",
			})
		}
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: "Could not determine registry path",
		})
	}

	// Registered apps must validate
	invalid := 0
	for _, app := range cfg.Apps {
		if err := app.Validate(); err != nil {
			invalid++
		}
	}
	if invalid == 0 {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Registry valid (%d apps)", len(cfg.Apps)),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("%d invalid app entries", invalid),
		})
	}

	// nginx config syntax
	if err := d.nginx.Test(); err == nil {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "Nginx config syntax OK",
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: "Nginx config syntax error",
		})
	}

	return results
}

func checkApps(d *daemons, cfg *config.Config) []AppStatus {
	statuses := []AppStatus{}

	names := make([]string, 0, len(cfg.Apps))
	for name := range cfg.Apps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		app := cfg.Apps[name]
		status := AppStatus{
			Name:   name,
			Checks: []CheckResult{},
		}

		if installed, err := d.nginx.IsInstalled(name); err == nil {
			status.Installed = installed
		}

		allOK := true

		// Registry and disk must agree on install state
		if status.Installed != app.Installed {
			status.Checks = append(status.Checks, CheckResult{
				Status:  "warning",
				Message: fmt.Sprintf("install mismatch (registry: %v, actual: %v)", app.Installed, status.Installed),
			})
			allOK = false
		}

		if status.Installed {
			// Installed apps need their program stanza
			if hasStanza, _ := d.supervisor.IsInstalled(name); !hasStanza {
				status.Checks = append(status.Checks, CheckResult{
					Status:  "warning",
					Message: "supervisor stanza missing",
				})
				allOK = false
			}

			// Cached apps need their VCL
			if app.Cached {
				if hasVCL, _ := d.varnish.IsInstalled(name); !hasVCL {
					status.Checks = append(status.Checks, CheckResult{
						Status:  "warning",
						Message: "varnish config missing",
					})
					allOK = false
				}
			}
		}

		if allOK {
			statusText := "not installed"
			if status.Installed {
				statusText = "installed"
			}
			status.Checks = append(status.Checks, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("%s, config valid", statusText),
			})
		}

		statuses = append(statuses, status)
	}

	return statuses
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system requirements...")
	for _, check := range report.SystemRequirements {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	if len(report.Apps) > 0 {
		output.Print("Checking apps...")
		for _, app := range report.Apps {
			if len(app.Checks) > 0 {
				mainCheck := app.Checks[len(app.Checks)-1]
				switch mainCheck.Status {
				case "success":
					output.Success("%s - %s", app.Name, mainCheck.Message)
				case "warning":
					output.Warn("%s - %s", app.Name, mainCheck.Message)
				case "error":
					output.Error("%s - %s", app.Name, mainCheck.Message)
				}
			}
		}
	} else {
		output.Print("No apps registered")
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
