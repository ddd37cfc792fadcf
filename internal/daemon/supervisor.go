package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkbl/appcfg/internal/executor"
)

// SupervisorDaemon implements the Supervisor interface via supervisorctl
type SupervisorDaemon struct {
	paths SupervisorPaths
	exec  executor.CommandExecutor
}

// NewSupervisor creates a new supervisor daemon with default Debian paths
func NewSupervisor() *SupervisorDaemon {
	return NewSupervisorWithPaths(SupervisorPaths{
		ConfDir: "/etc/supervisor/conf.d",
	})
}

// NewSupervisorWithPaths creates a new supervisor daemon with custom paths
func NewSupervisorWithPaths(paths SupervisorPaths) *SupervisorDaemon {
	return &SupervisorDaemon{
		paths: paths,
		exec:  executor.NewSystemExecutor(),
	}
}

// NewSupervisorWithExecutor creates a new supervisor daemon with custom paths and executor (for testing)
func NewSupervisorWithExecutor(paths SupervisorPaths, exec executor.CommandExecutor) *SupervisorDaemon {
	return &SupervisorDaemon{
		paths: paths,
		exec:  exec,
	}
}

// Paths returns the config paths
func (s *SupervisorDaemon) Paths() SupervisorPaths {
	return s.paths
}

func (s *SupervisorDaemon) confPath(name string) string {
	return filepath.Join(s.paths.ConfDir, name+".conf")
}

// Install writes an app's program stanza
func (s *SupervisorDaemon) Install(name, content string) error {
	if err := os.MkdirAll(s.paths.ConfDir, 0755); err != nil {
		return fmt.Errorf("failed to create supervisor conf directory: %w", err)
	}
	if err := os.WriteFile(s.confPath(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write program stanza: %w", err)
	}
	return nil
}

// Remove deletes an app's program stanza
func (s *SupervisorDaemon) Remove(name string) error {
	if err := os.Remove(s.confPath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("app %s has no program stanza", name)
		}
		return fmt.Errorf("failed to remove program stanza: %w", err)
	}
	return nil
}

// IsInstalled checks whether an app has a program stanza
func (s *SupervisorDaemon) IsInstalled(name string) (bool, error) {
	_, err := os.Stat(s.confPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check stanza status: %w", err)
	}
	return true, nil
}

// Update makes the supervisor pick up stanza changes
func (s *SupervisorDaemon) Update(name string) error {
	if output, err := s.exec.Execute("supervisorctl", "reread"); err != nil {
		return fmt.Errorf("supervisorctl reread failed: %s", string(output))
	}
	if output, err := s.exec.Execute("supervisorctl", "update", name); err != nil {
		return fmt.Errorf("supervisorctl update failed: %s", string(output))
	}
	return nil
}

// Restart restarts the program
func (s *SupervisorDaemon) Restart(name string) error {
	if output, err := s.exec.Execute("supervisorctl", "restart", name); err != nil {
		return fmt.Errorf("supervisorctl restart failed: %s", string(output))
	}
	return nil
}

// Stop stops the program
func (s *SupervisorDaemon) Stop(name string) error {
	if output, err := s.exec.Execute("supervisorctl", "stop", name); err != nil {
		return fmt.Errorf("supervisorctl stop failed: %s", string(output))
	}
	return nil
}

// Status returns the supervisorctl status line for the program
func (s *SupervisorDaemon) Status(name string) (string, error) {
	output, err := s.exec.Execute("supervisorctl", "status", name)
	if err != nil {
		return "", fmt.Errorf("supervisorctl status failed: %s", string(output))
	}
	return strings.TrimSpace(string(output)), nil
}
