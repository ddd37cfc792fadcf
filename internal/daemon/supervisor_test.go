package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rkbl/appcfg/internal/executor"
)

func TestSupervisorDaemonConfigs(t *testing.T) {
	tempDir := t.TempDir()
	paths := SupervisorPaths{ConfDir: filepath.Join(tempDir, "conf.d")}

	sup := NewSupervisorWithPaths(paths)

	t.Run("Install", func(t *testing.T) {
		content := "[program:myapp]\ncommand = /srv/myapp/venv/bin/gunicorn\n"
		if err := sup.Install("myapp", content); err != nil {
			t.Fatalf("Install failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(paths.ConfDir, "myapp.conf"))
		if err != nil {
			t.Fatalf("stanza not written: %v", err)
		}
		if string(data) != content {
			t.Errorf("expected %q, got %q", content, string(data))
		}
	})

	t.Run("IsInstalled", func(t *testing.T) {
		installed, err := sup.IsInstalled("myapp")
		if err != nil {
			t.Fatalf("IsInstalled failed: %v", err)
		}
		if !installed {
			t.Error("expected myapp to be installed")
		}

		installed, err = sup.IsInstalled("missing")
		if err != nil {
			t.Fatalf("IsInstalled failed: %v", err)
		}
		if installed {
			t.Error("expected missing to not be installed")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := sup.Remove("myapp"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(paths.ConfDir, "myapp.conf")); !os.IsNotExist(err) {
			t.Error("stanza still exists after remove")
		}
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		if err := sup.Remove("missing"); err == nil {
			t.Error("expected error removing missing app")
		}
	})
}

func TestSupervisorDaemonControl(t *testing.T) {
	t.Run("Update", func(t *testing.T) {
		mockExec := &executor.MockExecutor{}
		sup := NewSupervisorWithExecutor(SupervisorPaths{}, mockExec)

		if err := sup.Update("myapp"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		expected := []executor.CommandCall{
			{Name: "supervisorctl", Args: []string{"reread"}},
			{Name: "supervisorctl", Args: []string{"update", "myapp"}},
		}
		if !reflect.DeepEqual(mockExec.Calls, expected) {
			t.Errorf("expected %v, got %v", expected, mockExec.Calls)
		}
	})

	t.Run("Restart", func(t *testing.T) {
		mockExec := &executor.MockExecutor{}
		sup := NewSupervisorWithExecutor(SupervisorPaths{}, mockExec)

		if err := sup.Restart("myapp"); err != nil {
			t.Fatalf("Restart failed: %v", err)
		}
		if len(mockExec.Calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(mockExec.Calls))
		}
		if !reflect.DeepEqual(mockExec.Calls[0].Args, []string{"restart", "myapp"}) {
			t.Errorf("unexpected args: %v", mockExec.Calls[0].Args)
		}
	})

	t.Run("Stop", func(t *testing.T) {
		mockExec := &executor.MockExecutor{}
		sup := NewSupervisorWithExecutor(SupervisorPaths{}, mockExec)

		if err := sup.Stop("myapp"); err != nil {
			t.Fatalf("Stop failed: %v", err)
		}
		if !reflect.DeepEqual(mockExec.Calls[0].Args, []string{"stop", "myapp"}) {
			t.Errorf("unexpected args: %v", mockExec.Calls[0].Args)
		}
	})

	t.Run("Status", func(t *testing.T) {
		mockExec := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("myapp   RUNNING   pid 1234, uptime 1:00:00\n"), nil
			},
		}
		sup := NewSupervisorWithExecutor(SupervisorPaths{}, mockExec)

		status, err := sup.Status("myapp")
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if status != "myapp   RUNNING   pid 1234, uptime 1:00:00" {
			t.Errorf("unexpected status: %q", status)
		}
	})

	t.Run("StatusError", func(t *testing.T) {
		mockExec := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("myapp: ERROR (no such process)"), errors.New("exit status 1")
			},
		}
		sup := NewSupervisorWithExecutor(SupervisorPaths{}, mockExec)

		if _, err := sup.Status("myapp"); err == nil {
			t.Error("expected error for unknown program")
		}
	})
}
