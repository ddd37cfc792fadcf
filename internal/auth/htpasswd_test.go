package auth

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/rkbl/appcfg/internal/errors"
	"github.com/rkbl/appcfg/internal/executor"
)

func TestFilePath(t *testing.T) {
	got := FilePath("/etc/nginx/locations.d", "wordbank")
	want := "/etc/nginx/locations.d/wordbank.htpasswd"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestIsInstalled(t *testing.T) {
	defer ResetExecutor()

	SetExecutor(&executor.MockExecutor{})
	if !IsInstalled() {
		t.Error("expected htpasswd to be reported installed")
	}

	SetExecutor(&executor.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("executable file not found in $PATH")
		},
	})
	if IsInstalled() {
		t.Error("expected htpasswd to be reported missing")
	}
}

func TestEnsureUsers(t *testing.T) {
	defer ResetExecutor()

	mockExec := &executor.MockExecutor{}
	SetExecutor(mockExec)

	users := []User{
		{Name: "alice", Password: "secret1"},
		{Name: "bob", Password: "secret2"},
	}
	if err := EnsureUsers("/etc/nginx/locations.d/wordbank.htpasswd", users); err != nil {
		t.Fatalf("EnsureUsers failed: %v", err)
	}

	// First call is the LookPath-backed install check, so only Execute
	// calls are recorded here.
	expected := []executor.CommandCall{
		{Name: "htpasswd", Args: []string{"-bdc", "/etc/nginx/locations.d/wordbank.htpasswd", "alice", "secret1"}},
		{Name: "htpasswd", Args: []string{"-bd", "/etc/nginx/locations.d/wordbank.htpasswd", "bob", "secret2"}},
	}
	if !reflect.DeepEqual(mockExec.Calls, expected) {
		t.Errorf("expected %v, got %v", expected, mockExec.Calls)
	}
}

func TestEnsureUsersNotInstalled(t *testing.T) {
	defer ResetExecutor()

	SetExecutor(&executor.MockExecutor{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("executable file not found in $PATH")
		},
	})

	err := EnsureUsers("/tmp/test.htpasswd", []User{{Name: "alice", Password: "x"}})
	if !apperrors.Is(err, apperrors.ErrHtpasswdNotInstalled) {
		t.Errorf("expected ErrHtpasswdNotInstalled, got %v", err)
	}
}

func TestEnsureUsersNoUsers(t *testing.T) {
	defer ResetExecutor()
	SetExecutor(&executor.MockExecutor{})

	if err := EnsureUsers("/tmp/test.htpasswd", nil); err == nil {
		t.Error("expected error for empty user list")
	}
}

func TestEnsureUsersCommandFailure(t *testing.T) {
	defer ResetExecutor()

	SetExecutor(&executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			return []byte("htpasswd: cannot create file"), errors.New("exit status 1")
		},
	})

	err := EnsureUsers("/tmp/test.htpasswd", []User{{Name: "alice", Password: "x"}})
	if err == nil {
		t.Fatal("expected error from failed htpasswd run")
	}
	if !strings.Contains(err.Error(), "cannot create file") {
		t.Errorf("expected command output in error, got %v", err)
	}
}

func TestSnippet(t *testing.T) {
	snippet := Snippet("wordbank", "/etc/nginx/locations.d/wordbank.htpasswd")

	for _, want := range []string{
		`auth_basic "wordbank";`,
		"auth_basic_user_file /etc/nginx/locations.d/wordbank.htpasswd;",
		"proxy_set_header Authorization $http_authorization;",
		"proxy_pass_header Authorization;",
	} {
		if !strings.Contains(snippet, want) {
			t.Errorf("snippet missing %q:\n%s", want, snippet)
		}
	}
	if strings.HasSuffix(snippet, "\n") {
		t.Error("snippet should not end with a newline, templates indent it")
	}
}
