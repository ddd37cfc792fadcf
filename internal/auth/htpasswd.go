// Package auth manages HTTP basic auth credentials for restricted apps.
//
// Credentials are stored in per-app htpasswd files created with the
// htpasswd utility from apache2-utils. The package also renders the
// nginx directives that enable basic auth on a location, including the
// Authorization header passthrough that keeps auth working behind the
// proxy.
package auth

import (
	"fmt"
	"path/filepath"

	"github.com/rkbl/appcfg/internal/errors"
	"github.com/rkbl/appcfg/internal/executor"
)

// cmdExecutor is the command executor (can be replaced for testing)
var cmdExecutor executor.CommandExecutor = executor.NewSystemExecutor()

// SetExecutor allows tests to inject a mock executor
func SetExecutor(exec executor.CommandExecutor) {
	cmdExecutor = exec
}

// ResetExecutor resets the executor to the default system executor
func ResetExecutor() {
	cmdExecutor = executor.NewSystemExecutor()
}

// IsInstalled checks if htpasswd is installed
func IsInstalled() bool {
	_, err := cmdExecutor.LookPath("htpasswd")
	return err == nil
}

// User is one htpasswd credential pair.
type User struct {
	Name     string
	Password string
}

// FilePath returns the htpasswd file path for an app. The file lives
// next to the nginx location configs so the generated directives can
// reference it with an absolute path.
func FilePath(locationsDir, name string) string {
	return filepath.Join(locationsDir, name+".htpasswd")
}

// EnsureUsers (re)creates an app's htpasswd file with the given users.
// The first user creates the file, subsequent users are appended.
func EnsureUsers(path string, users []User) error {
	if !IsInstalled() {
		return errors.ErrHtpasswdNotInstalled
	}
	if len(users) == 0 {
		return fmt.Errorf("no users given for %s", path)
	}

	for i, user := range users {
		flags := "-bd"
		if i == 0 {
			flags = "-bdc"
		}
		output, err := cmdExecutor.Execute("htpasswd", flags, path, user.Name, user.Password)
		if err != nil {
			return fmt.Errorf("htpasswd failed for user %s: %s", user.Name, string(output))
		}
	}
	return nil
}

// Snippet returns the nginx directives that protect a location with
// basic auth. The Authorization passthrough keeps credentials visible
// to the proxied app.
func Snippet(realm, htpasswdPath string) string {
	return fmt.Sprintf(`proxy_set_header Authorization $http_authorization;
proxy_pass_header Authorization;
auth_basic %q;
auth_basic_user_file %s;`, realm, htpasswdPath)
}
