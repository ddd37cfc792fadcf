package cli

import (
	"github.com/rkbl/appcfg/internal/config"
	"github.com/rkbl/appcfg/internal/daemon"
	"github.com/rkbl/appcfg/internal/input"
	"github.com/rkbl/appcfg/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Paths *platform.Paths
	Err   error
}

func (m *MockPlatformDetector) DetectPaths() (*platform.Paths, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Paths != nil {
		return m.Paths, nil
	}
	// Return default mock paths
	return &platform.Paths{
		Nginx: daemon.NginxPaths{
			SitesDir:     "/etc/nginx/sites-enabled",
			LocationsDir: "/etc/nginx/locations.d",
		},
		Supervisor: daemon.SupervisorPaths{
			ConfDir: "/etc/supervisor/conf.d",
		},
		Varnish: daemon.VarnishPaths{
			DefaultFile: "/etc/default/varnish",
			MainVCL:     "/etc/varnish/main.vcl",
			SitesVCL:    "/etc/varnish/sites.vcl",
			SitesDir:    "/etc/varnish/sites",
		},
	}, nil
}

// MockDaemonFactory is a test double for DaemonFactory. When the daemon
// fields are unset it hands out shared mocks so tests can inspect calls.
type MockDaemonFactory struct {
	MockNginx      *daemon.MockNginx
	MockSupervisor *daemon.MockSupervisor
	MockVarnish    *daemon.MockVarnish
}

func (m *MockDaemonFactory) Nginx(paths daemon.NginxPaths) daemon.Nginx {
	if m.MockNginx == nil {
		m.MockNginx = daemon.NewMockNginx(paths.SitesDir, paths.LocationsDir)
	}
	return m.MockNginx
}

func (m *MockDaemonFactory) Supervisor(paths daemon.SupervisorPaths) daemon.Supervisor {
	if m.MockSupervisor == nil {
		m.MockSupervisor = daemon.NewMockSupervisor(paths.ConfDir)
	}
	return m.MockSupervisor
}

func (m *MockDaemonFactory) Varnish(paths daemon.VarnishPaths) daemon.Varnish {
	if m.MockVarnish == nil {
		m.MockVarnish = daemon.NewMockVarnish(paths)
	}
	return m.MockVarnish
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errRootRequired
	}
	return nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.New()},
			PlatformDetector: &MockPlatformDetector{},
			DaemonFactory:    &MockDaemonFactory{},
			RootChecker:      &MockRootChecker{IsRoot: true},
			StdinReader:      input.NewStringReader("y\n"),
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithDaemonFactory sets a custom daemon factory
func (b *MockDependenciesBuilder) WithDaemonFactory(factory DaemonFactory) *MockDependenciesBuilder {
	b.deps.DaemonFactory = factory
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(inputs ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(inputs...)
	return b
}

// WithPlatformPaths sets custom platform paths
func (b *MockDependenciesBuilder) WithPlatformPaths(paths *platform.Paths) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Paths: paths}
	return b
}

// WithPlatformError sets an error for platform detection
func (b *MockDependenciesBuilder) WithPlatformError(err error) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Err: err}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps    *Dependencies
	Factory    *MockDaemonFactory
	MockConfig *MockConfigLoader
}

// NewTestHelper creates a new test helper with mock dependencies and
// restores the originals on cleanup
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}) *TestHelper {
	t.Helper()

	factory := &MockDaemonFactory{}
	mockConfig := &MockConfigLoader{Cfg: config.New()}

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		Factory:    factory,
		MockConfig: mockConfig,
	}

	deps = NewMockDeps().
		WithDaemonFactory(factory).
		WithConfigLoader(mockConfig).
		Build()

	t.Cleanup(func() {
		deps = helper.OldDeps
	})

	return helper
}

// SetRootAccess sets whether root access is available
func (h *TestHelper) SetRootAccess(isRoot bool) {
	deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
}

// SetStdinInput sets the stdin input
func (h *TestHelper) SetStdinInput(inputs ...string) {
	deps.StdinReader = input.NewStringReader(inputs...)
}

// AddApp adds an app to the mock registry
func (h *TestHelper) AddApp(app *config.App) {
	h.MockConfig.Cfg.Apps[app.Name] = app
}

// GetConfig returns the current mock registry
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}

// Nginx returns the shared nginx mock, creating it on first use
func (h *TestHelper) Nginx() *daemon.MockNginx {
	if h.Factory.MockNginx == nil {
		h.Factory.Nginx(daemon.NginxPaths{
			SitesDir:     "/etc/nginx/sites-enabled",
			LocationsDir: "/etc/nginx/locations.d",
		})
	}
	return h.Factory.MockNginx
}

// Supervisor returns the shared supervisor mock, creating it on first use
func (h *TestHelper) Supervisor() *daemon.MockSupervisor {
	if h.Factory.MockSupervisor == nil {
		h.Factory.Supervisor(daemon.SupervisorPaths{ConfDir: "/etc/supervisor/conf.d"})
	}
	return h.Factory.MockSupervisor
}

// Varnish returns the shared varnish mock, creating it on first use
func (h *TestHelper) Varnish() *daemon.MockVarnish {
	if h.Factory.MockVarnish == nil {
		h.Factory.Varnish(daemon.VarnishPaths{
			DefaultFile: "/etc/default/varnish",
			MainVCL:     "/etc/varnish/main.vcl",
			SitesVCL:    "/etc/varnish/sites.vcl",
			SitesDir:    "/etc/varnish/sites",
		})
	}
	return h.Factory.MockVarnish
}
