package daemon

// MockNginx is a test double for the Nginx interface
type MockNginx struct {
	paths NginxPaths

	// Function mocks - set these to customize behavior
	InstallSiteFunc     func(name, content string) error
	InstallLocationFunc func(name, content string) error
	InstallDefaultFunc  func(content string) error
	RemoveFunc          func(name string) error
	IsInstalledFunc     func(name string) (bool, error)
	ListFunc            func() ([]string, error)
	TestFunc            func() error
	ReloadFunc          func() error

	// Call tracking - check these to verify interactions
	InstallSiteCalls     []InstallCall
	InstallLocationCalls []InstallCall
	InstallDefaultCalls  []string
	RemoveCalls          []string
	IsInstalledCalls     []string
	ListCalls            int
	TestCalls            int
	ReloadCalls          int
}

// InstallCall records arguments passed to an install method
type InstallCall struct {
	Name    string
	Content string
}

// NewMockNginx creates a new MockNginx with default no-op implementations
func NewMockNginx(sitesDir, locationsDir string) *MockNginx {
	return &MockNginx{
		paths: NginxPaths{
			SitesDir:     sitesDir,
			LocationsDir: locationsDir,
		},
		InstallSiteCalls:     make([]InstallCall, 0),
		InstallLocationCalls: make([]InstallCall, 0),
		InstallDefaultCalls:  make([]string, 0),
		RemoveCalls:          make([]string, 0),
		IsInstalledCalls:     make([]string, 0),
	}
}

// Paths returns the configured paths
func (m *MockNginx) Paths() NginxPaths {
	return m.paths
}

// InstallSite records the call and invokes the mock function if set
func (m *MockNginx) InstallSite(name, content string) error {
	m.InstallSiteCalls = append(m.InstallSiteCalls, InstallCall{Name: name, Content: content})
	if m.InstallSiteFunc != nil {
		return m.InstallSiteFunc(name, content)
	}
	return nil
}

// InstallLocation records the call and invokes the mock function if set
func (m *MockNginx) InstallLocation(name, content string) error {
	m.InstallLocationCalls = append(m.InstallLocationCalls, InstallCall{Name: name, Content: content})
	if m.InstallLocationFunc != nil {
		return m.InstallLocationFunc(name, content)
	}
	return nil
}

// InstallDefault records the call and invokes the mock function if set
func (m *MockNginx) InstallDefault(content string) error {
	m.InstallDefaultCalls = append(m.InstallDefaultCalls, content)
	if m.InstallDefaultFunc != nil {
		return m.InstallDefaultFunc(content)
	}
	return nil
}

// Remove records the call and invokes the mock function if set
func (m *MockNginx) Remove(name string) error {
	m.RemoveCalls = append(m.RemoveCalls, name)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

// IsInstalled records the call and invokes the mock function if set
func (m *MockNginx) IsInstalled(name string) (bool, error) {
	m.IsInstalledCalls = append(m.IsInstalledCalls, name)
	if m.IsInstalledFunc != nil {
		return m.IsInstalledFunc(name)
	}
	return false, nil
}

// List records the call and invokes the mock function if set
func (m *MockNginx) List() ([]string, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []string{}, nil
}

// Test records the call and invokes the mock function if set
func (m *MockNginx) Test() error {
	m.TestCalls++
	if m.TestFunc != nil {
		return m.TestFunc()
	}
	return nil
}

// Reload records the call and invokes the mock function if set
func (m *MockNginx) Reload() error {
	m.ReloadCalls++
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return nil
}

// MockSupervisor is a test double for the Supervisor interface
type MockSupervisor struct {
	paths SupervisorPaths

	// Function mocks - set these to customize behavior
	InstallFunc     func(name, content string) error
	RemoveFunc      func(name string) error
	IsInstalledFunc func(name string) (bool, error)
	UpdateFunc      func(name string) error
	RestartFunc     func(name string) error
	StopFunc        func(name string) error
	StatusFunc      func(name string) (string, error)

	// Call tracking - check these to verify interactions
	InstallCalls     []InstallCall
	RemoveCalls      []string
	IsInstalledCalls []string
	UpdateCalls      []string
	RestartCalls     []string
	StopCalls        []string
	StatusCalls      []string
}

// NewMockSupervisor creates a new MockSupervisor with default no-op implementations
func NewMockSupervisor(confDir string) *MockSupervisor {
	return &MockSupervisor{
		paths: SupervisorPaths{
			ConfDir: confDir,
		},
		InstallCalls:     make([]InstallCall, 0),
		RemoveCalls:      make([]string, 0),
		IsInstalledCalls: make([]string, 0),
		UpdateCalls:      make([]string, 0),
		RestartCalls:     make([]string, 0),
		StopCalls:        make([]string, 0),
		StatusCalls:      make([]string, 0),
	}
}

// Paths returns the configured paths
func (m *MockSupervisor) Paths() SupervisorPaths {
	return m.paths
}

// Install records the call and invokes the mock function if set
func (m *MockSupervisor) Install(name, content string) error {
	m.InstallCalls = append(m.InstallCalls, InstallCall{Name: name, Content: content})
	if m.InstallFunc != nil {
		return m.InstallFunc(name, content)
	}
	return nil
}

// Remove records the call and invokes the mock function if set
func (m *MockSupervisor) Remove(name string) error {
	m.RemoveCalls = append(m.RemoveCalls, name)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	return nil
}

// IsInstalled records the call and invokes the mock function if set
func (m *MockSupervisor) IsInstalled(name string) (bool, error) {
	m.IsInstalledCalls = append(m.IsInstalledCalls, name)
	if m.IsInstalledFunc != nil {
		return m.IsInstalledFunc(name)
	}
	return false, nil
}

// Update records the call and invokes the mock function if set
func (m *MockSupervisor) Update(name string) error {
	m.UpdateCalls = append(m.UpdateCalls, name)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(name)
	}
	return nil
}

// Restart records the call and invokes the mock function if set
func (m *MockSupervisor) Restart(name string) error {
	m.RestartCalls = append(m.RestartCalls, name)
	if m.RestartFunc != nil {
		return m.RestartFunc(name)
	}
	return nil
}

// Stop records the call and invokes the mock function if set
func (m *MockSupervisor) Stop(name string) error {
	m.StopCalls = append(m.StopCalls, name)
	if m.StopFunc != nil {
		return m.StopFunc(name)
	}
	return nil
}

// Status records the call and invokes the mock function if set
func (m *MockSupervisor) Status(name string) (string, error) {
	m.StatusCalls = append(m.StatusCalls, name)
	if m.StatusFunc != nil {
		return m.StatusFunc(name)
	}
	return name + " RUNNING", nil
}

// MockVarnish is a test double for the Varnish interface
type MockVarnish struct {
	paths VarnishPaths

	// Function mocks - set these to customize behavior
	InstallDefaultFunc func(content string) error
	InstallMainFunc    func(content string) error
	InstallSiteFunc    func(name, content string) error
	RemoveSiteFunc     func(name string) error
	IsInstalledFunc    func(name string) (bool, error)
	RestartFunc        func() error

	// Call tracking - check these to verify interactions
	InstallDefaultCalls []string
	InstallMainCalls    []string
	InstallSiteCalls    []InstallCall
	RemoveSiteCalls     []string
	IsInstalledCalls    []string
	RestartCalls        int
}

// NewMockVarnish creates a new MockVarnish with default no-op implementations
func NewMockVarnish(paths VarnishPaths) *MockVarnish {
	return &MockVarnish{
		paths:               paths,
		InstallDefaultCalls: make([]string, 0),
		InstallMainCalls:    make([]string, 0),
		InstallSiteCalls:    make([]InstallCall, 0),
		RemoveSiteCalls:     make([]string, 0),
		IsInstalledCalls:    make([]string, 0),
	}
}

// Paths returns the configured paths
func (m *MockVarnish) Paths() VarnishPaths {
	return m.paths
}

// InstallDefault records the call and invokes the mock function if set
func (m *MockVarnish) InstallDefault(content string) error {
	m.InstallDefaultCalls = append(m.InstallDefaultCalls, content)
	if m.InstallDefaultFunc != nil {
		return m.InstallDefaultFunc(content)
	}
	return nil
}

// InstallMain records the call and invokes the mock function if set
func (m *MockVarnish) InstallMain(content string) error {
	m.InstallMainCalls = append(m.InstallMainCalls, content)
	if m.InstallMainFunc != nil {
		return m.InstallMainFunc(content)
	}
	return nil
}

// InstallSite records the call and invokes the mock function if set
func (m *MockVarnish) InstallSite(name, content string) error {
	m.InstallSiteCalls = append(m.InstallSiteCalls, InstallCall{Name: name, Content: content})
	if m.InstallSiteFunc != nil {
		return m.InstallSiteFunc(name, content)
	}
	return nil
}

// RemoveSite records the call and invokes the mock function if set
func (m *MockVarnish) RemoveSite(name string) error {
	m.RemoveSiteCalls = append(m.RemoveSiteCalls, name)
	if m.RemoveSiteFunc != nil {
		return m.RemoveSiteFunc(name)
	}
	return nil
}

// IsInstalled records the call and invokes the mock function if set
func (m *MockVarnish) IsInstalled(name string) (bool, error) {
	m.IsInstalledCalls = append(m.IsInstalledCalls, name)
	if m.IsInstalledFunc != nil {
		return m.IsInstalledFunc(name)
	}
	return false, nil
}

// Restart records the call and invokes the mock function if set
func (m *MockVarnish) Restart() error {
	m.RestartCalls++
	if m.RestartFunc != nil {
		return m.RestartFunc()
	}
	return nil
}

// Compile-time interface checks
var (
	_ Nginx      = (*MockNginx)(nil)
	_ Supervisor = (*MockSupervisor)(nil)
	_ Varnish    = (*MockVarnish)(nil)
)
