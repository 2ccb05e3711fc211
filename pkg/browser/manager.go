package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/pagedriver/pkg/logging"
)

// chromiumArgs disables sandboxing and acceleration features that break
// headless chromium in containerized environments.
var chromiumArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-accelerated-2d-canvas",
	"--no-first-run",
	"--no-zygote",
	"--disable-gpu",
	"--disable-extensions",
}

// SessionManager owns the one automation target of the process: it creates
// the target lazily on first acquisition, hands the live target back on
// subsequent acquisitions, and tears it down on fatal failure or shutdown.
//
// SessionManager methods are safe for concurrent use, but the Session they
// return is not; the Dispatcher is the only component that may call into a
// Session.
type SessionManager struct {
	opts        SessionOptions
	log         *logging.Logger
	playwright  *playwright.Playwright
	session     *Session
	initialized bool

	// launch creates a new target. Overridable in tests to count
	// creations without a real browser.
	launch func() (*Session, error)

	mu sync.Mutex
}

// NewSessionManager creates a manager with the given target options.
func NewSessionManager(opts SessionOptions, log *logging.Logger) *SessionManager {
	if opts.Viewport.Width == 0 || opts.Viewport.Height == 0 {
		opts.Viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}

	m := &SessionManager{
		opts: opts,
		log:  log,
	}
	m.launch = m.launchChromium
	return m
}

// Initialize installs and starts the Playwright driver. Must be called
// once before any target can be created.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with our own logs.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// AcquireTarget returns the live automation target, creating it first if
// none exists. Creation failures are Session-Fatal; the manager stays
// empty so the next acquisition retries creation.
func (m *SessionManager) AcquireTarget() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	session, err := m.launch()
	if err != nil {
		m.log.Errorf("target creation failed: %v", err)
		return nil, WrapError(KindSessionFatal, err, "failed to create automation target")
	}

	m.session = session
	m.log.Infof("automation target created (viewport %dx%d, headless=%t)",
		m.opts.Viewport.Width, m.opts.Viewport.Height, m.opts.Headless)
	return session, nil
}

// launchChromium starts a browser, context, and page with the configured
// viewport. Grouped teardown on partial failure mirrors creation order.
func (m *SessionManager) launchChromium() (*Session, error) {
	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	browser, err := m.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.opts.Headless),
		Args:     chromiumArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.opts.Viewport.Width,
			Height: m.opts.Viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(DefaultTimeout)

	return &Session{
		Browser:    browser,
		Context:    context,
		Page:       page,
		Viewport:   m.opts.Viewport,
		CreatedAt:  time.Now(),
		CurrentURL: "about:blank",
	}, nil
}

// Teardown closes the target if one exists and clears the session state.
// Safe to call multiple times; the next acquisition recreates the target.
func (m *SessionManager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
}

func (m *SessionManager) teardownLocked() {
	if m.session == nil {
		return
	}

	s := m.session
	m.session = nil

	// Ignore close errors, the target may already be gone.
	if s.Page != nil {
		_ = s.Page.Close()
	}
	if s.Context != nil {
		_ = s.Context.Close()
	}
	if s.Browser != nil {
		_ = s.Browser.Close()
	}

	m.log.Infof("automation target torn down")
}

// HasTarget reports whether a live target currently exists.
func (m *SessionManager) HasTarget() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Shutdown tears down the target and stops the Playwright driver. The
// manager cannot be used afterwards.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.teardownLocked()

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return nil
}
