package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is the single live automation target: one browser, one context,
// one page. All access is serialized through the Dispatcher; Session
// methods themselves are not safe for concurrent use.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated storage, cookies)
	Context playwright.BrowserContext

	// Page is the one shared page all actions run against
	Page playwright.Page

	// Viewport holds the fixed viewport dimensions
	Viewport Viewport

	// CreatedAt is the timestamp when the target was created
	CreatedAt time.Time

	// CurrentURL tracks the page URL after the last navigation
	CurrentURL string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures the automation target.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the fixed viewport size
	Viewport Viewport
}

// Default values for target creation and action execution.
const (
	// DefaultTimeout bounds selector waits and navigation, in milliseconds.
	DefaultTimeout = 30000.0

	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// maxDownloadURLs caps a single download-media batch.
	maxDownloadURLs = 10
)

// NavigateResult reports the outcome of a navigation.
type NavigateResult struct {
	URL   string
	Title string
}

// TypeOptions configures typing into an element.
type TypeOptions struct {
	Selector string
	Text     string

	// Delay is the inter-keystroke delay in milliseconds.
	Delay float64

	// Clear empties the target field before typing.
	Clear bool
}

// FormField is one selector/value pair in a form fill. Fields are applied
// in slice order, which preserves the caller-given order.
type FormField struct {
	Selector string
	Value    string
}

// FillFormOptions configures a multi-field form fill.
type FillFormOptions struct {
	Fields []FormField

	// SubmitSelector, when set, is clicked after all fields are filled.
	SubmitSelector string

	// SubmitDelay is the pause before the submit click, in milliseconds.
	SubmitDelay float64
}

// FillFormResult reports how much of the form was processed.
type FillFormResult struct {
	FieldsCount int
	Submitted   bool
}

// ScreenshotOptions configures a capture.
type ScreenshotOptions struct {
	// Selector limits the capture to a single element when set.
	Selector string

	// FullPage captures the whole scrollable page instead of the viewport.
	// Ignored when Selector is set.
	FullPage bool
}

// WaitForOptions configures an element wait.
type WaitForOptions struct {
	Selector string

	// Timeout in milliseconds; DefaultTimeout when zero.
	Timeout float64

	// Visible additionally requires the element to be visible, not just
	// attached to the DOM.
	Visible bool
}

// Download is the per-URL record of a media download batch.
type Download struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Size        int    `json:"size,omitempty"`
	Data        string `json:"data,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// DownloadResult aggregates a media download batch.
type DownloadResult struct {
	Downloads    []Download
	SuccessCount int
}

// Snapshot is the page state handed to the extraction pipeline.
type Snapshot struct {
	URL  string
	HTML string
}

// loginPages maps supported platforms to their login entry points.
var loginPages = map[string]string{
	"instagram": "https://www.instagram.com/accounts/login/",
	"tiktok":    "https://www.tiktok.com/login",
}

// LoginPageURL returns the login entry point for a platform, if supported.
func LoginPageURL(platform string) (string, bool) {
	url, ok := loginPages[platform]
	return url, ok
}
