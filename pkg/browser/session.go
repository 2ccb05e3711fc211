package browser

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// clearFieldScript empties an input's value before typing into it.
const clearFieldScript = `(sel) => {
	const element = document.querySelector(sel);
	if (element) element.value = '';
}`

// Navigate loads url in the target page, waiting for network activity to
// settle or the default bound to elapse, and reports the final URL and
// page title.
func (s *Session) Navigate(url string) (NavigateResult, error) {
	_, err := s.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(DefaultTimeout),
	})
	if err != nil {
		return NavigateResult{}, s.classifyNavigation(err, url)
	}

	s.CurrentURL = s.Page.URL()

	title, err := s.Page.Title()
	if err != nil {
		title = ""
	}

	return NavigateResult{URL: s.CurrentURL, Title: title}, nil
}

// Type waits for the selector and types text into it with the configured
// inter-keystroke delay, optionally clearing the field first.
func (s *Session) Type(opts TypeOptions) error {
	if err := s.awaitSelector(opts.Selector, DefaultTimeout); err != nil {
		return err
	}

	if opts.Clear {
		if _, err := s.Page.Evaluate(clearFieldScript, opts.Selector); err != nil {
			return s.classifyExecution(err, "failed to clear %s", opts.Selector)
		}
	}

	err := s.Page.Type(opts.Selector, opts.Text, playwright.PageTypeOptions{
		Delay: playwright.Float(opts.Delay),
	})
	if err != nil {
		return s.classifyExecution(err, "failed to type into %s", opts.Selector)
	}
	return nil
}

// Click waits for the selector and clicks it.
func (s *Session) Click(selector string) error {
	if err := s.awaitSelector(selector, DefaultTimeout); err != nil {
		return err
	}

	if err := s.Page.Click(selector); err != nil {
		return s.classifyExecution(err, "failed to click %s", selector)
	}

	// A click may trigger navigation.
	s.CurrentURL = s.Page.URL()
	return nil
}

// FillForm fills each field in the given order, then optionally waits
// SubmitDelay and clicks the submit selector. There is no rollback: a
// field that fails to appear aborts the fill and the error names it, but
// fields already filled keep their values.
func (s *Session) FillForm(opts FillFormOptions) (FillFormResult, error) {
	for _, field := range opts.Fields {
		if err := s.awaitSelector(field.Selector, DefaultTimeout); err != nil {
			return FillFormResult{}, WrapError(KindOf(err), err, "form field %s did not appear", field.Selector)
		}
		if err := s.Page.Type(field.Selector, field.Value, playwright.PageTypeOptions{}); err != nil {
			return FillFormResult{}, s.classifyExecution(err, "failed to fill form field %s", field.Selector)
		}
	}

	result := FillFormResult{FieldsCount: len(opts.Fields)}

	if opts.SubmitSelector != "" {
		time.Sleep(time.Duration(opts.SubmitDelay) * time.Millisecond)

		if err := s.awaitSelector(opts.SubmitSelector, DefaultTimeout); err != nil {
			return result, WrapError(KindOf(err), err, "submit control %s did not appear", opts.SubmitSelector)
		}
		if err := s.Page.Click(opts.SubmitSelector); err != nil {
			return result, s.classifyExecution(err, "failed to submit via %s", opts.SubmitSelector)
		}
		result.Submitted = true
		s.CurrentURL = s.Page.URL()
	}

	return result, nil
}

// GetText returns the trimmed text content of the exact element matching
// selector. A selector that matches nothing is a Not-Found failure.
func (s *Session) GetText(selector string) (string, error) {
	element, err := s.Page.QuerySelector(selector)
	if err != nil {
		return "", s.classifyExecution(err, "selector query failed for %s", selector)
	}
	if element == nil {
		return "", Errorf(KindNotFound, "element not found: %s", selector)
	}

	text, err := element.TextContent()
	if err != nil {
		return "", s.classifyExecution(err, "text extraction failed for %s", selector)
	}
	return strings.TrimSpace(text), nil
}

// GetTexts returns the trimmed text content of every element matching
// selector, possibly an empty list.
func (s *Session) GetTexts(selector string) ([]string, error) {
	elements, err := s.Page.QuerySelectorAll(selector)
	if err != nil {
		return nil, s.classifyExecution(err, "selector query failed for %s", selector)
	}

	texts := make([]string, 0, len(elements))
	for _, element := range elements {
		text, textErr := element.TextContent()
		if textErr != nil {
			return nil, s.classifyExecution(textErr, "text extraction failed for %s", selector)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

// Screenshot captures the page, or a single element when a selector is
// given, and returns it as a base64 PNG data URI.
func (s *Session) Screenshot(opts ScreenshotOptions) (string, error) {
	var (
		buf []byte
		err error
	)

	if opts.Selector != "" {
		element, qerr := s.Page.QuerySelector(opts.Selector)
		if qerr != nil {
			return "", s.classifyExecution(qerr, "selector query failed for %s", opts.Selector)
		}
		if element == nil {
			return "", Errorf(KindNotFound, "element not found: %s", opts.Selector)
		}
		buf, err = element.Screenshot()
	} else {
		buf, err = s.Page.Screenshot(playwright.PageScreenshotOptions{
			FullPage: playwright.Bool(opts.FullPage),
		})
	}
	if err != nil {
		return "", s.classifyExecution(err, "screenshot failed")
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf), nil
}

// WaitFor waits for the selector to be attached to the DOM, or visible
// when requested, within the caller's timeout.
func (s *Session) WaitFor(opts WaitForOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	state := playwright.WaitForSelectorStateAttached
	if opts.Visible {
		state = playwright.WaitForSelectorStateVisible
	}

	_, err := s.Page.WaitForSelector(opts.Selector, playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: playwright.Float(timeout),
	})
	if err != nil {
		if isTargetGone(err) {
			return WrapError(KindSessionFatal, err, "automation target lost while waiting for %s", opts.Selector)
		}
		return WrapError(KindTimeout, err, "element %s did not appear within %.0fms", opts.Selector, timeout)
	}
	return nil
}

// DownloadMedia fetches up to the first ten URLs sequentially by
// navigating the target to each one and reading the response body. Every
// URL gets its own success or failure record; one failing URL never
// aborts the batch.
func (s *Session) DownloadMedia(urls []string, outputFormat string) (DownloadResult, error) {
	if len(urls) > maxDownloadURLs {
		urls = urls[:maxDownloadURLs]
	}

	result := DownloadResult{Downloads: make([]Download, 0, len(urls))}

	for _, url := range urls {
		response, err := s.Page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
		})
		if err != nil {
			if isTargetGone(err) {
				return result, WrapError(KindSessionFatal, err, "automation target lost downloading %s", url)
			}
			result.Downloads = append(result.Downloads, Download{URL: url, Error: err.Error()})
			continue
		}
		if response == nil || !response.Ok() {
			result.Downloads = append(result.Downloads, Download{URL: url, Error: "response not ok"})
			continue
		}

		body, err := response.Body()
		if err != nil {
			result.Downloads = append(result.Downloads, Download{URL: url, Error: err.Error()})
			continue
		}

		contentType := "application/octet-stream"
		if headers, herr := response.AllHeaders(); herr == nil {
			if ct, ok := headers["content-type"]; ok && ct != "" {
				contentType = ct
			}
		}

		download := Download{
			URL:         url,
			ContentType: contentType,
			Size:        len(body),
			Success:     true,
		}
		if outputFormat == "base64" {
			download.Data = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body))
		}

		result.Downloads = append(result.Downloads, download)
		result.SuccessCount++
	}

	s.CurrentURL = s.Page.URL()
	return result, nil
}

// OpenLoginPage navigates to the login entry point of a supported
// platform and reports where the page landed.
func (s *Session) OpenLoginPage(platform string) (NavigateResult, error) {
	url, ok := LoginPageURL(platform)
	if !ok {
		return NavigateResult{}, Errorf(KindMalformedInput, "unsupported platform: %s", platform)
	}
	return s.Navigate(url)
}

// TakeSnapshot captures the page's current HTML and URL for the
// extraction pipeline. When waitFor is set, the snapshot is delayed until
// that selector appears.
func (s *Session) TakeSnapshot(waitFor string) (Snapshot, error) {
	if waitFor != "" {
		if err := s.WaitFor(WaitForOptions{Selector: waitFor}); err != nil {
			return Snapshot{}, err
		}
	}

	html, err := s.Page.Content()
	if err != nil {
		return Snapshot{}, s.classifyExecution(err, "failed to read page content")
	}

	return Snapshot{URL: s.Page.URL(), HTML: html}, nil
}

// awaitSelector waits for a selector to be attached within timeout.
// Expiry is a Not-Found failure: the selector matched nothing in time.
func (s *Session) awaitSelector(selector string, timeout float64) error {
	_, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(timeout),
	})
	if err == nil {
		return nil
	}
	if isTargetGone(err) {
		return WrapError(KindSessionFatal, err, "automation target lost while waiting for %s", selector)
	}
	if isTimeout(err) {
		return WrapError(KindNotFound, err, "selector not found: %s", selector)
	}
	return WrapError(KindInternal, err, "wait failed for %s", selector)
}

// classifyNavigation turns a driver navigation error into a typed failure.
func (s *Session) classifyNavigation(err error, url string) error {
	switch {
	case isTargetGone(err):
		return WrapError(KindSessionFatal, err, "automation target lost navigating to %s", url)
	case isTimeout(err):
		return WrapError(KindTimeout, err, "navigation to %s timed out", url)
	default:
		return WrapError(KindNavigation, err, "navigation to %s failed", url)
	}
}

// classifyExecution turns a generic driver error into a typed failure.
func (s *Session) classifyExecution(err error, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	switch {
	case isTargetGone(err):
		return WrapError(KindSessionFatal, err, "%s", message)
	case isTimeout(err):
		return WrapError(KindTimeout, err, "%s", message)
	default:
		return WrapError(KindInternal, err, "%s", message)
	}
}
