package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/entrhq/pagedriver/pkg/browser"
	"github.com/entrhq/pagedriver/pkg/extract"
)

// Action handlers. Each validates its input, submits a single closure to
// the dispatcher, and blocks its own goroutine until the queued action
// resolves. Gin runs every request on its own goroutine, so suspension
// happens only at the queue-wait point.

func (s *Server) handleNavigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.URL == "" {
		badRequest(c, "URL is required")
		return
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.Navigate(req.URL)
	})
	if err != nil {
		respondError(c, "Navigation failed", err)
		return
	}

	result := payload.(browser.NavigateResult)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("Navigated to %s", req.URL),
		"currentUrl": result.URL,
		"title":      result.Title,
	})
}

func (s *Server) handleType(c *gin.Context) {
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.Selector == "" {
		badRequest(c, "Selector is required")
		return
	}
	if req.Text == nil {
		badRequest(c, "Text is required")
		return
	}

	_, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return nil, session.Type(browser.TypeOptions{
			Selector: req.Selector,
			Text:     *req.Text,
			Delay:    req.Delay,
			Clear:    req.Clear,
		})
	})
	if err != nil {
		respondError(c, "Type failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("Typed into %s", req.Selector),
		"selector":   req.Selector,
		"textLength": len(*req.Text),
		"delay":      req.Delay,
		"cleared":    req.Clear,
	})
}

func (s *Server) handleClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.Selector == "" {
		badRequest(c, "Selector is required")
		return
	}

	_, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return nil, session.Click(req.Selector)
	})
	if err != nil {
		respondError(c, "Click failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Clicked %s", req.Selector),
		"selector": req.Selector,
	})
}

func (s *Server) handleFillForm(c *gin.Context) {
	var req fillFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Fields object is required")
		return
	}
	if len(req.Fields) == 0 {
		badRequest(c, "Fields object is required")
		return
	}

	submitDelay := 1000.0
	if req.SubmitDelay != nil {
		submitDelay = *req.SubmitDelay
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.FillForm(browser.FillFormOptions{
			Fields:         req.Fields,
			SubmitSelector: req.SubmitSelector,
			SubmitDelay:    submitDelay,
		})
	})
	if err != nil {
		respondError(c, "Form filling failed", err)
		return
	}

	result := payload.(browser.FillFormResult)
	message := fmt.Sprintf("Filled %d fields", result.FieldsCount)
	reportedDelay := 0.0
	if result.Submitted {
		message += " and submitted form"
		reportedDelay = submitDelay
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     message,
		"fieldsCount": result.FieldsCount,
		"submitted":   result.Submitted,
		"submitDelay": reportedDelay,
	})
}

func (s *Server) handleGetText(c *gin.Context) {
	var req getTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.Selector == "" {
		badRequest(c, "Selector is required")
		return
	}

	if req.Multiple {
		payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
			return session.GetTexts(req.Selector)
		})
		if err != nil {
			respondError(c, "Text extraction failed", err)
			return
		}

		texts := payload.([]string)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"texts":   texts,
			"count":   len(texts),
			"message": fmt.Sprintf("Extracted text from %d elements", len(texts)),
		})
		return
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.GetText(req.Selector)
	})
	if err != nil {
		respondError(c, "Text extraction failed", err)
		return
	}

	text := payload.(string)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"text":    text,
		"message": fmt.Sprintf("Extracted text: %q", text),
	})
}

func (s *Server) handleScreenshot(c *gin.Context) {
	var req screenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.Screenshot(browser.ScreenshotOptions{
			Selector: req.Selector,
			FullPage: req.FullPage,
		})
	})
	if err != nil {
		respondError(c, "Screenshot failed", err)
		return
	}

	message := "Screenshot taken"
	if req.Selector != "" {
		message = fmt.Sprintf("Screenshot taken of %s", req.Selector)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"screenshot": payload.(string),
		"message":    message,
		"fullPage":   req.FullPage,
	})
}

func (s *Server) handleWaitForElement(c *gin.Context) {
	var req waitForElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.Selector == "" {
		badRequest(c, "Selector is required")
		return
	}

	timeout := browser.DefaultTimeout
	if req.Timeout != nil {
		timeout = *req.Timeout
	}

	_, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return nil, session.WaitFor(browser.WaitForOptions{
			Selector: req.Selector,
			Timeout:  timeout,
			Visible:  req.Visible,
		})
	})
	if err != nil {
		respondError(c, "Wait failed", err)
		return
	}

	message := fmt.Sprintf("Element %s appeared", req.Selector)
	if req.Visible {
		message += " and is visible"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          message,
		"selector":         req.Selector,
		"timeout":          timeout,
		"waitedForVisible": req.Visible,
	})
}

func (s *Server) handleExtractData(c *gin.Context) {
	var req extractDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}

	// Only the snapshot needs the target; parsing happens off-queue.
	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.TakeSnapshot(req.WaitFor)
	})
	if err != nil {
		respondError(c, "Data extraction failed", err)
		return
	}

	snapshot := payload.(browser.Snapshot)
	data, err := extract.FromHTML(snapshot.HTML, extract.Config{
		Selectors: req.Selectors,
		DataTypes: req.DataTypes,
		Limit:     req.Limit,
	})
	if err != nil {
		respondError(c, "Data extraction failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"url":           snapshot.URL,
		"extractedData": data,
		"message":       fmt.Sprintf("Data extraction completed with %d data types", len(data)),
	})
}

func (s *Server) handleDownloadMedia(c *gin.Context) {
	var req downloadMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "URLs array is required")
		return
	}
	if req.URLs == nil {
		badRequest(c, "URLs array is required")
		return
	}

	outputFormat := req.OutputFormat
	if outputFormat == "" {
		outputFormat = "base64"
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.DownloadMedia(req.URLs, outputFormat)
	})
	if err != nil {
		respondError(c, "Media download failed", err)
		return
	}

	result := payload.(browser.DownloadResult)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"downloads":    result.Downloads,
		"successCount": result.SuccessCount,
		"message":      fmt.Sprintf("Downloaded %d/%d files", result.SuccessCount, len(req.URLs)),
	})
}

func (s *Server) handleAuthenticatePlatform(c *gin.Context) {
	var req authenticatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body")
		return
	}
	if req.Platform == "" {
		badRequest(c, "Platform is required")
		return
	}

	platform := strings.ToLower(req.Platform)
	if _, ok := browser.LoginPageURL(platform); !ok {
		badRequest(c, "Unsupported platform")
		return
	}

	payload, err := s.dispatcher.Submit(func(session *browser.Session) (any, error) {
		return session.OpenLoginPage(platform)
	})
	if err != nil {
		respondError(c, "Platform authentication failed", err)
		return
	}

	result := payload.(browser.NavigateResult)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"platform": req.Platform,
		"authResult": gin.H{
			"platform":        platform,
			"loginPageLoaded": true,
			"nextSteps":       "Use the type and click routes to enter credentials",
		},
		"currentUrl": result.URL,
		"message":    fmt.Sprintf("Authentication page loaded for %s", req.Platform),
	})
}
