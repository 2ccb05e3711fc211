package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrhq/pagedriver/pkg/browser"
)

// respondError renders a typed action failure as the standard error
// envelope. The label identifies the operation ("Navigation failed"); the
// message carries the classified detail. Status is derived from the
// failure kind, nowhere else.
func respondError(c *gin.Context, label string, err error) {
	c.JSON(statusFor(err), gin.H{
		"error":   label,
		"message": err.Error(),
	})
}

// badRequest rejects malformed input before it reaches the queue.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func statusFor(err error) int {
	switch browser.KindOf(err) {
	case browser.KindMalformedInput:
		return http.StatusBadRequest
	case browser.KindNotFound:
		return http.StatusNotFound
	default:
		// Timeouts are execution failures, not client errors: the
		// caller may legitimately retry.
		return http.StatusInternalServerError
	}
}
