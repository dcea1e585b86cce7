package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/backend"
	"rentalhub/internal/pkg/upload"
)

// ValidationFailed reports per-field form errors.
func ValidationFailed(c *gin.Context, details map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", details)
}

// Failure maps shared error kinds (backend failures, upload checks) to the envelope.
// Module sentinels should be handled before calling it.
func Failure(c *gin.Context, err error) {
	_ = c.Error(err)

	if be, ok := backend.AsError(err); ok {
		status := be.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		Error(c, status, backendCode(status), be.Message)
		return
	}

	var tooLarge *upload.FileTooLargeError
	switch {
	case errors.As(err, &tooLarge):
		ErrorWithDetails(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds maximum allowed size", gin.H{"limit": tooLarge.Limit, "size": tooLarge.Size})
	case errors.Is(err, upload.ErrEmptyFile), errors.Is(err, upload.ErrInvalidMimeType), errors.Is(err, upload.ErrCorruptImage):
		Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func backendCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "BACKEND_ERROR"
	}
}
