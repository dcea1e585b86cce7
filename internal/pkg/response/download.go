package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/backend"
)

// File streams a backend download, keeping its content type and disposition.
func File(c *gin.Context, d *backend.Download, filename, contentType string) {
	if d.ContentType != "" {
		contentType = d.ContentType
	}
	disposition := d.ContentDisposition
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", filename)
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, d.Body)
}
