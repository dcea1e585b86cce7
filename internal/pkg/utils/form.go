package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/upload"
)

const (
	DataField       = "data"
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrMissingData = errors.New("missing data part")

// BindData decodes the JSON "data" part of a multipart form into out.
// The part may arrive as a file (data.json) or a plain field. A JSON body is accepted too.
func BindData(c *gin.Context, out any) error {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return json.NewDecoder(c.Request.Body).Decode(out)
	}

	if fh, err := c.FormFile(DataField); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open data part: %w", err)
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, 1<<20))
		if err != nil {
			return fmt.Errorf("read data part: %w", err)
		}
		return json.Unmarshal(raw, out)
	}

	raw, ok := c.GetPostForm(DataField)
	if !ok || strings.TrimSpace(raw) == "" {
		return ErrMissingData
	}
	return json.Unmarshal([]byte(raw), out)
}

// OptionalImage reads and checks an image part. A missing part yields nil.
func OptionalImage(c *gin.Context, field string, maxSize int64) (*upload.Image, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return upload.ReadImage(fh, maxSize)
}

// PageParams reads 1-based ?page and ?size and returns the 0-based page the backend expects.
func PageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page - 1, size
}
