package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxProofImage      = 5 * 1024 * 1024  // deposit and bill transfer screenshots
	MaxCompletionImage = 5 * 1024 * 1024  // landlord maintenance completion photo
	MaxIDCardImage     = 5 * 1024 * 1024  // resident ID card sides
	MaxRequestImage    = 10 * 1024 * 1024 // tenant maintenance request photo
	MaxContractImage   = 10 * 1024 * 1024 // signed contract scan
	MaxAvatarImage     = 5 * 1024 * 1024  // profile picture
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrCorruptImage    = errors.New("file is not a readable image")
)

// AllowedMimeTypes lists the image types the backend CDN accepts.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a checked upload ready to be forwarded as a multipart part.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// FileTooLargeError keeps the limit so handlers can report it.
type FileTooLargeError struct {
	Limit int64
	Size  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d bytes", e.Size, e.Limit)
}

func (e *FileTooLargeError) Unwrap() error {
	return ErrFileTooLarge
}

// ReadImage opens a multipart file and runs CheckImage on its contents.
func ReadImage(fh *multipart.FileHeader, maxSize int64) (*Image, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > maxSize {
		return nil, &FileTooLargeError{Limit: maxSize, Size: fh.Size}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return CheckImage(fh.Filename, data, maxSize)
}

// CheckImage enforces size, sniffed MIME type and decodability.
func CheckImage(filename string, data []byte, maxSize int64) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, &FileTooLargeError{Limit: maxSize, Size: int64(len(data))}
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := strings.Split(http.DetectContentType(head), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	img := &Image{
		Filename:    safeFilename(filename, mimeType),
		ContentType: mimeType,
		Data:        data,
	}

	if mimeType == "image/webp" {
		cfg, err := webp.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, ErrCorruptImage
		}
		img.Width, img.Height = cfg.Width, cfg.Height
		return img, nil
	}

	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrCorruptImage
	}
	b := decoded.Bounds()
	img.Width, img.Height = b.Dx(), b.Dy()
	return img, nil
}

// safeFilename keeps the original base name readable and makes it unique.
func safeFilename(name, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, base)
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%s%s", uuid.NewString()[:8], base, ext)
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
