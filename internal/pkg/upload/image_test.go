package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheckImage_PNG(t *testing.T) {
	img, err := CheckImage("receipt.png", pngBytes(t, 4, 3), MaxProofImage)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.True(t, strings.HasSuffix(img.Filename, "_receipt.png"))
}

func TestCheckImage_Empty(t *testing.T) {
	_, err := CheckImage("x.png", nil, MaxProofImage)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestCheckImage_TooLarge(t *testing.T) {
	data := pngBytes(t, 2, 2)
	_, err := CheckImage("x.png", data, int64(len(data)-1))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	var tooLarge *FileTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, int64(len(data)-1), tooLarge.Limit)
}

func TestCheckImage_NotAnImage(t *testing.T) {
	_, err := CheckImage("notes.txt", []byte("hello world, this is plain text"), MaxProofImage)
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	_, err = CheckImage("doc.pdf", []byte("%PDF-1.4\n..."), MaxProofImage)
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestCheckImage_Corrupt(t *testing.T) {
	data := pngBytes(t, 8, 8)
	_, err := CheckImage("broken.png", data[:40], MaxProofImage)
	assert.ErrorIs(t, err, ErrCorruptImage)
}

func TestSafeFilename(t *testing.T) {
	name := safeFilename("../../etc/pass wd.JPG", "image/jpeg")
	assert.True(t, strings.HasSuffix(name, "_pass_wd.jpg"))
	assert.NotContains(t, name, "/")

	assert.True(t, strings.HasSuffix(safeFilename("", "image/webp"), "_image.webp"))
}
