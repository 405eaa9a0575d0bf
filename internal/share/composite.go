// Package share produces the downloadable before/after composite. It is the
// only package that touches pixel data; everywhere else images are opaque
// references.
package share

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// compositeHeight is the output height; inputs are scaled to it.
	compositeHeight = 1024
	// gutterWidth separates the two panels.
	gutterWidth = 16
	// jpegQuality matches a "good enough to share" target.
	jpegQuality = 88
)

// EncodeDataURL wraps raw image bytes as a data URL reference.
func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL extracts the raw bytes from a data URL reference.
func DecodeDataURL(ref string) ([]byte, error) {
	if !strings.HasPrefix(ref, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	idx := strings.Index(ref, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	data, err := base64.StdEncoding.DecodeString(ref[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	return data, nil
}

// Compose renders the original upload and the current displayed composite
// side by side and returns the result as JPEG bytes. Both inputs must be
// data URL references.
func Compose(originalRef, currentRef string) ([]byte, error) {
	before, err := decodeImage(originalRef)
	if err != nil {
		return nil, fmt.Errorf("before image: %w", err)
	}
	after, err := decodeImage(currentRef)
	if err != nil {
		return nil, fmt.Errorf("after image: %w", err)
	}

	// Scale both panels to a common height, keeping aspect ratio.
	before = imaging.Resize(before, 0, compositeHeight, imaging.Lanczos)
	after = imaging.Resize(after, 0, compositeHeight, imaging.Lanczos)

	width := before.Bounds().Dx() + gutterWidth + after.Bounds().Dx()
	canvas := imaging.New(width, compositeHeight, color.White)
	canvas = imaging.Paste(canvas, before, image.Pt(0, 0))
	canvas = imaging.Paste(canvas, after, image.Pt(before.Bounds().Dx()+gutterWidth, 0))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode composite: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(ref string) (image.Image, error) {
	data, err := DecodeDataURL(ref)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
