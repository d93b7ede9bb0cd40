// Package imaging validates and normalizes uploaded files before they reach
// disk. Types are sniffed from the actual bytes, never trusted from the
// client headers or filename.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registers the PNG decoder for image.Decode
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for stored listing photos.
const MaxDimension = 1024

// JPEGQuality is the compression quality for re-encoded photos.
const JPEGQuality = 85

var allowedImageMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result holds a processed listing photo ready for storage.
type Result struct {
	Data []byte
	MIME string
}

// ProcessPhoto validates image bytes by sniffing and decoding them,
// downscales anything larger than MaxDimension, and re-encodes as JPEG so
// stored photos have a uniform format and bounded size.
func ProcessPhoto(data []byte) (*Result, error) {
	detected := http.DetectContentType(data)
	if !allowedImageMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s (only JPEG and PNG accepted)", detected)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return &Result{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// ValidateDocument checks that verification document bytes are a real JPEG,
// PNG or PDF. Documents are stored as uploaded, so only the signature is
// checked here.
func ValidateDocument(data []byte) error {
	if detected := http.DetectContentType(data); allowedImageMIME[detected] || detected == "application/pdf" {
		return nil
	}
	return fmt.Errorf("unsupported document format (only JPEG, PNG and PDF accepted)")
}

// downscale resizes the image so neither dimension exceeds maxDim, using
// Catmull-Rom interpolation. Returns the original when already in bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
