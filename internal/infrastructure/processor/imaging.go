package processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	_defaultMaxWidth  = 480
	_defaultMaxHeight = 480
)

// ImageProcessor downsamples gallery images into preview thumbnails.
// Output is always JPEG; gif/png previews gain nothing from keeping their
// source format at preview sizes.
type ImageProcessor struct {
	maxWidth  int
	maxHeight int
}

func New(maxWidth, maxHeight int) *ImageProcessor {
	if maxWidth <= 0 {
		maxWidth = _defaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = _defaultMaxHeight
	}

	return &ImageProcessor{maxWidth: maxWidth, maxHeight: maxHeight}
}

func (p *ImageProcessor) Thumbnail(_ context.Context, contentType string, data []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Thumbnail - imaging.Decode (%s): %w", contentType, err)
	}

	thumb := imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80))
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Thumbnail - imaging.Encode: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
