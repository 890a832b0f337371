package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

var ErrEmptyImage = errors.New("image has no pixels")

// JPEGCompressor rescales pictures to a fixed width and re-encodes them as
// JPEG.
type JPEGCompressor struct {
	scaler draw.Scaler
}

func NewJPEGCompressor() *JPEGCompressor {
	return &JPEGCompressor{scaler: draw.CatmullRom}
}

// Compress scales img to maxWidth keeping its aspect ratio and encodes it at
// quality, a fraction in (0, 1].
func (c *JPEGCompressor) Compress(img domain.Image, maxWidth int, quality float64) (domain.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return domain.Image{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return domain.Image{}, ErrEmptyImage
	}

	width := maxWidth
	if width <= 0 {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	c.scaler.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return domain.Image{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return domain.Image{MimeType: "image/jpeg", Data: buf.Bytes()}, nil
}

func jpegQuality(q float64) int {
	v := int(q*100 + 0.5)
	switch {
	case v < 1:
		return jpeg.DefaultQuality
	case v > 100:
		return 100
	}
	return v
}
