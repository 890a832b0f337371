package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

// Meal thumbnails are shrunk to this width and JPEG quality before storage.
const (
	ThumbnailWidth   = 256
	ThumbnailQuality = 0.7
)

// ImageService renders a meal name into a compressed data URL.
type ImageService struct {
	generator  domain.ImageGenerator
	compressor domain.ImageCompressor
}

func NewImageService(generator domain.ImageGenerator, compressor domain.ImageCompressor) *ImageService {
	return &ImageService{
		generator:  generator,
		compressor: compressor,
	}
}

func (s *ImageService) Enabled() bool {
	return s != nil && s.generator != nil
}

func (s *ImageService) Render(ctx context.Context, mealName string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: no generator configured", domain.ErrImageFailed)
	}

	img, err := s.generator.Generate(ctx, mealName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrImageFailed, err)
	}
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrImageFailed)
	}

	if s.compressor != nil {
		small, err := s.compressor.Compress(img, ThumbnailWidth, ThumbnailQuality)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrImageFailed, err)
		}
		img = small
	}

	return DataURL(img), nil
}

func DataURL(img domain.Image) string {
	mime := img.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
