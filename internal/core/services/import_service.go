package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"go.uber.org/zap"
)

const (
	// MaxUploadBytes bounds diet plan uploads.
	MaxUploadBytes = 10 << 20

	imageConcurrency = 3
)

// ImportService turns an uploaded diet plan into meals. Extraction only
// returns candidates for review; nothing is stored until Commit.
type ImportService struct {
	extractor domain.MealExtractor
	images    *ImageService
	meals     *MealService
	log       *zap.Logger
}

func NewImportService(extractor domain.MealExtractor, images *ImageService, meals *MealService, log *zap.Logger) *ImportService {
	return &ImportService{
		extractor: extractor,
		images:    images,
		meals:     meals,
		log:       logger.Named(log, "svc.import"),
	}
}

type ExtractInput struct {
	File     []byte
	MimeType string
}

func supportedUpload(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}

// Extract reads meals from the file and attaches a generated image to each
// where possible. Image failures are logged and leave the meal without one.
func (s *ImportService) Extract(ctx context.Context, input ExtractInput) ([]domain.ReviewedMeal, error) {
	if s.extractor == nil {
		return nil, domain.ErrExtractorDisabled
	}
	if len(input.File) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if !supportedUpload(input.MimeType) {
		return nil, domain.ErrUnsupportedFile
	}

	extracted, err := s.extractor.Extract(ctx, input.File, input.MimeType)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("extraction failed", zap.String("mime", input.MimeType), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	reviewed := make([]domain.ReviewedMeal, len(extracted))
	for i, m := range extracted {
		reviewed[i] = domain.NewReviewedMeal(m, "")
	}

	s.attachImages(ctx, reviewed)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info("meals extracted", zap.Int("count", len(reviewed)))
	return reviewed, nil
}

func (s *ImportService) attachImages(ctx context.Context, reviewed []domain.ReviewedMeal) {
	if !s.images.Enabled() {
		return
	}

	sem := make(chan struct{}, imageConcurrency)
	var wg sync.WaitGroup

	for i := range reviewed {
		wg.Add(1)
		go func(r *domain.ReviewedMeal) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			url, err := s.images.Render(ctx, r.MealName)
			if err != nil {
				s.log.Warn("image generation failed", zap.String("meal", r.MealName), zap.Error(err))
				return
			}
			r.ImageURL = url
		}(&reviewed[i])
	}

	wg.Wait()
}

// Commit stores the reviewed meals in the library.
func (s *ImportService) Commit(ctx context.Context, reviewed []domain.ReviewedMeal) (domain.MealLibrary, error) {
	if len(reviewed) == 0 {
		return domain.MealLibrary{}, nil
	}
	return s.meals.Import(ctx, reviewed)
}
