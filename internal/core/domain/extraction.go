package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrExtractorDisabled = errors.New("meal extraction is not configured")
	ErrUnsupportedFile   = errors.New("unsupported file type (must be an image or PDF)")
	ErrEmptyFile         = errors.New("uploaded file is empty")
	ErrImageFailed       = errors.New("image generation failed")
)

// ExtractedMeal is one meal as read from a diet plan. Values are serving
// totals for WeightGrams, not per-100g.
type ExtractedMeal struct {
	MealName    string   `json:"meal_name"`
	WeightGrams float64  `json:"weight_grams"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Category    Category `json:"category"`
}

// ReviewedMeal is an extracted meal handed back to the owner for review
// before it is imported into the library.
type ReviewedMeal struct {
	ID string `json:"id"`
	ExtractedMeal
	ImageURL string `json:"image_url"`
}

func NewReviewedMeal(m ExtractedMeal, imageURL string) ReviewedMeal {
	m.Category = ParseCategory(string(m.Category))
	return ReviewedMeal{
		ID:            uuid.NewString(),
		ExtractedMeal: m,
		ImageURL:      imageURL,
	}
}

// Profile converts a reviewed serving into a library profile.
func (r ReviewedMeal) Profile() (*MealProfile, error) {
	return NewMealProfile(MealFields{
		Name:          r.MealName,
		Per100g:       DensityFromServing(r.Calories, r.Protein, r.Carbs, r.Fat, r.WeightGrams),
		DefaultWeight: r.WeightGrams,
		Category:      ParseCategory(string(r.Category)),
		ImageURL:      r.ImageURL,
		IsMainMeal:    false,
	})
}

// MealExtractor reads meals out of an uploaded image or PDF. Any failure is
// reported as ErrExtractionFailed, with no partial results.
type MealExtractor interface {
	Extract(ctx context.Context, file []byte, mimeType string) ([]ExtractedMeal, error)
}

// Image is an encoded picture.
type Image struct {
	MimeType string
	Data     []byte
}

type ImageGenerator interface {
	Generate(ctx context.Context, mealName string) (Image, error)
}

type ImageCompressor interface {
	Compress(img Image, maxWidth int, quality float64) (Image, error)
}
