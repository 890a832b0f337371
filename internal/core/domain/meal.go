package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMealNameEmpty    = errors.New("meal name cannot be empty")
	ErrMealNameTooLong  = errors.New("meal name is too long (max 120 chars)")
	ErrNegativeNutrient = errors.New("nutrition values cannot be negative")
	ErrInvalidWeight    = errors.New("weight cannot be negative")
	ErrInvalidCategory  = errors.New("invalid category (must be Breakfast, Lunch, Dinner or Snacks)")
	ErrMealNotFound     = errors.New("meal not found")
	ErrNoMainMeals      = errors.New("no meals are marked as main")
)

const (
	DefaultServingWeight = 100.0
	MaxMealNameLen       = 120
)

// MealProfile is a library entry: nutrition per 100g plus defaults used when
// tracking it.
type MealProfile struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Per100g       NutrientDensity `json:"per_100g"`
	DefaultWeight float64         `json:"default_weight"`
	Category      Category        `json:"category"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsMainMeal    bool            `json:"is_main_meal"`
}

type MealFields struct {
	Name          string
	Per100g       NutrientDensity
	DefaultWeight float64
	Category      Category
	ImageURL      string
	IsMainMeal    bool
}

func validateMeal(f MealFields) (MealFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, ErrMealNameEmpty
	}
	if len(f.Name) > MaxMealNameLen {
		return f, ErrMealNameTooLong
	}

	if err := f.Per100g.validate(); err != nil {
		return f, err
	}

	if f.DefaultWeight < 0 {
		return f, ErrInvalidWeight
	}
	if f.DefaultWeight == 0 {
		f.DefaultWeight = DefaultServingWeight
	}

	if f.Category == "" {
		f.Category = CategorySnacks
	}
	if !f.Category.Valid() {
		return f, ErrInvalidCategory
	}

	return f, nil
}

func NewMealProfile(f MealFields) (*MealProfile, error) {
	clean, err := validateMeal(f)
	if err != nil {
		return nil, err
	}

	return &MealProfile{
		ID:            uuid.NewString(),
		Name:          clean.Name,
		Per100g:       clean.Per100g,
		DefaultWeight: clean.DefaultWeight,
		Category:      clean.Category,
		ImageURL:      clean.ImageURL,
		IsMainMeal:    clean.IsMainMeal,
	}, nil
}

// Update replaces every editable field. The id never changes, and an empty
// image URL keeps the stored image.
func (m *MealProfile) Update(f MealFields) error {
	clean, err := validateMeal(f)
	if err != nil {
		return err
	}

	m.Name = clean.Name
	m.Per100g = clean.Per100g
	m.DefaultWeight = clean.DefaultWeight
	m.Category = clean.Category
	if clean.ImageURL != "" {
		m.ImageURL = clean.ImageURL
	}
	m.IsMainMeal = clean.IsMainMeal
	return nil
}

// ServingForm is what a user types when describing one serving of a meal
// rather than its per-100g values.
type ServingForm struct {
	Name          string
	ServingWeight float64
	Calories      float64
	Protein       float64
	Carbs         float64
	Fat           float64
	Category      Category
	ImageURL      string
	IsMainMeal    bool
}

func (f ServingForm) Fields() MealFields {
	return MealFields{
		Name:          f.Name,
		Per100g:       DensityFromServing(f.Calories, f.Protein, f.Carbs, f.Fat, f.ServingWeight),
		DefaultWeight: f.ServingWeight,
		Category:      f.Category,
		ImageURL:      f.ImageURL,
		IsMainMeal:    f.IsMainMeal,
	}
}

// MealLibrary is the ordered collection of meal profiles.
type MealLibrary []MealProfile

func (l MealLibrary) Find(id string) (MealProfile, bool) {
	for _, m := range l {
		if m.ID == id {
			return m, true
		}
	}
	return MealProfile{}, false
}

// Upsert replaces the profile with the same id or appends it.
func (l MealLibrary) Upsert(meal MealProfile) (MealLibrary, bool) {
	out := make(MealLibrary, len(l), len(l)+1)
	copy(out, l)
	for i := range out {
		if out[i].ID == meal.ID {
			out[i] = meal
			return out, true
		}
	}
	return append(out, meal), false
}

// Remove drops the profile with the given id; absent ids are a no-op.
func (l MealLibrary) Remove(id string) MealLibrary {
	out := make(MealLibrary, 0, len(l))
	for _, m := range l {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

func (l MealLibrary) MainMeals() []MealProfile {
	var mains []MealProfile
	for _, m := range l {
		if m.IsMainMeal {
			mains = append(mains, m)
		}
	}
	return mains
}
