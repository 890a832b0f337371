package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"go.uber.org/zap"
)

// ImageQueue schedules background image generation for a library meal.
type ImageQueue interface {
	Enqueue(mealID string)
}

type MealService struct {
	ws     *Workspace
	images ImageQueue
	log    *zap.Logger
}

func NewMealService(ws *Workspace, images ImageQueue, log *zap.Logger) *MealService {
	return &MealService{
		ws:     ws,
		images: images,
		log:    logger.Named(log, "svc.meals"),
	}
}

type UpdateMealInput struct {
	ID     string
	Fields domain.MealFields
}

func (s *MealService) List(ctx context.Context) (domain.MealLibrary, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	return s.ws.repo.LoadMeals(ctx)
}

func (s *MealService) Get(ctx context.Context, id string) (*domain.MealProfile, error) {
	meals, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	meal, ok := meals.Find(id)
	if !ok {
		return nil, domain.ErrMealNotFound
	}
	return &meal, nil
}

// edit loads the library, applies fn and stores the result.
func (s *MealService) edit(ctx context.Context, fn func(meals domain.MealLibrary) (domain.MealLibrary, error)) error {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	meals, err := s.ws.repo.LoadMeals(ctx)
	if err != nil {
		return err
	}

	next, err := fn(meals)
	if err != nil {
		return err
	}

	return s.ws.repo.SaveMeals(ctx, next)
}

func (s *MealService) Create(ctx context.Context, fields domain.MealFields) (*domain.MealProfile, error) {
	meal, err := domain.NewMealProfile(fields)
	if err != nil {
		return nil, err
	}

	err = s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		next, _ := meals.Upsert(*meal)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.requestImage(meal)
	return meal, nil
}

// CreateFromServing creates a profile from absolute serving values.
func (s *MealService) CreateFromServing(ctx context.Context, form domain.ServingForm) (*domain.MealProfile, error) {
	return s.Create(ctx, form.Fields())
}

// Update replaces an existing profile. ErrMealNotFound is returned when the
// meal no longer exists; nothing is written in that case.
func (s *MealService) Update(ctx context.Context, input UpdateMealInput) (*domain.MealProfile, error) {
	var updated domain.MealProfile

	err := s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		meal, ok := meals.Find(input.ID)
		if !ok {
			return nil, domain.ErrMealNotFound
		}
		if err := meal.Update(input.Fields); err != nil {
			return nil, err
		}
		updated = meal
		next, _ := meals.Upsert(meal)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.requestImage(&updated)
	return &updated, nil
}

// Delete removes a profile. Unknown ids are a no-op. Servings already
// tracked from the meal stay in the ledger.
func (s *MealService) Delete(ctx context.Context, id string) error {
	return s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		return meals.Remove(id), nil
	})
}

func (s *MealService) ToggleMain(ctx context.Context, id string) (*domain.MealProfile, error) {
	var toggled domain.MealProfile

	err := s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		meal, ok := meals.Find(id)
		if !ok {
			return nil, domain.ErrMealNotFound
		}
		meal.IsMainMeal = !meal.IsMainMeal
		toggled = meal
		next, _ := meals.Upsert(meal)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	return &toggled, nil
}

// Import appends reviewed meals to the library in one write. Any invalid
// meal rejects the whole batch.
func (s *MealService) Import(ctx context.Context, reviewed []domain.ReviewedMeal) (domain.MealLibrary, error) {
	added := make(domain.MealLibrary, 0, len(reviewed))
	for _, r := range reviewed {
		meal, err := r.Profile()
		if err != nil {
			return nil, err
		}
		added = append(added, *meal)
	}

	err := s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		next := make(domain.MealLibrary, 0, len(meals)+len(added))
		next = append(next, meals...)
		return append(next, added...), nil
	})
	if err != nil {
		return nil, err
	}

	for i := range added {
		s.requestImage(&added[i])
	}

	s.log.Info("meals imported", zap.Int("count", len(added)))
	return added, nil
}

// AttachImage sets the image of a meal that still exists and still has none.
// It reports whether the image was stored.
func (s *MealService) AttachImage(ctx context.Context, id, imageURL string) (bool, error) {
	attached := false

	err := s.edit(ctx, func(meals domain.MealLibrary) (domain.MealLibrary, error) {
		meal, ok := meals.Find(id)
		if !ok || meal.ImageURL != "" {
			return meals, nil
		}
		meal.ImageURL = imageURL
		attached = true
		next, _ := meals.Upsert(meal)
		return next, nil
	})
	if err != nil {
		return false, err
	}

	return attached, nil
}

func (s *MealService) requestImage(meal *domain.MealProfile) {
	if s.images == nil || meal.ImageURL != "" {
		return
	}
	s.images.Enqueue(meal.ID)
}
