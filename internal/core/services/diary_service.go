package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"go.uber.org/zap"
)

// DiaryService runs every operation on the active day. Each call first
// reconciles the stored day against the clock and the current goals.
type DiaryService struct {
	ws  *Workspace
	log *zap.Logger
}

func NewDiaryService(ws *Workspace, log *zap.Logger) *DiaryService {
	return &DiaryService{
		ws:  ws,
		log: logger.Named(log, "svc.diary"),
	}
}

type TrackInput struct {
	MealID string
	// Weight in grams; zero means the meal's default weight.
	Weight float64
}

type ReweighInput struct {
	ServingID string
	Weight    float64
}

type SaveDayInput struct {
	// Date is the calendar day to file the log under; zero means today.
	Date time.Time
}

func (s *DiaryService) Today(ctx context.Context) (*domain.DaySummary, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	day, err := s.ws.activeDay(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Summarize(day), nil
}

// mutate applies fn to the reconciled day's ledger and stores the result with
// consumed totals re-derived.
func (s *DiaryService) mutate(ctx context.Context, fn func(day *domain.ActiveDay) (domain.Ledger, error)) (*domain.DaySummary, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	day, err := s.ws.activeDay(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := fn(day)
	if err != nil {
		return nil, err
	}

	next := day.WithLedger(ledger)
	if err := s.ws.repo.SaveActiveDay(ctx, next); err != nil {
		return nil, err
	}

	return domain.Summarize(next), nil
}

func (s *DiaryService) Track(ctx context.Context, input TrackInput) (*domain.DaySummary, error) {
	if input.Weight < 0 {
		return nil, domain.ErrInvalidWeight
	}

	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		meals, err := s.ws.repo.LoadMeals(ctx)
		if err != nil {
			return nil, err
		}

		meal, ok := meals.Find(input.MealID)
		if !ok {
			return nil, domain.ErrMealNotFound
		}

		weight := input.Weight
		if weight == 0 {
			weight = meal.DefaultWeight
		}

		ledger, serving := day.Meals.Track(meal, weight)
		s.log.Debug("serving tracked", zap.String("meal", meal.Name), zap.Float64("weight", weight), zap.Int("calories", serving.Calories))
		return ledger, nil
	})
}

func (s *DiaryService) QuickAdd(ctx context.Context, input domain.QuickAddInput) (*domain.DaySummary, error) {
	if input.Weight < 0 {
		return nil, domain.ErrInvalidWeight
	}
	if input.Calories < 0 || input.Protein < 0 || input.Carbs < 0 || input.Fat < 0 {
		return nil, domain.ErrNegativeNutrient
	}

	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		ledger, _ := day.Meals.QuickAdd(input)
		return ledger, nil
	})
}

// Remove drops a serving. Unknown ids are a no-op.
func (s *DiaryService) Remove(ctx context.Context, servingID string) (*domain.DaySummary, error) {
	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		return day.Meals.Remove(servingID), nil
	})
}

// ToggleEaten flips the eaten flag of a serving. Unknown ids are a no-op.
func (s *DiaryService) ToggleEaten(ctx context.Context, servingID string) (*domain.DaySummary, error) {
	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		return day.Meals.ToggleEaten(servingID), nil
	})
}

// Reweigh changes a serving's weight. A negative weight is reported as
// ErrInvalidWeight and leaves the day untouched.
func (s *DiaryService) Reweigh(ctx context.Context, input ReweighInput) (*domain.DaySummary, error) {
	if input.Weight < 0 {
		return nil, domain.ErrInvalidWeight
	}

	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		meals, err := s.ws.repo.LoadMeals(ctx)
		if err != nil {
			return nil, err
		}
		return day.Meals.Reweigh(input.ServingID, input.Weight, meals), nil
	})
}

// TrackMainMeals tracks every main meal at its default weight.
func (s *DiaryService) TrackMainMeals(ctx context.Context) (*domain.DaySummary, error) {
	return s.mutate(ctx, func(day *domain.ActiveDay) (domain.Ledger, error) {
		meals, err := s.ws.repo.LoadMeals(ctx)
		if err != nil {
			return nil, err
		}

		mains := meals.MainMeals()
		if len(mains) == 0 {
			return nil, domain.ErrNoMainMeals
		}

		return day.Meals.TrackAll(mains), nil
	})
}

// SaveDay archives the active day under input.Date and starts a fresh day.
// The archive is written before the day is reset; if the reset fails the
// archived copy stays and saving again overwrites it.
func (s *DiaryService) SaveDay(ctx context.Context, input SaveDayInput) (*domain.SaveResult, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	day, err := s.ws.activeDay(ctx)
	if err != nil {
		return nil, err
	}

	chosen := input.Date
	if chosen.IsZero() {
		chosen = s.ws.clock()
	}

	history, err := s.ws.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}

	archive, result, err := history.SaveDay(day, chosen, s.ws.loc)
	if err != nil {
		return nil, err
	}

	if err := s.ws.repo.SaveHistory(ctx, archive); err != nil {
		return nil, fmt.Errorf("diary service: failed to archive day: %w", err)
	}

	if err := s.ws.repo.SaveActiveDay(ctx, domain.NewActiveDay(s.ws.today(), day.Goals)); err != nil {
		return nil, fmt.Errorf("diary service: failed to reset day: %w", err)
	}

	s.log.Info("day archived",
		zap.String("date", result.Entry.ISODate),
		zap.Bool("updated", result.Updated),
		zap.Int("servings", len(result.Entry.Meals)),
	)

	return &result, nil
}
