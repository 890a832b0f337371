package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"go.uber.org/zap"
)

var _ domain.StateRepository = (*StateRepository)(nil)

// StateRepository stores each document as JSON under its own key. Missing or
// unreadable values decode to the document's default.
type StateRepository struct {
	store domain.KeyValueStore
	log   *zap.Logger
}

func NewStateRepository(store domain.KeyValueStore, log *zap.Logger) *StateRepository {
	return &StateRepository{
		store: store,
		log:   logger.Named(log, "repo.state"),
	}
}

// load decodes key into dest. It reports false when the key is absent or its
// value is corrupt, leaving dest untouched.
func (r *StateRepository) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := r.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		r.log.Warn("corrupt stored value, using default", zap.String("key", key), zap.Error(err))
		return false, nil
	}

	return true, nil
}

func (r *StateRepository) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := r.store.Save(ctx, key, data); err != nil {
		if errors.Is(err, domain.ErrStorageFull) {
			r.log.Warn("storage limit exceeded", zap.String("key", key), zap.Int("bytes", len(data)))
		}
		return err
	}

	return nil
}

func (r *StateRepository) LoadMeals(ctx context.Context) (domain.MealLibrary, error) {
	var meals domain.MealLibrary
	ok, err := r.load(ctx, domain.KeyMeals, &meals)
	if err != nil {
		return nil, err
	}
	if !ok || meals == nil {
		return domain.MealLibrary{}, nil
	}
	return meals, nil
}

func (r *StateRepository) SaveMeals(ctx context.Context, meals domain.MealLibrary) error {
	if meals == nil {
		meals = domain.MealLibrary{}
	}
	return r.save(ctx, domain.KeyMeals, meals)
}

func (r *StateRepository) LoadHistory(ctx context.Context) (domain.Archive, error) {
	var history domain.Archive
	ok, err := r.load(ctx, domain.KeyHistory, &history)
	if err != nil {
		return nil, err
	}
	if !ok || history == nil {
		return domain.Archive{}, nil
	}
	return history, nil
}

func (r *StateRepository) SaveHistory(ctx context.Context, history domain.Archive) error {
	if history == nil {
		history = domain.Archive{}
	}
	return r.save(ctx, domain.KeyHistory, history)
}

func (r *StateRepository) LoadActiveDay(ctx context.Context) (*domain.ActiveDay, error) {
	var day domain.ActiveDay
	ok, err := r.load(ctx, domain.KeyActiveDay, &day)
	if err != nil {
		return nil, err
	}
	if !ok || day.Date == "" {
		return nil, nil
	}
	if day.Meals == nil {
		day.Meals = domain.Ledger{}
	}
	return &day, nil
}

func (r *StateRepository) SaveActiveDay(ctx context.Context, day *domain.ActiveDay) error {
	if day == nil {
		return errors.New("active day is nil")
	}
	return r.save(ctx, domain.KeyActiveDay, day)
}

func (r *StateRepository) LoadGoals(ctx context.Context) (domain.DailyGoals, error) {
	var goals domain.DailyGoals
	ok, err := r.load(ctx, domain.KeyDailyGoals, &goals)
	if err != nil {
		return domain.DailyGoals{}, err
	}
	if !ok {
		return domain.DefaultGoals, nil
	}
	return goals, nil
}

func (r *StateRepository) SaveGoals(ctx context.Context, goals domain.DailyGoals) error {
	return r.save(ctx, domain.KeyDailyGoals, goals)
}

// LoadPreferences reads theme and accent from their own keys. Each falls back
// to its default independently.
func (r *StateRepository) LoadPreferences(ctx context.Context) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences

	var theme string
	ok, err := r.load(ctx, domain.KeyTheme, &theme)
	if err != nil {
		return prefs, err
	}
	if ok && (domain.Preferences{Theme: theme, Accent: prefs.Accent}).Validate() == nil {
		prefs.Theme = theme
	}

	var accent string
	ok, err = r.load(ctx, domain.KeyAccentColor, &accent)
	if err != nil {
		return prefs, err
	}
	if ok && (domain.Preferences{Theme: prefs.Theme, Accent: accent}).Validate() == nil {
		prefs.Accent = accent
	}

	return prefs, nil
}

func (r *StateRepository) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	if err := r.save(ctx, domain.KeyTheme, prefs.Theme); err != nil {
		return err
	}
	return r.save(ctx, domain.KeyAccentColor, prefs.Accent)
}
