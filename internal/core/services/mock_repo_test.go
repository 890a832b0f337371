package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
)

// MockStateRepo keeps state in memory and can fail writes per key.
type MockStateRepo struct {
	mu sync.Mutex

	meals   domain.MealLibrary
	history domain.Archive
	day     *domain.ActiveDay
	goals   *domain.DailyGoals
	prefs   *domain.Preferences

	saves    map[string]int
	failSave map[string]error
}

func NewMockStateRepo() *MockStateRepo {
	return &MockStateRepo{
		saves:    map[string]int{},
		failSave: map[string]error{},
	}
}

func (m *MockStateRepo) save(key string) error {
	if err := m.failSave[key]; err != nil {
		return err
	}
	m.saves[key]++
	return nil
}

func (m *MockStateRepo) Saves(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

func (m *MockStateRepo) FailSave(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave[key] = err
}

func (m *MockStateRepo) LoadMeals(ctx context.Context) (domain.MealLibrary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(domain.MealLibrary, len(m.meals))
	copy(out, m.meals)
	return out, nil
}

func (m *MockStateRepo) SaveMeals(ctx context.Context, meals domain.MealLibrary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(domain.KeyMeals); err != nil {
		return err
	}
	m.meals = meals
	return nil
}

func (m *MockStateRepo) LoadHistory(ctx context.Context) (domain.Archive, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(domain.Archive, len(m.history))
	copy(out, m.history)
	return out, nil
}

func (m *MockStateRepo) SaveHistory(ctx context.Context, history domain.Archive) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(domain.KeyHistory); err != nil {
		return err
	}
	m.history = history
	return nil
}

func (m *MockStateRepo) LoadActiveDay(ctx context.Context) (*domain.ActiveDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.day == nil {
		return nil, nil
	}
	clone := *m.day
	return &clone, nil
}

func (m *MockStateRepo) SaveActiveDay(ctx context.Context, day *domain.ActiveDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(domain.KeyActiveDay); err != nil {
		return err
	}
	clone := *day
	m.day = &clone
	return nil
}

func (m *MockStateRepo) LoadGoals(ctx context.Context) (domain.DailyGoals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.goals == nil {
		return domain.DefaultGoals, nil
	}
	return *m.goals, nil
}

func (m *MockStateRepo) SaveGoals(ctx context.Context, goals domain.DailyGoals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(domain.KeyDailyGoals); err != nil {
		return err
	}
	m.goals = &goals
	return nil
}

func (m *MockStateRepo) LoadPreferences(ctx context.Context) (domain.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs == nil {
		return domain.DefaultPreferences, nil
	}
	return *m.prefs, nil
}

func (m *MockStateRepo) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.save(domain.KeyTheme); err != nil {
		return err
	}
	m.prefs = &prefs
	return nil
}

// testClock is a settable wall clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newWorkspace(repo *MockStateRepo, now time.Time) (*services.Workspace, *testClock) {
	clock := &testClock{now: now}
	ws := services.NewWorkspace(repo, time.UTC)
	ws.SetClock(clock.Now)
	return ws, clock
}

func ptr[T any](v T) *T {
	return &v
}

func oats() domain.MealProfile {
	return domain.MealProfile{
		ID:            "meal-oats",
		Name:          "Oats",
		Per100g:       domain.NutrientDensity{Calories: 380, Protein: 13, Carbs: 60, Fat: 7},
		DefaultWeight: 80,
		Category:      domain.CategoryBreakfast,
		IsMainMeal:    true,
	}
}

func chickenBowl() domain.MealProfile {
	return domain.MealProfile{
		ID:            "meal-chicken",
		Name:          "Chicken Bowl",
		Per100g:       domain.NutrientDensity{Calories: 200, Protein: 20, Carbs: 10, Fat: 5},
		DefaultWeight: 150,
		Category:      domain.CategoryLunch,
	}
}
