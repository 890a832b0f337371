package repository

import (
	"context"
	"testing"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRepo(store domain.KeyValueStore) (*StateRepository, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return NewStateRepository(store, zap.New(core)), logs
}

func TestStateRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(NewInMemoryStore(0), nil)

	meals, err := repo.LoadMeals(ctx)
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)

	history, err := repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, history)

	day, err := repo.LoadActiveDay(ctx)
	require.NoError(t, err)
	assert.Nil(t, day)

	goals, err := repo.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals, goals)

	prefs, err := repo.LoadPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences, prefs)
}

func TestStateRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(0)
	repo := NewStateRepository(store, nil)

	meal, err := domain.NewMealProfile(domain.MealFields{
		Name:    "Oats",
		Per100g: domain.NutrientDensity{Calories: 380, Protein: 13, Carbs: 60, Fat: 7},
	})
	require.NoError(t, err)

	require.NoError(t, repo.SaveMeals(ctx, domain.MealLibrary{*meal}))
	meals, err := repo.LoadMeals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MealLibrary{*meal}, meals)

	ledger, _ := domain.Ledger{}.Track(*meal, 80)
	day := domain.NewActiveDay("2024-07-24", domain.DefaultGoals).WithLedger(ledger)
	require.NoError(t, repo.SaveActiveDay(ctx, day))
	loaded, err := repo.LoadActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, loaded)

	prefs := domain.Preferences{Theme: domain.ThemeDark, Accent: "violet"}
	require.NoError(t, repo.SavePreferences(ctx, prefs))
	raw, err := store.Load(ctx, domain.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(raw))

	gotPrefs, err := repo.LoadPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs, gotPrefs)
}

func TestStateRepository_CorruptValues(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(0)
	repo, logs := newObservedRepo(store)

	require.NoError(t, store.Save(ctx, domain.KeyMeals, []byte("{not json")))
	require.NoError(t, store.Save(ctx, domain.KeyDailyGoals, []byte(`"lots"`)))
	require.NoError(t, store.Save(ctx, domain.KeyActiveDay, []byte("[]")))
	require.NoError(t, store.Save(ctx, domain.KeyTheme, []byte(`"sepia"`)))

	meals, err := repo.LoadMeals(ctx)
	require.NoError(t, err)
	assert.Empty(t, meals)

	goals, err := repo.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals, goals)

	day, err := repo.LoadActiveDay(ctx)
	require.NoError(t, err)
	assert.Nil(t, day)

	prefs, err := repo.LoadPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, prefs.Theme)

	assert.Equal(t, 3, logs.FilterMessage("corrupt stored value, using default").Len())
}

func TestStateRepository_StorageFull(t *testing.T) {
	ctx := context.Background()
	repo, logs := newObservedRepo(NewInMemoryStore(16))

	err := repo.SaveMeals(ctx, domain.MealLibrary{{ID: "1", Name: "A very long meal name"}})

	assert.ErrorIs(t, err, domain.ErrStorageFull)
	assert.Equal(t, 1, logs.FilterMessage("storage limit exceeded").Len())

	meals, err := repo.LoadMeals(ctx)
	require.NoError(t, err)
	assert.Empty(t, meals)
}
