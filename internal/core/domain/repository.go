package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStorageFull = errors.New("storage limit exceeded")
)

// Storage keys for each persisted document.
const (
	KeyMeals       = "meals"
	KeyHistory     = "history"
	KeyActiveDay   = "todaysLog"
	KeyDailyGoals  = "dailyGoals"
	KeyTheme       = "theme"
	KeyAccentColor = "accentColor"
)

// KeyValueStore is the durable persistence boundary. Writes are
// last-write-wins.
type KeyValueStore interface {
	// Load returns the raw value stored under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the value under key. Capacity failures must wrap
	// ErrStorageFull.
	Save(ctx context.Context, key string, value []byte) error
}

// StateRepository is the typed view over the key-value store. Loads never fail
// because of unreadable data: missing or corrupt values yield the default.
type StateRepository interface {
	LoadMeals(ctx context.Context) (MealLibrary, error)
	SaveMeals(ctx context.Context, meals MealLibrary) error

	LoadHistory(ctx context.Context) (Archive, error)
	SaveHistory(ctx context.Context, history Archive) error

	// LoadActiveDay returns nil when no day has been stored yet.
	LoadActiveDay(ctx context.Context) (*ActiveDay, error)
	SaveActiveDay(ctx context.Context, day *ActiveDay) error

	LoadGoals(ctx context.Context) (DailyGoals, error)
	SaveGoals(ctx context.Context, goals DailyGoals) error

	LoadPreferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, prefs Preferences) error
}
