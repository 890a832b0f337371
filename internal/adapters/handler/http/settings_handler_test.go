package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

func TestSettingsHandler_Goals(t *testing.T) {
	env := setupEnv(t, envOptions{})

	t.Run("Success: Defaults", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/settings/goals", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DefaultGoals, decode[domain.DailyGoals](t, w))
	})

	t.Run("Success: Update Reaches The Active Day", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/settings/goals", `{"calories": "1800", "protein": 140, "carbs": 180, "fat": 55}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		want := domain.DailyGoals{Calories: 1800, Protein: 140, Carbs: 180, Fat: 55}
		assert.Equal(t, want, decode[domain.DailyGoals](t, w))

		day := decode[daySummary](t, env.do(t, http.MethodGet, "/api/v1/day", nil))
		assert.Equal(t, want, day.Goals)
		assert.Equal(t, 1800, day.Remaining.Calories)
	})

	t.Run("Fail: Negative Goal", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/settings/goals", map[string]any{"calories": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		goals := decode[domain.DailyGoals](t, env.do(t, http.MethodGet, "/api/v1/settings/goals", nil))
		assert.Equal(t, 1800, goals.Calories)
	})
}

func TestSettingsHandler_Preferences(t *testing.T) {
	env := setupEnv(t, envOptions{})

	t.Run("Success: Defaults", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/settings/preferences", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DefaultPreferences, decode[domain.Preferences](t, w))
	})

	t.Run("Success: Update", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/settings/preferences", map[string]any{"theme": "dark", "accent": "rose"})
		require.Equal(t, http.StatusOK, w.Code)

		prefs := decode[domain.Preferences](t, env.do(t, http.MethodGet, "/api/v1/settings/preferences", nil))
		assert.Equal(t, domain.Preferences{Theme: "dark", Accent: "rose"}, prefs)
	})

	t.Run("Fail: Invalid Values", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest,
			env.do(t, http.MethodPut, "/api/v1/settings/preferences", map[string]any{"theme": "sepia", "accent": "rose"}).Code)
		assert.Equal(t, http.StatusBadRequest,
			env.do(t, http.MethodPut, "/api/v1/settings/preferences", map[string]any{"theme": "dark", "accent": "orange"}).Code)
		assert.Equal(t, http.StatusBadRequest,
			env.do(t, http.MethodPut, "/api/v1/settings/preferences", map[string]any{"theme": "dark"}).Code)
	})
}
