package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

func TestHistoryHandler(t *testing.T) {
	env := setupEnv(t, envOptions{})
	oatsID := env.createMeal(t, oatsBody())

	for _, date := range []string{"2024-07-20", "2024-07-23", "2024-07-21"} {
		env.do(t, http.MethodPost, "/api/v1/day/servings", map[string]any{"meal_id": oatsID})
		w := env.do(t, http.MethodPost, "/api/v1/day/save", map[string]any{"date": date})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var history []domain.ArchivedDay

	t.Run("Success: List Newest First", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/history", nil)
		require.Equal(t, http.StatusOK, w.Code)

		history = decode[[]domain.ArchivedDay](t, w)
		require.Len(t, history, 3)
		assert.Equal(t, "2024-07-23", history[0].ISODate)
		assert.Equal(t, "2024-07-21", history[1].ISODate)
		assert.Equal(t, "2024-07-20", history[2].ISODate)
		assert.Equal(t, "July 23", history[0].DisplayDate)
	})

	t.Run("Success: Get By Id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/history/"+history[1].ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2024-07-21", decode[domain.ArchivedDay](t, w).ISODate)
	})

	t.Run("Fail: Get Unknown Id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/history/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success: Delete Then Delete Again", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/history/"+history[0].ID, nil).Code)
		assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/history/"+history[0].ID, nil).Code)

		left := decode[[]domain.ArchivedDay](t, env.do(t, http.MethodGet, "/api/v1/history", nil))
		assert.Len(t, left, 2)
	})
}
