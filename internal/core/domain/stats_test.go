package domain_test

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBalance(t *testing.T) {
	history := domain.Archive{
		{ID: "c", ISODate: "2024-07-24", Consumed: domain.Macros{Calories: 2100}, Goals: domain.DailyGoals{Calories: 1800}},
		{ID: "b", ISODate: "2024-07-21T00:00:00.000Z", Consumed: domain.Macros{Calories: 1500}, Goals: domain.DailyGoals{Calories: 1800}},
		{ID: "a", ISODate: "2024-07-10", Consumed: domain.Macros{Calories: 9999}},
	}

	t.Run("Seven days ending on the given date", func(t *testing.T) {
		balance := domain.BuildBalance(history, domain.StatsInput{
			EndDate: time.Date(2024, 7, 24, 15, 0, 0, 0, time.UTC),
		})

		require.Len(t, balance.Days, 7)
		assert.Equal(t, "2024-07-18", balance.StartDate)
		assert.Equal(t, "2024-07-24", balance.EndDate)
		assert.Equal(t, "2024-07-18", balance.Days[0].Date)
		assert.Equal(t, "Wed", balance.Days[6].Weekday)

		assert.Equal(t, 2, balance.DaysLogged)
		assert.Equal(t, 1800, balance.AverageCalories)

		sunday := balance.Days[3]
		assert.Equal(t, "2024-07-21", sunday.Date)
		assert.True(t, sunday.Logged)
		assert.Equal(t, 1500, sunday.Calories)
		assert.Equal(t, 1800, sunday.Goal)

		empty := balance.Days[1]
		assert.False(t, empty.Logged)
		assert.Zero(t, empty.Calories)
		assert.Equal(t, domain.DefaultGoals.Calories, empty.Goal)
	})

	t.Run("No logs", func(t *testing.T) {
		balance := domain.BuildBalance(nil, domain.StatsInput{
			EndDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Days:    3,
		})

		assert.Len(t, balance.Days, 3)
		assert.Zero(t, balance.DaysLogged)
		assert.Zero(t, balance.AverageCalories)
	})
}
