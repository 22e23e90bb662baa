package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

func TestStatsOverview(t *testing.T) {
	t.Run("Success: empty account yields zero score and empty slices", func(t *testing.T) {
		env := setupEnv(t)

		w := env.do(t, "GET", "/api/v1/stats/overview", "user-1", "")

		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.Overview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
		assert.Equal(t, 0, overview.Score)
		assert.NotNil(t, overview.PerfectDays)
		assert.NotNil(t, overview.TopHabits)
	})

	t.Run("Success: fully completed habit scores 100", func(t *testing.T) {
		env := setupEnv(t)

		habit := env.createHabit(t, "user-1", `{"name": "Meditate"}`)
		for d := testToday; testToday.Sub(d).Hours() < 24*35; d = d.AddDate(0, 0, -1) {
			w := env.do(t, "POST", "/api/v1/habits/"+habit.ID+"/toggle", "user-1",
				`{"date": "`+domain.DateKey(d)+`"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := env.do(t, "GET", "/api/v1/stats/overview?date="+domain.DateKey(testToday), "user-1", "")

		require.Equal(t, http.StatusOK, w.Code)

		var overview domain.Overview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
		assert.Equal(t, 100, overview.Score)
		require.Len(t, overview.TopHabits, 1)
		assert.Equal(t, habit.ID, overview.TopHabits[0].HabitID)
		assert.Equal(t, 100, overview.TopHabits[0].Strength)
	})

	t.Run("Error: 400 on malformed date query", func(t *testing.T) {
		env := setupEnv(t)

		w := env.do(t, "GET", "/api/v1/stats/overview?date=15-03-2024", "user-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHabitStats(t *testing.T) {
	t.Run("Success: streak and due flags for a daily habit", func(t *testing.T) {
		env := setupEnv(t)

		habit := env.createHabit(t, "user-1", `{"name": "Read"}`)
		for i := 0; i < 3; i++ {
			d := testToday.AddDate(0, 0, -i)
			w := env.do(t, "POST", "/api/v1/habits/"+habit.ID+"/toggle", "user-1",
				`{"date": "`+domain.DateKey(d)+`"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := env.do(t, "GET", "/api/v1/habits/"+habit.ID+"/stats", "user-1", "")

		require.Equal(t, http.StatusOK, w.Code)

		var stats services.HabitStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, habit.ID, stats.HabitID)
		assert.Equal(t, 3, stats.Streak)
		assert.True(t, stats.DueToday)
		assert.True(t, stats.Done)
	})

	t.Run("Error: 404 for another user's habit", func(t *testing.T) {
		env := setupEnv(t)

		habit := env.createHabit(t, "user-1", `{"name": "Read"}`)

		w := env.do(t, "GET", "/api/v1/habits/"+habit.ID+"/stats", "user-2", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
