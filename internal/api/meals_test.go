package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

func TestLogMealEndpoint(t *testing.T) {
	t.Run("valid meal is created", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.registerUser(t, "meals@example.com")

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals", token, types.LogMealRequest{
			Name:     "Grilled Chicken Salad",
			Calories: 400,
			Protein:  35,
			Carbs:    15,
			Fat:      20,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		meal := body["meal"].(map[string]interface{})
		assert.Equal(t, "Grilled Chicken Salad", meal["name"])
		assert.NotEmpty(t, meal["id"])
		assert.NotEmpty(t, meal["consumed_at"])

		score := body["health_score"].(map[string]interface{})
		// base 70 plus the fat-share bonus
		assert.Equal(t, float64(80), score["score"])
		assert.Equal(t, "Healthy Choice", score["label"])
		assert.Empty(t, body["allergen_warnings"])
	})

	t.Run("allergen match is flagged and penalized", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.registerUser(t, "allergy@example.com")

		w := env.doJSON(t, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
			"allergies": []string{"peanut"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.doJSON(t, http.MethodPost, "/api/v1/meals", token, types.LogMealRequest{
			Name:        "Peanut butter toast",
			Calories:    350,
			Protein:     12,
			Carbs:       30,
			Fat:         18,
			Ingredients: []string{"peanut butter", "bread"},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		warnings := body["allergen_warnings"].([]interface{})
		require.Len(t, warnings, 1)
		assert.Equal(t, "peanut", warnings[0])
	})

	t.Run("missing name is rejected by binding", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.registerUser(t, "noname@example.com")

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals", token, map[string]interface{}{
			"calories": 400,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative macros are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.registerUser(t, "negative@example.com")

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals", token, types.LogMealRequest{
			Name:     "Broken",
			Calories: 400,
			Protein:  -5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed consumed_at", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.registerUser(t, "badtime@example.com")

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals", token, types.LogMealRequest{
			Name:       "Lunch",
			Calories:   500,
			ConsumedAt: "yesterday",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMealHistoryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "history@example.com")

	now := time.Now()
	for _, meal := range []types.LogMealRequest{
		{Name: "Breakfast", Calories: 350, Protein: 12, ConsumedAt: now.Add(-3 * time.Hour).Format(time.RFC3339)},
		{Name: "Lunch", Calories: 650, Protein: 40, ConsumedAt: now.Format(time.RFC3339)},
	} {
		w := env.doJSON(t, http.MethodPost, "/api/v1/meals", token, meal)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("list today's meals newest first", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/api/v1/meals", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		meals := decodeBody(t, w)["meals"].([]interface{})
		require.Len(t, meals, 2)
		assert.Equal(t, "Lunch", meals[0].(map[string]interface{})["name"])
	})

	t.Run("daily summary aggregates totals", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/api/v1/meals/daily", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(1000), body["total_calories"])
		assert.Equal(t, float64(2), body["meal_count"])
	})

	t.Run("empty day yields zeros", func(t *testing.T) {
		lastWeek := now.AddDate(0, 0, -7).Format("2006-01-02")
		w := env.doJSON(t, http.MethodGet, "/api/v1/meals/daily?date="+lastWeek, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Zero(t, body["total_calories"])
		assert.Zero(t, body["meal_count"])
	})

	t.Run("bad date parameter", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/api/v1/meals/daily?date=today", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("weekly insights cover seven days", func(t *testing.T) {
		w := env.doJSON(t, http.MethodGet, "/api/v1/meals/weekly", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Len(t, body["days"].([]interface{}), 7)
		assert.NotEmpty(t, body["calorie_advice"])
	})
}

func TestDashboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "dash@example.com")

	w := env.doJSON(t, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"age":    25,
		"weight": 70,
		"height": 175,
		"gender": "male",
		"goal":   "build muscle",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/v1/meals", token, types.LogMealRequest{
		Name:     "Protein bowl",
		Calories: 600,
		Protein:  45,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	today := body["today"].(map[string]interface{})
	assert.Equal(t, float64(600), today["total_calories"])

	metrics := body["metrics"].(map[string]interface{})
	assert.InDelta(t, 1673.75, metrics["bmr"].(float64), 0.01)
	assert.Equal(t, float64(2894), metrics["goal_calories"])
	assert.NotNil(t, metrics["recommendation"])
}
