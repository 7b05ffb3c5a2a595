package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

const analyzeReply = "```json\n" + `{
  "food_name": "Margherita Pizza",
  "is_packaged": false,
  "food_description": "Pizza with tomato and mozzarella",
  "nutrition": {"calories": 850, "protein": 30, "carbs": 95, "fat": 35}
}` + "\n```"

// newAnalyzeEnv wires the analyze routes against fake upstreams: an
// image host and a chat-completions endpoint returning replyContent.
func newAnalyzeEnv(t *testing.T, replyContent string) (*testEnv, string) {
	t.Helper()

	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("image-bytes"))
	}))
	t.Cleanup(imgSrv.Close)

	visionSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices": [{"message": {"content": %q}}]}`, replyContent)
	}))
	t.Cleanup(visionSrv.Close)

	visionService, err := service.NewVisionService(&config.Config{
		VisionAPIKey: "test-key",
		VisionAPIURL: visionSrv.URL,
		VisionModel:  "grok-2-vision-latest",
	})
	require.NoError(t, err)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAnalyzeHandler(visionService, nil, nil).RegisterRoutes(v1)

	return &testEnv{router: router}, imgSrv.URL
}

func TestAnalyzeMealEndpoint(t *testing.T) {
	t.Run("successful analysis", func(t *testing.T) {
		env, imageURL := newAnalyzeEnv(t, analyzeReply)

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/analyze", "", types.AnalyzeMealRequest{
			ImageURL: imageURL,
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])

		// payload keys sit next to the success flag, no envelope
		meal := body["mealData"].(map[string]interface{})
		assert.Equal(t, "Margherita Pizza", meal["food_name"])
		nutrition := meal["nutrition"].(map[string]interface{})
		assert.Equal(t, float64(850), nutrition["calories"])
		assert.Contains(t, body, "recommendation")
		assert.Nil(t, body["recommendation"])
	})

	t.Run("missing imageUrl", func(t *testing.T) {
		env, _ := newAnalyzeEnv(t, analyzeReply)

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/analyze", "", map[string]string{})
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["error"])
	})

	t.Run("prose reply reports a parse failure", func(t *testing.T) {
		env, imageURL := newAnalyzeEnv(t, "I see a plate but no identifiable food.")

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/analyze", "", types.AnalyzeMealRequest{
			ImageURL: imageURL,
		})
		require.Equal(t, http.StatusInternalServerError, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "could not parse food data")
	})

	t.Run("unfetchable image is an upstream failure", func(t *testing.T) {
		env, _ := newAnalyzeEnv(t, analyzeReply)

		deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(deadSrv.Close)

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/analyze", "", types.AnalyzeMealRequest{
			ImageURL: deadSrv.URL,
		})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	})

	t.Run("unconfigured vision service", func(t *testing.T) {
		router := gin.New()
		v1 := router.Group("/api/v1")
		NewAnalyzeHandler(nil, nil, nil).RegisterRoutes(v1)
		env := &testEnv{router: router}

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/analyze", "", types.AnalyzeMealRequest{
			ImageURL: "http://example.com/x.jpg",
		})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSearchMealEndpoint(t *testing.T) {
	newSearchEnv := func(t *testing.T, handler http.HandlerFunc) *testEnv {
		t.Helper()
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		searchService, err := service.NewNutritionSearchService(&config.Config{
			NutritionAPIKey: "test-key",
			NutritionAPIURL: srv.URL,
		})
		require.NoError(t, err)

		router := gin.New()
		v1 := router.Group("/api/v1")
		NewAnalyzeHandler(nil, searchService, nil).RegisterRoutes(v1)
		return &testEnv{router: router}
	}

	t.Run("successful lookup", func(t *testing.T) {
		env := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items": [{"name": "banana", "calories": 105, "protein_g": 1.3, "carbohydrates_total_g": 27, "fat_total_g": 0.4}]}`)
		})

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/search", "", types.MealSearchRequest{Query: "one banana"})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		meal := body["mealData"].(map[string]interface{})
		assert.Equal(t, "one banana", meal["name"])
		assert.Equal(t, float64(105), meal["calories"])
	})

	t.Run("no match flags success false with a message", func(t *testing.T) {
		env := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items": []}`)
		})

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/search", "", types.MealSearchRequest{Query: "xyzzy"})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "no nutrition data found for this food", body["message"])
	})

	t.Run("missing query", func(t *testing.T) {
		env := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {})

		w := env.doJSON(t, http.MethodPost, "/api/v1/meals/search", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
