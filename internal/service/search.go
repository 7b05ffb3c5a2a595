package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// ErrNoNutritionData means the query matched nothing in the database.
var ErrNoNutritionData = errors.New("no nutrition data found for this food")

// NutritionSearchService answers text lookups against the CalorieNinjas
// nutrition database.
type NutritionSearchService struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewNutritionSearchService(cfg *config.Config) (*NutritionSearchService, error) {
	if cfg.NutritionAPIKey == "" {
		return nil, fmt.Errorf("CALORIE_NINJAS_API_KEY must be set")
	}
	return &NutritionSearchService{
		apiKey: cfg.NutritionAPIKey,
		apiURL: cfg.NutritionAPIURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// nutritionItem mirrors one item of the CalorieNinjas response.
type nutritionItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbohydrates_total_g"`
	Fat      float64 `json:"fat_total_g"`
}

// Search looks up a free-text food description and returns the first
// matching item's nutrition, keeping the caller's query as the name.
func (s *NutritionSearchService) Search(ctx context.Context, query string) (*types.SearchMealData, error) {
	endpoint := fmt.Sprintf("%s?query=%s", s.apiURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutrition API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[NutritionSearch] API error %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("nutrition API returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []nutritionItem `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, ErrNoNutritionData
	}

	item := result.Items[0]
	return &types.SearchMealData{
		Name:     query,
		Calories: item.Calories,
		Protein:  item.Protein,
		Carbs:    item.Carbs,
		Fat:      item.Fat,
	}, nil
}
