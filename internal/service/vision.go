package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/nutrition"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// Pipeline errors, in taxonomy order: caller input, upstream transport,
// response shaping, content validation.
var (
	ErrImageFetch     = errors.New("failed to fetch image")
	ErrVisionUpstream = errors.New("vision API request failed")
	ErrParseResponse  = errors.New("could not parse food data from AI response")
	ErrUnidentifiable = errors.New("unable to identify food in the image, please try again with a clearer photo")
)

// Image formats the vision API accepts by URL; anything else gets
// re-encoded into a base64 data URI first.
var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

const visionSystemPrompt = "You are a nutrition expert that analyzes food images. Respond with ONLY a valid JSON object containing: food_name (string), is_packaged (boolean, true if food is in a package/has a nutrition label), food_description (brief description of what's in the image), ingredients (array of strings if visible), allergens (array of strings if identified on package or commonly associated with the food), health_insights (a brief analysis of health benefits or concerns), nutrition: { calories (number), protein (g, number), carbs (g, number), fat (g, number) }. If you see a nutrition label, extract the values directly from it. No text before or after the JSON."

const visionUserPrompt = "Analyze this food image. Identify if it's packaged food or fresh food. For packaged food, read the nutrition label and extract values. Provide the food name, description, ingredients list (if visible), allergen information, health insights, and complete nutrition information in JSON format."

// VisionService runs the meal photo analysis pipeline: fetch the image,
// normalize its encoding, ask the vision model for a JSON description,
// validate it, and attach a personalized recommendation.
type VisionService struct {
	apiKey        string
	apiURL        string
	model         string
	client        *http.Client
	jsonExtractor JSONExtractor
}

// NewVisionService creates a VisionService from application config.
func NewVisionService(cfg *config.Config) (*VisionService, error) {
	if cfg.VisionAPIKey == "" {
		return nil, fmt.Errorf("XAI_API_KEY or XAI_API_KEY_FILE must be set")
	}
	return &VisionService{
		apiKey: cfg.VisionAPIKey,
		apiURL: cfg.VisionAPIURL,
		model:  cfg.VisionModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chat completion request types, image content only.
type visionImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type visionContent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type visionRequest struct {
	Model    string          `json:"model"`
	Messages []visionMessage `json:"messages"`
}

// AnalyzeMealImage runs the full pipeline for one image URL. The profile
// context is optional; without it the result carries no recommendation.
func (s *VisionService) AnalyzeMealImage(ctx context.Context, imageURL string, profile *types.AnalyzeProfileContext) (*types.AnalysisResult, error) {
	modelInput, err := s.normalizeImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	content, err := s.callVisionModel(ctx, modelInput)
	if err != nil {
		return nil, err
	}

	var mealData types.MealData
	if err := s.jsonExtractor.Unmarshal(content, &mealData); err != nil {
		log.Printf("[VisionService] unparseable model reply: %v", err)
		return nil, ErrParseResponse
	}

	// Do not fabricate placeholder nutrition: a reply without a name or
	// nutrition block is a failed analysis the caller must see.
	if mealData.FoodName == "" || mealData.Nutrition == nil {
		return nil, ErrUnidentifiable
	}

	result := &types.AnalysisResult{MealData: &mealData}
	if profile != nil {
		result.Recommendation = buildMealRecommendation(profile, &mealData)
	}
	return result, nil
}

// normalizeImage fetches the image and decides what the model sees: the
// original URL for supported formats, or a base64 data URI otherwise.
func (s *VisionService) normalizeImage(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d %s", ErrImageFetch, resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if supportedImageTypes[contentType] {
		return imageURL, nil
	}

	log.Printf("[VisionService] re-encoding %s image as data URI", contentType)
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// callVisionModel submits the single chat request and returns the raw
// reply content. One round trip, no retries: a failure is terminal for
// this request.
func (s *VisionService) callVisionModel(ctx context.Context, imageRef string) (string, error) {
	reqBody := visionRequest{
		Model: s.model,
		Messages: []visionMessage{
			{Role: "system", Content: visionSystemPrompt},
			{Role: "user", Content: []visionContent{
				{Type: "image_url", ImageURL: &visionImageURL{URL: imageRef, Detail: "high"}},
				{Type: "text", Text: visionUserPrompt},
			}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVisionUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[VisionService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d - %s", ErrVisionUpstream, resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrVisionUpstream)
	}

	return result.Choices[0].Message.Content, nil
}

// buildMealRecommendation attaches goal-conditioned guidance to an
// analyzed meal using the profile context sent with the request.
func buildMealRecommendation(profile *types.AnalyzeProfileContext, meal *types.MealData) *nutrition.Recommendation {
	goal := nutrition.ParseGoal(profile.Goal)

	target := profile.DailyCalorieTarget
	if target <= 0 {
		target = 2000
	}
	remaining := target - profile.TotalCaloriesConsumed - int(meal.Nutrition.Calories)

	n := meal.Nutrition
	return &nutrition.Recommendation{
		Text:               fmt.Sprintf("Based on your %s goal and this meal:", profile.Goal),
		Suggestion:         nutrition.MealSuggestion(goal, remaining, n.Carbs, n.Protein, n.Fat),
		NutritionalBalance: nutrition.AssessNutritionalBalance(n.Carbs, n.Protein, n.Fat, goal),
	}
}
