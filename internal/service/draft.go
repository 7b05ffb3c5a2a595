package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// draftTTL bounds how long an unconfirmed analysis survives. The user
// either logs the meal soon after the photo or abandons it.
const draftTTL = time.Hour

// DraftService caches analysis results in Redis between the analyze call
// and the user's explicit "Log Meal" confirmation, so the confirmation
// does not re-run the vision pipeline.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(client *redis.Client) *DraftService {
	return &DraftService{redis: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("meal:draft:%s", id)
}

// SaveDraft stores an analysis result and returns its draft ID.
func (s *DraftService) SaveDraft(ctx context.Context, result *types.AnalysisResult) (string, error) {
	id := uuid.New().String()

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(id), data, draftTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return id, nil
}

// GetDraft retrieves a cached analysis result.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*types.AnalysisResult, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &result, nil
}

// DeleteDraft removes a draft, typically after the meal is logged.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
