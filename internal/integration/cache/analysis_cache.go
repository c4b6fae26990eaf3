// Package cache implements the analysis cache on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
)

// analysisKeyPrefix namespaces analysis entries in the shared Redis instance.
const analysisKeyPrefix = "analysis:user:"

// analysisCache implements adapter.AnalysisCache backed by Redis with a
// JSON payload per user. A corrupt payload counts as a miss so a bad
// serialization can never wedge analysis.
type analysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates a new Redis-backed analysis cache.
func NewAnalysisCache(client *redis.Client) adapter.AnalysisCache {
	return &analysisCache{
		client: client,
	}
}

// Get returns the cached analyses for a user, or ok=false on a miss.
func (c *analysisCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.AccountAnalysis, bool, error) {
	payload, err := c.client.Get(ctx, analysisKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read analysis cache: %w", err)
	}

	var analyses []*entity.AccountAnalysis
	if err := json.Unmarshal(payload, &analyses); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return analyses, true, nil
}

// Set stores the analyses for a user with the given TTL.
func (c *analysisCache) Set(ctx context.Context, userID uuid.UUID, analyses []*entity.AccountAnalysis, ttl time.Duration) error {
	payload, err := json.Marshal(analyses)
	if err != nil {
		return fmt.Errorf("failed to encode analysis for cache: %w", err)
	}

	if err := c.client.Set(ctx, analysisKey(userID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return nil
}

// Invalidate drops any cached analyses for a user.
func (c *analysisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, analysisKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analysis cache: %w", err)
	}
	return nil
}

func analysisKey(userID uuid.UUID) string {
	return analysisKeyPrefix + userID.String()
}
