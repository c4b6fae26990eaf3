// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// AnalysisCache caches computed account analyses per user. Analysis is a
// pure function of the transaction window, so a short TTL plus invalidation
// on writes keeps cached results consistent enough. Implementations must
// treat every failure as a cache miss; analysis always falls back to
// recomputation.
type AnalysisCache interface {
	// Get returns the cached analyses for a user, or ok=false on a miss.
	Get(ctx context.Context, userID uuid.UUID) (analyses []*entity.AccountAnalysis, ok bool, err error)

	// Set stores the analyses for a user with the given TTL.
	Set(ctx context.Context, userID uuid.UUID, analyses []*entity.AccountAnalysis, ttl time.Duration) error

	// Invalidate drops any cached analyses for a user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
