// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// PatternRepository defines the interface for pattern persistence. Patterns
// are the only durable state owned by the classification core, so counter
// updates must be atomic at the storage level.
type PatternRepository interface {
	// Create creates a new pattern. Returns ErrPatternExists when a pattern
	// with the same value and kind already exists for the owner.
	Create(ctx context.Context, pattern *entity.Pattern) error

	// FindByID retrieves a pattern by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Pattern, error)

	// FindByOwner retrieves every pattern attached to any of the owner's
	// categories, regardless of confidence.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pattern, error)

	// FindConfidentByOwner retrieves the owner's patterns whose confidence
	// (correct_count/match_count) is at least minConfidence. Patterns that
	// have never fired are excluded.
	FindConfidentByOwner(ctx context.Context, ownerID uuid.UUID, minConfidence float64) ([]*entity.Pattern, error)

	// FindByCategory retrieves all patterns for one category.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Pattern, error)

	// FindByOwnerAndKind retrieves the owner's patterns of one kind.
	FindByOwnerAndKind(ctx context.Context, ownerID uuid.UUID, kind entity.PatternKind) ([]*entity.Pattern, error)

	// IncrementCounters bumps match_count for every pattern in matched and
	// correct_count for every pattern in correct, atomically per row.
	IncrementCounters(ctx context.Context, matched []uuid.UUID, correct []uuid.UUID) error

	// Delete removes a pattern.
	Delete(ctx context.Context, id uuid.UUID) error
}
