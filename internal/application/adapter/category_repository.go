// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByOwner retrieves all categories for a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Category, error)

	// FindByIDs retrieves the categories with the given IDs.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error)
}
