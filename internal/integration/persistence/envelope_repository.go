// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/persistence/model"
)

// envelopeRepository implements the adapter.EnvelopeRepository interface.
type envelopeRepository struct {
	db *gorm.DB
}

// NewEnvelopeRepository creates a new envelope repository instance.
func NewEnvelopeRepository(db *gorm.DB) adapter.EnvelopeRepository {
	return &envelopeRepository{
		db: db,
	}
}

// Create creates a new envelope in the database.
func (r *envelopeRepository) Create(ctx context.Context, envelope *entity.Envelope) error {
	envelopeModel := model.EnvelopeFromEntity(envelope)
	result := r.db.WithContext(ctx).Create(envelopeModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an envelope by its ID.
func (r *envelopeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Envelope, error) {
	var envelopeModel model.EnvelopeModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&envelopeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEnvelopeNotFound
		}
		return nil, result.Error
	}
	return envelopeModel.ToEntity(), nil
}

// FindByOwner retrieves all envelopes for a user. The ID ordering keeps
// name-based category matching deterministic when several envelope names
// contain the same category name.
func (r *envelopeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Envelope, error) {
	var envelopeModels []model.EnvelopeModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&envelopeModels)
	if result.Error != nil {
		return nil, result.Error
	}

	envelopes := make([]*entity.Envelope, len(envelopeModels))
	for i, em := range envelopeModels {
		envelopes[i] = em.ToEntity()
	}
	return envelopes, nil
}
