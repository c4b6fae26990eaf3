// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	"github.com/envelofy/backend/internal/integration/persistence/model"
)

// insightRepository implements the adapter.InsightRepository interface.
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository instance.
func NewInsightRepository(db *gorm.DB) adapter.InsightRepository {
	return &insightRepository{
		db: db,
	}
}

// ReplaceForAccount atomically replaces the stored insights for an account
// with a freshly generated set. Insights are a snapshot of the latest
// analysis, so stale rows are dropped rather than versioned.
func (r *insightRepository) ReplaceForAccount(ctx context.Context, accountID uuid.UUID, insights []*entity.SpendingInsight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.InsightModel{}, "account_id = ?", accountID).Error; err != nil {
			return err
		}

		if len(insights) == 0 {
			return nil
		}

		insightModels := make([]*model.InsightModel, len(insights))
		for i, insight := range insights {
			insightModels[i] = model.InsightFromEntity(insight)
		}
		return tx.Create(insightModels).Error
	})
}

// FindByAccount retrieves the stored insights for an account, newest first.
func (r *insightRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.SpendingInsight, error) {
	var insightModels []model.InsightModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id ASC").
		Find(&insightModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toInsightEntities(insightModels), nil
}

// FindByAccounts retrieves the stored insights across several accounts,
// newest first.
func (r *insightRepository) FindByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.SpendingInsight, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	var insightModels []model.InsightModel
	result := r.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Order("created_at DESC, id ASC").
		Find(&insightModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toInsightEntities(insightModels), nil
}

func toInsightEntities(insightModels []model.InsightModel) []*entity.SpendingInsight {
	insights := make([]*entity.SpendingInsight, len(insightModels))
	for i, im := range insightModels {
		insights[i] = im.ToEntity()
	}
	return insights
}
