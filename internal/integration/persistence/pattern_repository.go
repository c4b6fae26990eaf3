// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/persistence/model"
)

// patternRepository implements the adapter.PatternRepository interface.
// Patterns have no owner column of their own; owner scoping always goes
// through the category they point at.
type patternRepository struct {
	db *gorm.DB
}

// NewPatternRepository creates a new pattern repository instance.
func NewPatternRepository(db *gorm.DB) adapter.PatternRepository {
	return &patternRepository{
		db: db,
	}
}

// Create creates a new pattern in the database. Duplicate detection is
// owner-wide, not category-wide: the same value+kind must not point at two
// categories of the same user, otherwise suggestions would double-count it.
func (r *patternRepository) Create(ctx context.Context, pattern *entity.Pattern) error {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.PatternModel{}).
		Joins("JOIN categories ON categories.id = patterns.category_id").
		Where("patterns.value = ? AND patterns.kind = ?", pattern.Value, string(pattern.Kind)).
		Where("categories.owner_id = (SELECT owner_id FROM categories WHERE id = ?)", pattern.CategoryID).
		Count(&count)
	if result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return domainerror.ErrPatternExists
	}

	patternModel := model.PatternFromEntity(pattern)
	if err := r.db.WithContext(ctx).Create(patternModel).Error; err != nil {
		return err
	}
	return nil
}

// FindByID retrieves a pattern by its ID.
func (r *patternRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pattern, error) {
	var patternModel model.PatternModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&patternModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPatternNotFound
		}
		return nil, result.Error
	}
	return patternModel.ToEntity(), nil
}

// FindByOwner retrieves every pattern attached to any of the owner's
// categories, regardless of confidence.
func (r *patternRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pattern, error) {
	var patternModels []model.PatternModel
	result := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = patterns.category_id").
		Where("categories.owner_id = ?", ownerID).
		Order("patterns.id ASC").
		Find(&patternModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPatternEntities(patternModels), nil
}

// FindConfidentByOwner retrieves the owner's patterns whose confidence is at
// least minConfidence. The comparison is done without division so patterns
// that never fired (match_count = 0) are excluded instead of dividing by
// zero.
func (r *patternRepository) FindConfidentByOwner(ctx context.Context, ownerID uuid.UUID, minConfidence float64) ([]*entity.Pattern, error) {
	var patternModels []model.PatternModel
	result := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = patterns.category_id").
		Where("categories.owner_id = ?", ownerID).
		Where("patterns.match_count > 0 AND patterns.correct_count >= ? * patterns.match_count", minConfidence).
		Order("patterns.id ASC").
		Find(&patternModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPatternEntities(patternModels), nil
}

// FindByCategory retrieves all patterns for one category.
func (r *patternRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Pattern, error) {
	var patternModels []model.PatternModel
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&patternModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPatternEntities(patternModels), nil
}

// FindByOwnerAndKind retrieves the owner's patterns of one kind.
func (r *patternRepository) FindByOwnerAndKind(ctx context.Context, ownerID uuid.UUID, kind entity.PatternKind) ([]*entity.Pattern, error) {
	var patternModels []model.PatternModel
	result := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = patterns.category_id").
		Where("categories.owner_id = ? AND patterns.kind = ?", ownerID, string(kind)).
		Order("patterns.id ASC").
		Find(&patternModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPatternEntities(patternModels), nil
}

// IncrementCounters bumps match_count for every pattern in matched and
// correct_count for every pattern in correct. The increments run as SQL
// expressions so concurrent feedback never loses an update to a stale read.
func (r *patternRepository) IncrementCounters(ctx context.Context, matched []uuid.UUID, correct []uuid.UUID) error {
	if len(matched) == 0 && len(correct) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(matched) > 0 {
			result := tx.Model(&model.PatternModel{}).
				Where("id IN ?", matched).
				Updates(map[string]interface{}{
					"match_count": gorm.Expr("match_count + 1"),
					"updated_at":  now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		if len(correct) > 0 {
			result := tx.Model(&model.PatternModel{}).
				Where("id IN ?", correct).
				Updates(map[string]interface{}{
					"correct_count": gorm.Expr("correct_count + 1"),
					"updated_at":    now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// Delete removes a pattern from the database.
func (r *patternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PatternModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toPatternEntities(patternModels []model.PatternModel) []*entity.Pattern {
	patterns := make([]*entity.Pattern, len(patternModels))
	for i, pm := range patternModels {
		patterns[i] = pm.ToEntity()
	}
	return patterns
}
