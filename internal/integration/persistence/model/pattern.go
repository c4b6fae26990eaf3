// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// PatternModel represents the patterns table in the database. The unique
// index on (value, kind, category_id) backs duplicate detection at the
// storage level; owner scoping goes through the category.
type PatternModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_patterns_value_kind_category"`
	Kind         string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_patterns_value_kind_category"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_patterns_value_kind_category"`
	MatchCount   int       `gorm:"not null;default:0"`
	CorrectCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the PatternModel.
func (PatternModel) TableName() string {
	return "patterns"
}

// ToEntity converts a PatternModel to a domain Pattern entity.
func (m *PatternModel) ToEntity() *entity.Pattern {
	return &entity.Pattern{
		ID:           m.ID,
		Value:        m.Value,
		Kind:         entity.PatternKind(m.Kind),
		CategoryID:   m.CategoryID,
		MatchCount:   m.MatchCount,
		CorrectCount: m.CorrectCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PatternFromEntity creates a PatternModel from a domain Pattern entity.
func PatternFromEntity(pattern *entity.Pattern) *PatternModel {
	return &PatternModel{
		ID:           pattern.ID,
		Value:        pattern.Value,
		Kind:         string(pattern.Kind),
		CategoryID:   pattern.CategoryID,
		MatchCount:   pattern.MatchCount,
		CorrectCount: pattern.CorrectCount,
		CreatedAt:    pattern.CreatedAt,
		UpdatedAt:    pattern.UpdatedAt,
	}
}
