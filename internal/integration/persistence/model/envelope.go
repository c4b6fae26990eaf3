// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/domain/entity"
)

// EnvelopeModel represents the envelopes table in the database.
type EnvelopeModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(100);not null"`
	MonthlyBudget decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Owner    *UserModel     `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the EnvelopeModel.
func (EnvelopeModel) TableName() string {
	return "envelopes"
}

// ToEntity converts an EnvelopeModel to a domain Envelope entity.
func (m *EnvelopeModel) ToEntity() *entity.Envelope {
	return &entity.Envelope{
		ID:            m.ID,
		Name:          m.Name,
		MonthlyBudget: m.MonthlyBudget,
		CategoryID:    m.CategoryID,
		OwnerID:       m.OwnerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// EnvelopeFromEntity creates an EnvelopeModel from a domain Envelope entity.
func EnvelopeFromEntity(envelope *entity.Envelope) *EnvelopeModel {
	return &EnvelopeModel{
		ID:            envelope.ID,
		Name:          envelope.Name,
		MonthlyBudget: envelope.MonthlyBudget,
		CategoryID:    envelope.CategoryID,
		OwnerID:       envelope.OwnerID,
		CreatedAt:     envelope.CreatedAt,
		UpdatedAt:     envelope.UpdatedAt,
	}
}
