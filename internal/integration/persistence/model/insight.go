// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/envelofy/backend/internal/domain/entity"
)

// InsightModel represents the insights table in the database.
type InsightModel struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type                  string         `gorm:"type:varchar(30);not null"`
	Message               string         `gorm:"type:text;not null"`
	Confidence            float64        `gorm:"type:decimal(4,3);not null"`
	RelatedTransactionIDs pq.StringArray `gorm:"type:uuid[]"`
	CreatedAt             time.Time      `gorm:"not null"`

	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the InsightModel.
func (InsightModel) TableName() string {
	return "insights"
}

// ToEntity converts an InsightModel to a domain SpendingInsight entity.
// Malformed transaction IDs are skipped rather than failing the read.
func (m *InsightModel) ToEntity() *entity.SpendingInsight {
	var related []uuid.UUID
	for _, raw := range m.RelatedTransactionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		related = append(related, id)
	}

	return &entity.SpendingInsight{
		ID:                    m.ID,
		AccountID:             m.AccountID,
		Type:                  entity.InsightType(m.Type),
		Message:               m.Message,
		Confidence:            m.Confidence,
		RelatedTransactionIDs: related,
		CreatedAt:             m.CreatedAt,
	}
}

// InsightFromEntity creates an InsightModel from a domain SpendingInsight entity.
func InsightFromEntity(insight *entity.SpendingInsight) *InsightModel {
	related := make(pq.StringArray, len(insight.RelatedTransactionIDs))
	for i, id := range insight.RelatedTransactionIDs {
		related[i] = id.String()
	}

	return &InsightModel{
		ID:                    insight.ID,
		AccountID:             insight.AccountID,
		Type:                  string(insight.Type),
		Message:               insight.Message,
		Confidence:            insight.Confidence,
		RelatedTransactionIDs: related,
		CreatedAt:             insight.CreatedAt,
	}
}
