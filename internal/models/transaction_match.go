package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionMatch links a transaction to the benefit it satisfies. A
// transaction has at most one active match (unique index on TransactionID);
// writes are idempotent upserts so re-scanning a batch is harmless.
type TransactionMatch struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	BenefitID     uuid.UUID `gorm:"type:uuid;not null;index" json:"benefit_id"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	KeywordHits   int       `gorm:"not null;default:0" json:"keyword_hits"`
	OverCap       bool      `gorm:"not null;default:false" json:"over_cap"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Benefit     Benefit     `gorm:"foreignKey:BenefitID" json:"-"`
}

// BeforeCreate hook for TransactionMatch
func (m *TransactionMatch) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return m.Validate()
}

// Validate validates the match fields
func (m *TransactionMatch) Validate() error {
	if m.TransactionID == uuid.Nil {
		return errors.New("transaction ID is required")
	}
	if m.BenefitID == uuid.Nil {
		return errors.New("benefit ID is required")
	}
	if m.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}
	return nil
}

// TableName returns the table name for TransactionMatch
func (m *TransactionMatch) TableName() string {
	return "transaction_matches"
}
