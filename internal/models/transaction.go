package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount = errors.New("transaction amount must be positive")
)

// Transaction is a financial event synced from the aggregation provider.
// It belongs to exactly one linked account and is immutable once stored;
// the scanner only annotates it through TransactionMatch side records.
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	MerchantName string          `gorm:"type:varchar(255)" json:"merchant_name,omitempty"`
	PostedAt     time.Time       `gorm:"not null;index" json:"posted_at"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`

	// Associations
	Account LinkedAccount `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.Description == "" {
		return errors.New("transaction description is required")
	}
	if t.PostedAt.IsZero() {
		return errors.New("posted date is required")
	}
	return nil
}

// MatchText returns the text the scanner matches keywords against: the
// merchant name when the provider supplied one, otherwise the raw description.
func (t *Transaction) MatchText() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Description
}

// ScanKey returns the transaction's position in the scan ordering
func (t *Transaction) ScanKey() ScanKey {
	return ScanKey{PostedAt: t.PostedAt, TransactionID: t.ID}
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
