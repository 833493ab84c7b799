package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LinkedAccountStatusActive   = "active"
	LinkedAccountStatusInactive = "inactive"
	LinkedAccountStatusUnlinked = "unlinked"
)

var (
	ErrInvalidLinkedAccountStatus = errors.New("invalid linked account status")
)

// LinkedAccount is a bank or card account a user connected through the
// aggregation provider. The product association is set after a resolver
// candidate has been confirmed; the matching engine reads it, never writes it.
type LinkedAccount struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	InstitutionName string     `gorm:"type:varchar(120)" json:"institution_name"`
	DisplayName     string     `gorm:"type:varchar(200);not null" json:"display_name"`
	Mask            string     `gorm:"type:varchar(8)" json:"mask,omitempty"`
	ProductID       *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Associations
	Product      *CardProduct  `gorm:"foreignKey:ProductID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for LinkedAccount
func (a *LinkedAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = LinkedAccountStatusActive
	}
	return a.Validate()
}

// Validate validates the linked account fields
func (a *LinkedAccount) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if a.DisplayName == "" {
		return errors.New("display name is required")
	}
	if !IsValidLinkedAccountStatus(a.Status) {
		return ErrInvalidLinkedAccountStatus
	}
	return nil
}

// HasProduct reports whether the account has a confirmed product association
func (a *LinkedAccount) HasProduct() bool {
	return a.ProductID != nil && *a.ProductID != uuid.Nil
}

// IsActive returns true if the account is active
func (a *LinkedAccount) IsActive() bool {
	return a.Status == LinkedAccountStatusActive
}

// TableName returns the table name for LinkedAccount
func (a *LinkedAccount) TableName() string {
	return "linked_accounts"
}

// IsValidLinkedAccountStatus checks if the status is valid
func IsValidLinkedAccountStatus(status string) bool {
	switch status {
	case LinkedAccountStatusActive, LinkedAccountStatusInactive, LinkedAccountStatusUnlinked:
		return true
	default:
		return false
	}
}
