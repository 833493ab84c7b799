package repositories

import (
	"errors"
	"fmt"

	"perkline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("linked account not found")
)

// linkedAccountRepository implements LinkedAccountRepositoryInterface
type linkedAccountRepository struct {
	db *gorm.DB
}

// NewLinkedAccountRepository creates a new linked account repository
func NewLinkedAccountRepository(db *gorm.DB) LinkedAccountRepositoryInterface {
	return &linkedAccountRepository{
		db: db,
	}
}

// Create creates a new linked account
func (r *linkedAccountRepository) Create(account *models.LinkedAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create linked account: %w", err)
	}
	return nil
}

// GetByID retrieves a linked account by ID
func (r *linkedAccountRepository) GetByID(id uuid.UUID) (*models.LinkedAccount, error) {
	var account models.LinkedAccount
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get linked account: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves all of a user's linked accounts
func (r *linkedAccountRepository) GetByUserID(userID uuid.UUID) ([]models.LinkedAccount, error) {
	var accounts []models.LinkedAccount
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get linked accounts: %w", err)
	}
	return accounts, nil
}

// SetProductAssociation records the confirmed product for an account.
// Passing nil clears the association.
func (r *linkedAccountRepository) SetProductAssociation(accountID uuid.UUID, productID *uuid.UUID) error {
	result := r.db.Model(&models.LinkedAccount{}).
		Where("id = ?", accountID).
		Update("product_id", productID)

	if result.Error != nil {
		return fmt.Errorf("failed to set product association: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
