package repositories

import (
	"errors"
	"fmt"

	"perkline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByUserSince returns the user's transactions strictly after the cursor
// key, across all of their linked accounts, ordered by (posted_at, id)
// ascending so the scanner sees a deterministic window.
func (r *transactionRepository) GetByUserSince(userID uuid.UUID, after models.ScanKey, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction

	query := r.db.
		Joins("JOIN linked_accounts ON linked_accounts.id = transactions.account_id").
		Where("linked_accounts.user_id = ? AND linked_accounts.deleted_at IS NULL", userID)

	if !after.IsZero() {
		query = query.Where(
			"transactions.posted_at > ? OR (transactions.posted_at = ? AND transactions.id > ?)",
			after.PostedAt, after.PostedAt, after.TransactionID,
		)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.
		Order("transactions.posted_at ASC, transactions.id ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions since cursor: %w", err)
	}

	return transactions, nil
}
