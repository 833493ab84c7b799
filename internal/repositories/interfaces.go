package repositories

import (
	"time"

	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogRepositoryInterface defines read/write access to the card product catalog.
// The matching engine only reads; writes come from administrative handlers.
type CatalogRepositoryInterface interface {
	CreateWithBenefits(product *models.CardProduct, benefits []models.Benefit) error
	GetByID(id uuid.UUID) (*models.CardProduct, error)
	ListActive() ([]models.CardProduct, error)
	ExistsByIssuerAndName(issuerName, productName string) (bool, error)
	Deactivate(id uuid.UUID) error
}

// LinkedAccountRepositoryInterface defines the contract for linked account operations
type LinkedAccountRepositoryInterface interface {
	Create(account *models.LinkedAccount) error
	GetByID(id uuid.UUID) (*models.LinkedAccount, error)
	GetByUserID(userID uuid.UUID) ([]models.LinkedAccount, error)
	SetProductAssociation(accountID uuid.UUID, productID *uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	// GetByUserSince returns the user's transactions with a scan key strictly
	// after the given cursor key, ordered by (posted_at, id) ascending.
	GetByUserSince(userID uuid.UUID, after models.ScanKey, limit int) ([]models.Transaction, error)
}

// MatchRepositoryInterface defines the contract for transaction match operations
type MatchRepositoryInterface interface {
	// Upsert writes a match, idempotent by transaction ID: re-writing the
	// same transaction updates the existing row instead of duplicating it.
	Upsert(match *models.TransactionMatch) error
	GetByTransactionID(transactionID uuid.UUID) (*models.TransactionMatch, error)
	CountByUser(userID uuid.UUID) (int64, error)
	ListByUser(userID uuid.UUID) ([]models.TransactionMatch, error)
	// SumMatchedAmount totals the amounts of matched transactions for a
	// benefit on one account whose posted date falls inside [start, end).
	SumMatchedAmount(benefitID, accountID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	// SumMatchedAmountThrough is SumMatchedAmount restricted to transactions
	// at or before the given scan key. A zero key sums nothing.
	SumMatchedAmountThrough(benefitID, accountID uuid.UUID, start, end time.Time, through models.ScanKey) (decimal.Decimal, error)
}

// CursorRepositoryInterface defines the contract for scan cursor operations
type CursorRepositoryInterface interface {
	// Get returns the user's cursor, or nil when the user has never been scanned
	Get(userID uuid.UUID) (*models.ScanCursor, error)
	// Advance moves the cursor forward to the given key. Moving backwards is
	// rejected so the watermark stays monotone.
	Advance(userID uuid.UUID, key models.ScanKey) error
	// Reset forces the cursor to a given key regardless of ordering. Explicit
	// override used to re-scan history; never called by the scanner itself.
	Reset(userID uuid.UUID, key models.ScanKey) error
}
