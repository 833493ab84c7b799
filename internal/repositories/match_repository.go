package repositories

import (
	"errors"
	"fmt"
	"time"

	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

// matchRepository implements MatchRepositoryInterface
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *gorm.DB) MatchRepositoryInterface {
	return &matchRepository{
		db: db,
	}
}

// Upsert writes a match keyed by transaction ID. A second write for the same
// transaction updates the benefit, keyword hit count and over-cap flag in
// place, so replaying a scan window produces the same rows.
func (r *matchRepository) Upsert(match *models.TransactionMatch) error {
	if err := match.Validate(); err != nil {
		return err
	}
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "transaction_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"benefit_id", "account_id", "keyword_hits", "over_cap", "updated_at",
		}),
	}).Create(match).Error
	if err != nil {
		return fmt.Errorf("failed to upsert match: %w", err)
	}
	return nil
}

// GetByTransactionID retrieves the match for a transaction
func (r *matchRepository) GetByTransactionID(transactionID uuid.UUID) (*models.TransactionMatch, error) {
	var match models.TransactionMatch
	if err := r.db.First(&match, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

// CountByUser counts matches across all of a user's linked accounts
func (r *matchRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TransactionMatch{}).
		Joins("JOIN linked_accounts ON linked_accounts.id = transaction_matches.account_id").
		Where("linked_accounts.user_id = ? AND linked_accounts.deleted_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// ListByUser returns all matches across a user's linked accounts, newest
// transaction first.
func (r *matchRepository) ListByUser(userID uuid.UUID) ([]models.TransactionMatch, error) {
	var matches []models.TransactionMatch
	err := r.db.
		Joins("JOIN linked_accounts ON linked_accounts.id = transaction_matches.account_id").
		Joins("JOIN transactions ON transactions.id = transaction_matches.transaction_id").
		Where("linked_accounts.user_id = ? AND linked_accounts.deleted_at IS NULL", userID).
		Order("transactions.posted_at DESC, transactions.id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// SumMatchedAmount totals matched transaction amounts for a benefit on one
// account inside the half-open window [start, end). Usage is derived from the
// match rows at query time rather than kept as a running counter, so it can
// never drift from the matches themselves.
func (r *matchRepository) SumMatchedAmount(benefitID, accountID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.Model(&models.TransactionMatch{}).
		Select("COALESCE(SUM(transactions.amount), 0) AS total").
		Joins("JOIN transactions ON transactions.id = transaction_matches.transaction_id").
		Where("transaction_matches.benefit_id = ? AND transaction_matches.account_id = ?", benefitID, accountID).
		Where("transactions.posted_at >= ? AND transactions.posted_at < ?", start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum matched amount: %w", err)
	}
	return result.Total, nil
}

// SumMatchedAmountThrough totals matched transaction amounts the same way as
// SumMatchedAmount but only counts transactions at or before the given scan
// key. A scan run uses this to read cycle usage as it stood when the run
// started, so matches written by an earlier interrupted attempt over the same
// backlog are not counted twice.
func (r *matchRepository) SumMatchedAmountThrough(benefitID, accountID uuid.UUID, start, end time.Time, through models.ScanKey) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.Model(&models.TransactionMatch{}).
		Select("COALESCE(SUM(transactions.amount), 0) AS total").
		Joins("JOIN transactions ON transactions.id = transaction_matches.transaction_id").
		Where("transaction_matches.benefit_id = ? AND transaction_matches.account_id = ?", benefitID, accountID).
		Where("transactions.posted_at >= ? AND transactions.posted_at < ?", start, end).
		Where("(transactions.posted_at < ?) OR (transactions.posted_at = ? AND transactions.id <= ?)",
			through.PostedAt, through.PostedAt, through.TransactionID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum matched amount: %w", err)
	}
	return result.Total, nil
}
