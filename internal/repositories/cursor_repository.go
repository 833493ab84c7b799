package repositories

import (
	"errors"
	"fmt"

	"perkline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCursorRegression is returned when an advance would move the
	// watermark backwards.
	ErrCursorRegression = errors.New("cursor cannot move backwards")
)

// cursorRepository implements CursorRepositoryInterface
type cursorRepository struct {
	db *gorm.DB
}

// NewCursorRepository creates a new scan cursor repository
func NewCursorRepository(db *gorm.DB) CursorRepositoryInterface {
	return &cursorRepository{
		db: db,
	}
}

// Get returns the user's cursor, or nil when the user has never been scanned
func (r *cursorRepository) Get(userID uuid.UUID) (*models.ScanCursor, error) {
	var cursor models.ScanCursor
	if err := r.db.First(&cursor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scan cursor: %w", err)
	}
	return &cursor, nil
}

// Advance moves the watermark forward to key. The read and write happen in
// one database transaction so two concurrent advances cannot interleave and
// leave the cursor behind the higher of the two keys.
func (r *cursorRepository) Advance(userID uuid.UUID, key models.ScanKey) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.ScanCursor
		err := tx.First(&current, "user_id = ?", userID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read scan cursor: %w", err)
		}

		if err == nil && !key.After(current.Key()) {
			return ErrCursorRegression
		}

		return r.save(tx, userID, key)
	})
}

// Reset forces the cursor to key regardless of ordering
func (r *cursorRepository) Reset(userID uuid.UUID, key models.ScanKey) error {
	return r.save(r.db, userID, key)
}

func (r *cursorRepository) save(tx *gorm.DB, userID uuid.UUID, key models.ScanKey) error {
	cursor := models.ScanCursor{
		UserID:            userID,
		LastPostedAt:      key.PostedAt,
		LastTransactionID: key.TransactionID,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"last_posted_at", "last_transaction_id", "updated_at",
		}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to save scan cursor: %w", err)
	}
	return nil
}
