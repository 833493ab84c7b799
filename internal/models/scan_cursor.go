package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanKey orders transactions for incremental scanning. Ordering is by posted
// timestamp with the transaction ID as tiebreaker, so the cursor is total and
// two transactions posted in the same instant still have a fixed order.
type ScanKey struct {
	PostedAt      time.Time
	TransactionID uuid.UUID
}

// IsZero reports whether the key is the beginning-of-time sentinel
func (k ScanKey) IsZero() bool {
	return k.PostedAt.IsZero() && k.TransactionID == uuid.Nil
}

// After reports whether k orders strictly after other
func (k ScanKey) After(other ScanKey) bool {
	if k.PostedAt.After(other.PostedAt) {
		return true
	}
	if k.PostedAt.Equal(other.PostedAt) {
		return k.TransactionID.String() > other.TransactionID.String()
	}
	return false
}

// ScanCursor is the per-user watermark bounding the transactions already
// considered by the scanner. It only moves forward; moving it back to rescan
// history is an explicit administrative override, not part of a normal run.
type ScanCursor struct {
	UserID            uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	LastPostedAt      time.Time `gorm:"not null" json:"last_posted_at"`
	LastTransactionID uuid.UUID `gorm:"type:uuid;not null" json:"last_transaction_id"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeSave hook for ScanCursor
func (c *ScanCursor) BeforeSave(tx *gorm.DB) error {
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Key returns the cursor position as a ScanKey
func (c *ScanCursor) Key() ScanKey {
	if c == nil {
		return ScanKey{}
	}
	return ScanKey{PostedAt: c.LastPostedAt, TransactionID: c.LastTransactionID}
}

// TableName returns the table name for ScanCursor
func (c *ScanCursor) TableName() string {
	return "scan_cursors"
}
