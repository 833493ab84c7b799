package dto

import (
	"time"

	"perkline/internal/services"
)

// CursorInfo is the wire form of a scan cursor position
type CursorInfo struct {
	LastPostedAt      time.Time `json:"last_posted_at"`
	LastTransactionID string    `json:"last_transaction_id"`
}

// ScanResponse summarizes one scanner run
type ScanResponse struct {
	MatchedCount int         `json:"matched_count"`
	SkippedCount int         `json:"skipped_count"`
	OverCapCount int         `json:"over_cap_count"`
	Cursor       *CursorInfo `json:"cursor,omitempty"`
}

// NewScanResponse converts a scan summary into its wire form
func NewScanResponse(summary *services.ScanSummary) ScanResponse {
	resp := ScanResponse{
		MatchedCount: summary.MatchedCount,
		SkippedCount: summary.SkippedCount,
		OverCapCount: summary.OverCapCount,
	}
	if !summary.NewCursor.IsZero() {
		resp.Cursor = &CursorInfo{
			LastPostedAt:      summary.NewCursor.PostedAt,
			LastTransactionID: summary.NewCursor.TransactionID.String(),
		}
	}
	return resp
}
