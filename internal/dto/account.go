package dto

import (
	"time"

	"perkline/internal/models"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinkProductRequest sets or clears an account's product association.
// A null product ID clears it.
type LinkProductRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
}

// AccountResponse is the wire form of a linked account
type AccountResponse struct {
	ID              uuid.UUID  `json:"id"`
	InstitutionName string     `json:"institution_name"`
	DisplayName     string     `json:"display_name"`
	Mask            string     `json:"mask,omitempty"`
	Status          string     `json:"status"`
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewAccountResponse converts a linked account into its wire form
func NewAccountResponse(account *models.LinkedAccount) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		InstitutionName: account.InstitutionName,
		DisplayName:     account.DisplayName,
		Mask:            account.Mask,
		Status:          account.Status,
		ProductID:       account.ProductID,
		CreatedAt:       account.CreatedAt,
	}
}

// BenefitUsageResponse is the wire form of current-cycle benefit usage
type BenefitUsageResponse struct {
	AccountID   uuid.UUID `json:"account_id"`
	BenefitID   uuid.UUID `json:"benefit_id"`
	BenefitName string    `json:"benefit_name"`
	Timing      string    `json:"timing"`
	CycleStart  time.Time `json:"cycle_start"`
	CycleEnd    time.Time `json:"cycle_end"`
	Consumed    string    `json:"consumed"`
	MaxAmount   string    `json:"max_amount,omitempty"`
	Remaining   string    `json:"remaining,omitempty"`
}

// NewBenefitUsageResponse converts a usage record into its wire form.
// Remaining floors at zero; over-cap consumption never reads negative.
func NewBenefitUsageResponse(usage services.BenefitUsage) BenefitUsageResponse {
	resp := BenefitUsageResponse{
		AccountID:   usage.AccountID,
		BenefitID:   usage.BenefitID,
		BenefitName: usage.BenefitName,
		Timing:      usage.Timing,
		CycleStart:  usage.CycleStart,
		CycleEnd:    usage.CycleEnd,
		Consumed:    usage.Consumed.StringFixed(2),
	}
	if usage.MaxAmount != nil {
		resp.MaxAmount = usage.MaxAmount.StringFixed(2)
		remaining := usage.MaxAmount.Sub(usage.Consumed)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		resp.Remaining = remaining.StringFixed(2)
	}
	return resp
}
