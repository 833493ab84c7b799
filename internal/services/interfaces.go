package services

import (
	"time"

	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResolverServiceInterface ranks catalog products against an observed
// account name
type ProductResolverServiceInterface interface {
	// ResolveProduct scores every active catalog product against the
	// account's display and institution names and returns candidates in
	// descending score order. An empty catalog yields an empty slice.
	ResolveProduct(accountName, institutionName string) ([]ProductCandidate, error)
}

// BenefitScanServiceInterface runs the incremental transaction scanner
type BenefitScanServiceInterface interface {
	// ScanUser matches the user's unscanned transactions against the
	// benefits of their linked products and advances the scan cursor.
	ScanUser(userID uuid.UUID) (*ScanSummary, error)
}

// BenefitUsageServiceInterface reports current-cycle benefit consumption
type BenefitUsageServiceInterface interface {
	// GetUsage returns per-benefit usage for each of the user's accounts
	// with a product association, for the cycle containing now.
	GetUsage(userID uuid.UUID, now time.Time) ([]BenefitUsage, error)
}

// CatalogServiceInterface owns administrative catalog writes
type CatalogServiceInterface interface {
	// CreateProduct creates a product with its benefits, rejecting
	// duplicates by issuer and product name.
	CreateProduct(product *models.CardProduct, benefits []models.Benefit) error
	ListActiveProducts() ([]models.CardProduct, error)
}

// TokenServiceInterface handles JWT validation for the HTTP layer
type TokenServiceInterface interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateToken(tokenString string) (*models.CustomClaims, error)
}

// APIKeyServiceInterface verifies the shared key used by scheduled jobs
type APIKeyServiceInterface interface {
	VerifyKey(presented string) error
}

// MetricsRecorderInterface abstracts metrics collection
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// SeedGeneratorInterface populates a dev environment with realistic data
type SeedGeneratorInterface interface {
	SeedCatalog(productCount int) ([]models.CardProduct, error)
	SeedUserData(userID uuid.UUID, accountCount, transactionsPerAccount int) ([]models.LinkedAccount, error)
}

// ProductCandidate is one ranked resolver result
type ProductCandidate struct {
	Product models.CardProduct `json:"product"`
	Score   int                `json:"score"`
	Reasons []string           `json:"reasons"`
}

// ScanSummary reports the outcome of one scanner run
type ScanSummary struct {
	MatchedCount int            `json:"matched_count"`
	SkippedCount int            `json:"skipped_count"`
	OverCapCount int            `json:"over_cap_count"`
	NewCursor    models.ScanKey `json:"new_cursor"`
}

// BenefitUsage is the current-cycle consumption of one benefit on one account
type BenefitUsage struct {
	AccountID   uuid.UUID        `json:"account_id"`
	BenefitID   uuid.UUID        `json:"benefit_id"`
	BenefitName string           `json:"benefit_name"`
	Timing      string           `json:"timing"`
	CycleStart  time.Time        `json:"cycle_start"`
	CycleEnd    time.Time        `json:"cycle_end"`
	Consumed    decimal.Decimal  `json:"consumed"`
	MaxAmount   *decimal.Decimal `json:"max_amount,omitempty"`
}
