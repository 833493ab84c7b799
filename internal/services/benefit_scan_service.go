package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"perkline/internal/models"
	"perkline/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrScanInvalidUser = errors.New("invalid user ID for scan")
)

type benefitScanService struct {
	accountRepo     repositories.LinkedAccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	catalogRepo     repositories.CatalogRepositoryInterface
	matchRepo       repositories.MatchRepositoryInterface
	cursorRepo      repositories.CursorRepositoryInterface
	batchLimit      int
	metrics         MetricsRecorderInterface
}

// NewBenefitScanService creates a new BenefitScanServiceInterface instance
func NewBenefitScanService(
	accountRepo repositories.LinkedAccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	catalogRepo repositories.CatalogRepositoryInterface,
	matchRepo repositories.MatchRepositoryInterface,
	cursorRepo repositories.CursorRepositoryInterface,
	batchLimit int,
	metrics MetricsRecorderInterface,
) BenefitScanServiceInterface {
	return &benefitScanService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		catalogRepo:     catalogRepo,
		matchRepo:       matchRepo,
		cursorRepo:      cursorRepo,
		batchLimit:      batchLimit,
		metrics:         metrics,
	}
}

// cycleKey identifies one benefit's cap bucket on one account for one cycle
// window, so amounts matched earlier in the same run count against later
// transactions before anything new is visible in the store.
type cycleKey struct {
	benefitID  uuid.UUID
	accountID  uuid.UUID
	cycleStart time.Time
}

// ScanUser runs one scanner pass for the user. Matches are upserted as they
// are found; the cursor is written last, so a failure partway through leaves
// the cursor where it was and the run is safe to retry.
func (s *benefitScanService) ScanUser(userID uuid.UUID) (*ScanSummary, error) {
	if userID == uuid.Nil {
		return nil, ErrScanInvalidUser
	}
	started := time.Now()

	cursor, err := s.cursorRepo.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan cursor: %w", err)
	}
	startKey := cursor.Key()

	transactions, err := s.transactionRepo.GetByUserSince(userID, startKey, s.batchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := &ScanSummary{NewCursor: startKey}
	if len(transactions) == 0 {
		slog.Info("scan found no new transactions", "user_id", userID)
		return summary, nil
	}

	benefitsByAccount, err := s.loadBenefitsByAccount(userID)
	if err != nil {
		return nil, err
	}

	usage := newCycleUsageTracker(s.matchRepo, startKey)
	for i := range transactions {
		txn := &transactions[i]

		benefit := bestBenefit(txn, benefitsByAccount[txn.AccountID])
		if benefit == nil {
			summary.SkippedCount++
			continue
		}

		overCap, err := usage.apply(txn, benefit.benefit)
		if err != nil {
			return nil, err
		}

		match := &models.TransactionMatch{
			TransactionID: txn.ID,
			BenefitID:     benefit.benefit.ID,
			AccountID:     txn.AccountID,
			KeywordHits:   benefit.hits,
			OverCap:       overCap,
		}
		if err := s.matchRepo.Upsert(match); err != nil {
			return nil, fmt.Errorf("failed to persist match: %w", err)
		}

		summary.MatchedCount++
		if overCap {
			summary.OverCapCount++
		}
		if s.metrics != nil {
			s.metrics.IncrementCounter("match.written", map[string]string{"over_cap": strconv.FormatBool(overCap)})
		}
	}

	// Cursor moves last, to the latest key considered, matched or not
	lastKey := transactions[len(transactions)-1].ScanKey()
	if err := s.cursorRepo.Advance(userID, lastKey); err != nil {
		return nil, fmt.Errorf("failed to advance scan cursor: %w", err)
	}
	summary.NewCursor = lastKey

	slog.Info("scan completed",
		"user_id", userID,
		"scanned", len(transactions),
		"matched", summary.MatchedCount,
		"skipped", summary.SkippedCount,
		"over_cap", summary.OverCapCount,
	)
	if s.metrics != nil {
		s.metrics.IncrementCounter("scan.completed", map[string]string{"status": "success"})
		s.metrics.RecordProcessingTime("scan.duration", time.Since(started))
		s.metrics.RecordGauge("scan.matched", float64(summary.MatchedCount), nil)
	}
	return summary, nil
}

// loadBenefitsByAccount resolves each linked account to the active benefits
// of its associated product. Accounts without an association contribute
// nothing; that is a normal state, not an error.
func (s *benefitScanService) loadBenefitsByAccount(userID uuid.UUID) (map[uuid.UUID][]models.Benefit, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked accounts: %w", err)
	}

	productBenefits := make(map[uuid.UUID][]models.Benefit)
	byAccount := make(map[uuid.UUID][]models.Benefit)
	for _, account := range accounts {
		if !account.HasProduct() || !account.IsActive() {
			continue
		}

		benefits, cached := productBenefits[*account.ProductID]
		if !cached {
			product, err := s.catalogRepo.GetByID(*account.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrProductNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to load product benefits: %w", err)
			}
			for _, b := range product.Benefits {
				if b.Active {
					benefits = append(benefits, b)
				}
			}
			productBenefits[*account.ProductID] = benefits
		}
		byAccount[account.ID] = benefits
	}
	return byAccount, nil
}

type benefitHit struct {
	benefit models.Benefit
	hits    int
}

// bestBenefit matches the transaction text against its own account's
// benefits only. The winner has the most distinct keyword hits; ties keep
// the first benefit encountered in list order.
func bestBenefit(txn *models.Transaction, benefits []models.Benefit) *benefitHit {
	text := NormalizeName(txn.MatchText())
	if text == "" {
		return nil
	}

	var best *benefitHit
	for i := range benefits {
		hits := countKeywordHits(text, benefits[i].Keywords)
		if hits == 0 {
			continue
		}
		if best == nil || hits > best.hits {
			best = &benefitHit{benefit: benefits[i], hits: hits}
		}
	}
	return best
}

func countKeywordHits(text string, keywords models.StringList) int {
	hits := 0
	seen := make(map[string]bool)
	for _, keyword := range keywords {
		normalized := NormalizeName(keyword)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if strings.Contains(text, normalized) {
			hits++
		}
	}
	return hits
}

// cycleUsageTracker tracks per-cycle benefit consumption during one run.
// The persisted total for a cycle bucket is read once per bucket, bounded to
// transactions at or before the run's start cursor, then amounts matched
// in-run accumulate on top so later transactions in the same run see earlier
// ones. Bounding the baseline matters on retry: an interrupted run may have
// upserted some of this batch before failing, and those rows must not be
// counted both as persisted usage and again as in-run usage.
type cycleUsageTracker struct {
	matchRepo repositories.MatchRepositoryInterface
	startKey  models.ScanKey
	baseline  map[cycleKey]decimal.Decimal
	inRun     map[cycleKey]decimal.Decimal
}

func newCycleUsageTracker(matchRepo repositories.MatchRepositoryInterface, startKey models.ScanKey) *cycleUsageTracker {
	return &cycleUsageTracker{
		matchRepo: matchRepo,
		startKey:  startKey,
		baseline:  make(map[cycleKey]decimal.Decimal),
		inRun:     make(map[cycleKey]decimal.Decimal),
	}
}

// apply records the transaction against the benefit's cycle bucket and
// reports whether the running total passes the cap. Over-cap matches are
// still recorded, just flagged; a total exactly at the cap is fine.
func (t *cycleUsageTracker) apply(txn *models.Transaction, benefit models.Benefit) (bool, error) {
	if benefit.MaxAmount == nil {
		return false, nil
	}

	start, end, err := models.CycleWindow(benefit.Timing, txn.PostedAt)
	if err != nil {
		return false, fmt.Errorf("failed to compute cycle window: %w", err)
	}

	key := cycleKey{benefitID: benefit.ID, accountID: txn.AccountID, cycleStart: start}
	persisted, known := t.baseline[key]
	if !known {
		persisted, err = t.matchRepo.SumMatchedAmountThrough(benefit.ID, txn.AccountID, start, end, t.startKey)
		if err != nil {
			return false, fmt.Errorf("failed to compute cycle usage: %w", err)
		}
		t.baseline[key] = persisted
	}

	total := persisted.Add(t.inRun[key]).Add(txn.Amount)
	t.inRun[key] = t.inRun[key].Add(txn.Amount)

	return total.GreaterThan(*benefit.MaxAmount), nil
}
