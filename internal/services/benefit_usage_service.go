package services

import (
	"errors"
	"fmt"
	"time"

	"perkline/internal/models"
	"perkline/internal/repositories"

	"github.com/google/uuid"
)

type benefitUsageService struct {
	accountRepo repositories.LinkedAccountRepositoryInterface
	catalogRepo repositories.CatalogRepositoryInterface
	matchRepo   repositories.MatchRepositoryInterface
}

// NewBenefitUsageService creates a new BenefitUsageServiceInterface instance
func NewBenefitUsageService(
	accountRepo repositories.LinkedAccountRepositoryInterface,
	catalogRepo repositories.CatalogRepositoryInterface,
	matchRepo repositories.MatchRepositoryInterface,
) BenefitUsageServiceInterface {
	return &benefitUsageService{
		accountRepo: accountRepo,
		catalogRepo: catalogRepo,
		matchRepo:   matchRepo,
	}
}

// GetUsage reports current-cycle consumption for each benefit on every
// account the user has associated with a product. Accounts without a
// product contribute nothing.
func (s *benefitUsageService) GetUsage(userID uuid.UUID, now time.Time) ([]BenefitUsage, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked accounts: %w", err)
	}

	usages := make([]BenefitUsage, 0)
	for _, account := range accounts {
		if !account.HasProduct() {
			continue
		}

		product, err := s.catalogRepo.GetByID(*account.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}

		for _, benefit := range product.Benefits {
			if !benefit.Active {
				continue
			}

			start, end, err := models.CycleWindow(benefit.Timing, now)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cycle window: %w", err)
			}

			consumed, err := s.matchRepo.SumMatchedAmount(benefit.ID, account.ID, start, end)
			if err != nil {
				return nil, fmt.Errorf("failed to compute benefit usage: %w", err)
			}

			usages = append(usages, BenefitUsage{
				AccountID:   account.ID,
				BenefitID:   benefit.ID,
				BenefitName: benefit.Name,
				Timing:      benefit.Timing,
				CycleStart:  start,
				CycleEnd:    end,
				Consumed:    consumed,
				MaxAmount:   benefit.MaxAmount,
			})
		}
	}
	return usages, nil
}
