package services

import (
	"errors"
	"fmt"
	"log/slog"

	"perkline/internal/models"
	"perkline/internal/repositories"
)

var (
	ErrProductAlreadyExists = errors.New("a product with this issuer and name already exists")
	ErrProductNeedsBenefit  = errors.New("a product requires at least one benefit")
)

type catalogService struct {
	catalogRepo repositories.CatalogRepositoryInterface
}

// NewCatalogService creates a new CatalogServiceInterface instance
func NewCatalogService(catalogRepo repositories.CatalogRepositoryInterface) CatalogServiceInterface {
	return &catalogService{
		catalogRepo: catalogRepo,
	}
}

// CreateProduct creates a catalog product with its benefits, rejecting
// duplicates by issuer and product name.
func (s *catalogService) CreateProduct(product *models.CardProduct, benefits []models.Benefit) error {
	if len(benefits) == 0 {
		return ErrProductNeedsBenefit
	}
	if err := product.Validate(); err != nil {
		return err
	}

	exists, err := s.catalogRepo.ExistsByIssuerAndName(product.IssuerName, product.ProductName)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate product: %w", err)
	}
	if exists {
		return ErrProductAlreadyExists
	}

	if err := s.catalogRepo.CreateWithBenefits(product, benefits); err != nil {
		return err
	}

	slog.Info("catalog product created",
		"product_id", product.ID,
		"issuer", product.IssuerName,
		"name", product.ProductName,
		"benefits", len(benefits),
	)
	return nil
}

// ListActiveProducts returns the active catalog with active benefits
func (s *catalogService) ListActiveProducts() ([]models.CardProduct, error) {
	return s.catalogRepo.ListActive()
}
