package repositories

import (
	"errors"
	"fmt"

	"perkline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("card product not found")
)

// catalogRepository implements CatalogRepositoryInterface
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepositoryInterface {
	return &catalogRepository{
		db: db,
	}
}

// CreateWithBenefits creates a product and its benefits atomically
func (r *catalogRepository) CreateWithBenefits(product *models.CardProduct, benefits []models.Benefit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create card product: %w", err)
		}

		for i := range benefits {
			benefits[i].ProductID = product.ID
			benefits[i].Position = i
		}
		if len(benefits) > 0 {
			if err := tx.Create(&benefits).Error; err != nil {
				return fmt.Errorf("failed to create benefits: %w", err)
			}
		}

		product.Benefits = benefits
		return nil
	})
}

// GetByID retrieves a product with its benefits
func (r *catalogRepository) GetByID(id uuid.UUID) (*models.CardProduct, error) {
	var product models.CardProduct
	if err := r.db.Preload("Benefits", benefitListOrder).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get card product: %w", err)
	}
	return &product, nil
}

// ListActive retrieves all active products with their active benefits, in
// stable creation order. Catalog order is the resolver's tie-break, so the
// ordering clause matters.
func (r *catalogRepository) ListActive() ([]models.CardProduct, error) {
	var products []models.CardProduct
	if err := r.db.Where("active = ?", true).
		Preload("Benefits", func(db *gorm.DB) *gorm.DB {
			return benefitListOrder(db).Where("active = ?", true)
		}).
		Order("created_at ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list active card products: %w", err)
	}
	return products, nil
}

// benefitListOrder pins benefit ordering to the position assigned at create
// time. The scanner's tie-break keeps the first benefit in list order, so
// loads must be deterministic.
func benefitListOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ExistsByIssuerAndName checks for a duplicate catalog entry
func (r *catalogRepository) ExistsByIssuerAndName(issuerName, productName string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CardProduct{}).
		Where("LOWER(issuer_name) = LOWER(?) AND LOWER(product_name) = LOWER(?)", issuerName, productName).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

// Deactivate marks a product inactive so it stops contributing candidates
func (r *catalogRepository) Deactivate(id uuid.UUID) error {
	result := r.db.Model(&models.CardProduct{}).
		Where("id = ?", id).
		Update("active", false)

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate card product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
