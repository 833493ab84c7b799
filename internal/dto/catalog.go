package dto

import (
	"time"

	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the admin payload for a new catalog product.
// Amounts arrive as strings and are parsed into decimals at this boundary;
// the engine never sees untyped values.
type CreateProductRequest struct {
	IssuerName  string                 `json:"issuer_name" validate:"required,max=120"`
	ProductName string                 `json:"product_name" validate:"required,max=200"`
	Benefits    []CreateBenefitRequest `json:"benefits" validate:"required,min=1,dive"`
}

// CreateBenefitRequest describes one benefit on a new product
type CreateBenefitRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Timing    string   `json:"timing" validate:"required,benefit_timing"`
	MaxAmount string   `json:"max_amount,omitempty" validate:"omitempty,decimal_amount"`
	Keywords  []string `json:"keywords" validate:"required,min=1,dive,required"`
}

// ToModels converts the validated request into catalog models
func (r *CreateProductRequest) ToModels() (*models.CardProduct, []models.Benefit, error) {
	product := &models.CardProduct{
		IssuerName:  r.IssuerName,
		ProductName: r.ProductName,
		Active:      true,
	}

	benefits := make([]models.Benefit, 0, len(r.Benefits))
	for _, b := range r.Benefits {
		benefit := models.Benefit{
			Name:     b.Name,
			Timing:   b.Timing,
			Keywords: models.StringList(b.Keywords),
			Active:   true,
		}
		if b.MaxAmount != "" {
			maxAmount, err := decimal.NewFromString(b.MaxAmount)
			if err != nil {
				return nil, nil, err
			}
			benefit.MaxAmount = &maxAmount
		}
		benefits = append(benefits, benefit)
	}
	return product, benefits, nil
}

// BenefitResponse is the wire form of a benefit
type BenefitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timing    string    `json:"timing"`
	MaxAmount string    `json:"max_amount,omitempty"`
	Keywords  []string  `json:"keywords"`
}

// ProductResponse is the wire form of a catalog product
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	IssuerName  string            `json:"issuer_name"`
	ProductName string            `json:"product_name"`
	Benefits    []BenefitResponse `json:"benefits"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewProductResponse converts a catalog model into its wire form
func NewProductResponse(product *models.CardProduct) ProductResponse {
	benefits := make([]BenefitResponse, 0, len(product.Benefits))
	for _, b := range product.Benefits {
		resp := BenefitResponse{
			ID:       b.ID,
			Name:     b.Name,
			Timing:   b.Timing,
			Keywords: b.Keywords,
		}
		if b.MaxAmount != nil {
			resp.MaxAmount = b.MaxAmount.StringFixed(2)
		}
		benefits = append(benefits, resp)
	}
	return ProductResponse{
		ID:          product.ID,
		IssuerName:  product.IssuerName,
		ProductName: product.ProductName,
		Benefits:    benefits,
		CreatedAt:   product.CreatedAt,
	}
}
