package handlers

import (
	"net/http"

	"perkline/internal/dto"
	"perkline/internal/errors"
	"perkline/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandler handles card product catalog HTTP requests
type CatalogHandler struct {
	catalogService services.CatalogServiceInterface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts returns the active catalog with benefits in stable creation
// order
//
// Method: GET /api/v1/catalog/products
// Authentication: Required
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogService.ListActiveProducts()
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, dto.NewProductResponse(&products[i]))
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: responses})
}

// CreateProduct creates a catalog product with its benefits
//
// Method: POST /api/v1/admin/catalog/products
// Authentication: Required (admin)
//
// Success Response: 201 Created with the stored product
//
// Error Responses:
//   - 400: Validation failure (missing fields, bad timing, bad amount)
//   - 401: Unauthorized
//   - 403: Not an admin
//   - 409: A product with this issuer and name already exists
//   - 500: Internal server error
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		// Formatted by the central error handler
		return err
	}

	product, benefits, err := req.ToModels()
	if err != nil {
		return SendError(c, errors.ValidationInvalidAmount, errors.WithDetails(err.Error()))
	}

	if err := h.catalogService.CreateProduct(product, benefits); err != nil {
		switch err {
		case services.ErrProductAlreadyExists:
			return SendError(c, errors.CatalogProductExists)
		case services.ErrProductNeedsBenefit:
			return SendError(c, errors.CatalogBenefitInvalid)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}
