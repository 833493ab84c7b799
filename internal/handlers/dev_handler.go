package handlers

import (
	"net/http"

	"perkline/internal/errors"
	"perkline/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	generator services.SeedGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(generator services.SeedGeneratorInterface) *DevHandler {
	return &DevHandler{generator: generator}
}

// SeedData populates the catalog and the authenticated user's accounts with
// realistic test data
//
// Method: POST /api/v1/dev/seed
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - products: Number of catalog products to seed (default: 5, max: 20)
//   - accounts: Number of linked accounts to create (default: 2, max: 10)
//   - transactions: Transactions per account (default: 50, max: 500)
//
// Success Response: 200 OK
//   - products_seeded: Number of catalog products now present
//   - accounts_created: Number of linked accounts created
func (h *DevHandler) SeedData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	productCount := clampParam(getIntParam(c, "products", 5), 1, 20)
	accountCount := clampParam(getIntParam(c, "accounts", 2), 1, 10)
	transactionCount := clampParam(getIntParam(c, "transactions", 50), 1, 500)

	products, err := h.generator.SeedCatalog(productCount)
	if err != nil {
		return SendSystemError(c, err)
	}

	accounts, err := h.generator.SeedUserData(userID, accountCount, transactionCount)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":                  "test data generated successfully",
		"products_seeded":          len(products),
		"accounts_created":         len(accounts),
		"transactions_per_account": transactionCount,
	})
}

func clampParam(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
