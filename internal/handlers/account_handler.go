package handlers

import (
	"net/http"
	"time"

	"perkline/internal/dto"
	"perkline/internal/errors"
	"perkline/internal/repositories"
	"perkline/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles linked account HTTP requests
type AccountHandler struct {
	accountRepo  repositories.LinkedAccountRepositoryInterface
	usageService services.BenefitUsageServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	accountRepo repositories.LinkedAccountRepositoryInterface,
	usageService services.BenefitUsageServiceInterface,
) *AccountHandler {
	return &AccountHandler{
		accountRepo:  accountRepo,
		usageService: usageService,
	}
}

// ListAccounts returns the authenticated user's linked accounts
//
// Method: GET /api/v1/accounts
// Authentication: Required
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accounts, err := h.accountRepo.GetByUserID(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, dto.NewAccountResponse(&accounts[i]))
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: responses})
}

// GetBenefitUsage returns current-cycle consumption for each benefit on each
// of the user's product-linked accounts
//
// Method: GET /api/v1/benefits/usage
// Authentication: Required
func (h *AccountHandler) GetBenefitUsage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	usage, err := h.usageService.GetUsage(userID, time.Now().UTC())
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.BenefitUsageResponse, 0, len(usage))
	for _, u := range usage {
		responses = append(responses, dto.NewBenefitUsageResponse(u))
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: responses})
}
