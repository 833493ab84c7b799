package handlers

import (
	"net/http"

	"perkline/internal/dto"
	"perkline/internal/errors"
	"perkline/internal/repositories"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResolverHandler handles product resolution HTTP requests
type ResolverHandler struct {
	accountRepo     repositories.LinkedAccountRepositoryInterface
	catalogRepo     repositories.CatalogRepositoryInterface
	resolverService services.ProductResolverServiceInterface
}

// NewResolverHandler creates a new resolver handler
func NewResolverHandler(
	accountRepo repositories.LinkedAccountRepositoryInterface,
	catalogRepo repositories.CatalogRepositoryInterface,
	resolverService services.ProductResolverServiceInterface,
) *ResolverHandler {
	return &ResolverHandler{
		accountRepo:     accountRepo,
		catalogRepo:     catalogRepo,
		resolverService: resolverService,
	}
}

// Resolve ranks catalog products against a linked account's observed names
//
// Method: POST /api/v1/accounts/:accountId/resolve
// Authentication: Required
//
// Path parameters:
//   - accountId: Linked account UUID
//
// Success Response: 200 OK with candidates in descending score order.
// An account no catalog product resembles yields an empty candidate list.
//
// Error Responses:
//   - 400: Invalid account ID
//   - 401: Unauthorized
//   - 403: Account belongs to another user
//   - 404: Account not found
//   - 500: Internal server error
func (h *ResolverHandler) Resolve(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountRepo.GetByID(accountID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	if account.UserID != userID {
		return SendError(c, errors.AccountNotOwned)
	}

	candidates, err := h.resolverService.ResolveProduct(account.DisplayName, account.InstitutionName)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewResolveResponse(accountID, candidates))
}

// LinkProduct associates a linked account with a catalog product, typically
// after the user confirms a resolver candidate. A null product ID clears the
// association.
//
// Method: PUT /api/v1/accounts/:accountId/product
// Authentication: Required
//
// Error Responses:
//   - 400: Invalid account ID or request body
//   - 401: Unauthorized
//   - 403: Account belongs to another user
//   - 404: Account or product not found
//   - 500: Internal server error
func (h *ResolverHandler) LinkProduct(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.LinkProductRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	account, err := h.accountRepo.GetByID(accountID)
	if err != nil {
		if err == repositories.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	if account.UserID != userID {
		return SendError(c, errors.AccountNotOwned)
	}

	if req.ProductID != nil {
		if _, err := h.catalogRepo.GetByID(*req.ProductID); err != nil {
			if err == repositories.ErrProductNotFound {
				return SendError(c, errors.CatalogProductNotFound)
			}
			return SendSystemError(c, err)
		}
	}

	if err := h.accountRepo.SetProductAssociation(accountID, req.ProductID); err != nil {
		return SendSystemError(c, err)
	}

	account.ProductID = req.ProductID
	return c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}
