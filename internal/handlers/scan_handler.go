package handlers

import (
	"net/http"

	"perkline/internal/dto"
	"perkline/internal/errors"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ScanHandler handles benefit scanner HTTP requests
type ScanHandler struct {
	scanService services.BenefitScanServiceInterface
	scanLock    *services.ScanLock
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService services.BenefitScanServiceInterface, scanLock *services.ScanLock) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		scanLock:    scanLock,
	}
}

// Scan runs the benefit scanner for the authenticated user
//
// Method: POST /api/v1/scan
// Authentication: Required
//
// Success Response: 200 OK with the scan summary and new cursor position
//
// Error Responses:
//   - 401: Unauthorized
//   - 409: A scan is already running for this user
//   - 500: Internal server error
func (h *ScanHandler) Scan(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	return h.runScan(c, userID)
}

// InternalScan runs the benefit scanner for a given user on behalf of a
// scheduled job
//
// Method: POST /api/v1/internal/scan/:userId
// Authentication: API key
//
// Path parameters:
//   - userId: User UUID
//
// Error Responses:
//   - 400: Invalid user ID
//   - 401: Missing or invalid API key
//   - 409: A scan is already running for this user
//   - 500: Internal server error
func (h *ScanHandler) InternalScan(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	return h.runScan(c, userID)
}

func (h *ScanHandler) runScan(c echo.Context, userID uuid.UUID) error {
	if err := h.scanLock.TryLock(userID); err != nil {
		return SendError(c, errors.ScanInProgress)
	}
	defer h.scanLock.Unlock(userID)

	summary, err := h.scanService.ScanUser(userID)
	if err != nil {
		if err == services.ErrScanInvalidUser {
			return SendError(c, errors.ScanInvalidUser)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewScanResponse(summary))
}
