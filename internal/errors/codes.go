package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken           ErrorCode = "AUTH_001"
	AuthExpiredToken           ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_003"
	AuthInsufficientPermission ErrorCode = "AUTH_004"
	AuthInvalidAPIKey          ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidAmount ErrorCode = "VALIDATION_004"
	ValidationInvalidTiming ErrorCode = "VALIDATION_005"
)

// Linked account error codes (ACCOUNT_*)
const (
	AccountNotFound   ErrorCode = "ACCOUNT_001"
	AccountInactive   ErrorCode = "ACCOUNT_002"
	AccountNoProduct  ErrorCode = "ACCOUNT_003"
	AccountInvalidID  ErrorCode = "ACCOUNT_004"
	AccountNotOwned   ErrorCode = "ACCOUNT_005"
)

// Catalog error codes (CATALOG_*)
const (
	CatalogProductNotFound ErrorCode = "CATALOG_001"
	CatalogProductExists   ErrorCode = "CATALOG_002"
	CatalogBenefitInvalid  ErrorCode = "CATALOG_003"
)

// Scan error codes (SCAN_*)
const (
	ScanInProgress  ErrorCode = "SCAN_001"
	ScanFailed      ErrorCode = "SCAN_002"
	ScanInvalidUser ErrorCode = "SCAN_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthInvalidAPIKey:          "Invalid or missing API key",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidAmount: "Amount must be a positive decimal with at most 2 decimal places",
	ValidationInvalidTiming: "Timing must be one of: monthly, quarterly, semi_annual, annual",

	// Linked account errors
	AccountNotFound:  "Linked account not found",
	AccountInactive:  "Linked account is inactive or unlinked",
	AccountNoProduct: "Linked account has no confirmed card product",
	AccountInvalidID: "Invalid linked account ID format",
	AccountNotOwned:  "Linked account belongs to another user",

	// Catalog errors
	CatalogProductNotFound: "Card product not found",
	CatalogProductExists:   "A card product with this issuer and name already exists",
	CatalogBenefitInvalid:  "Benefit definition is invalid",

	// Scan errors
	ScanInProgress:  "A benefit scan is already running for this user",
	ScanFailed:      "Benefit scan failed; cursor unchanged, safe to retry",
	ScanInvalidUser: "Invalid user identifier for scan",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
