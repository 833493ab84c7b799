package middleware

import (
	"fmt"
	"strings"

	"perkline/internal/errors"
	"perkline/internal/handlers"
	"perkline/internal/models"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// APIKeyHeader carries the shared secret for internal routes
	APIKeyHeader = "X-API-Key"

	bearerPrefix = "bearer "
)

// errInvalidAuthHeader flags a malformed Authorization header value
var errInvalidAuthHeader = fmt.Errorf("invalid authorization header format")

// RequireAuth creates a middleware that requires a valid JWT token
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := extractBearerToken(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid user ID in token"))
			}

			c.Set("user_id", userID)
			c.Set("user_role", claims.Role)
			c.Set("is_admin", claims.Role == models.RoleAdmin)

			return next(c)
		}
	}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole, ok := c.Get("user_role").(string)
			if !ok {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("User role not found in token"))
			}

			for _, role := range requiredRoles {
				if userRole == role {
					return next(c)
				}
			}

			return handlers.SendError(c, errors.AuthInsufficientPermission)
		}
	}
}

// RequireAdmin is a convenience middleware that requires admin role
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireAPIKey guards internal routes used by scheduled jobs. The key is
// presented in a header and checked against the configured bcrypt hash.
func RequireAPIKey(apiKeyService services.APIKeyServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(APIKeyHeader)
			if err := apiKeyService.VerifyKey(key); err != nil {
				return handlers.SendError(c, errors.AuthInvalidAPIKey)
			}
			return next(c)
		}
	}
}

func extractBearerToken(authHeader string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
		return "", errInvalidAuthHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", errInvalidAuthHeader
	}
	return token, nil
}
