package models

import "github.com/golang-jwt/jwt/v5"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CustomClaims represents the claims carried by Perkline access tokens.
// Identity is established upstream by the session service; this API only
// validates tokens and reads the user identifier and role.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}
