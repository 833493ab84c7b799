package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAPIKeyNotConfigured = errors.New("internal API key is not configured")
	ErrInvalidAPIKey       = errors.New("invalid API key")
)

// apiKeyService verifies the shared secret presented by the scheduled scan
// job. Only the bcrypt hash is ever configured; the plaintext key lives in
// the job's environment.
type apiKeyService struct {
	keyHash string
}

// NewAPIKeyService creates a new APIKeyServiceInterface instance
func NewAPIKeyService(keyHash string) APIKeyServiceInterface {
	return &apiKeyService{
		keyHash: keyHash,
	}
}

// VerifyKey compares a presented key against the configured hash
func (s *apiKeyService) VerifyKey(presented string) error {
	if s.keyHash == "" {
		return ErrAPIKeyNotConfigured
	}
	if presented == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.keyHash), []byte(presented)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// HashAPIKey produces the bcrypt hash to store in configuration for a new key
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
