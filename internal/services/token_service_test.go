package services

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"perkline/internal/config"
	"perkline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceSuite defines the test suite for TokenService
type TokenServiceSuite struct {
	suite.Suite
	service TokenServiceInterface
	config  *config.JWTConfig
}

// SetupSuite runs once before the suite
func (s *TokenServiceSuite) SetupSuite() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)

	s.config = &config.JWTConfig{
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
		Issuer:     "perkline-test",
	}
	s.service = NewTokenService(s.config)
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) TestGenerateAndValidate() {
	userID := uuid.New()

	token, err := s.service.GenerateAccessToken(userID, models.RoleUser)
	s.NoError(err)
	s.NotEmpty(token)

	claims, err := s.service.ValidateToken(token)
	s.NoError(err)
	s.Equal(userID.String(), claims.UserID)
	s.Equal(models.RoleUser, claims.Role)
	s.Equal("perkline-test", claims.Issuer)
}

func (s *TokenServiceSuite) TestGenerate_NilUser() {
	_, err := s.service.GenerateAccessToken(uuid.Nil, models.RoleUser)
	s.Error(err)
}

func (s *TokenServiceSuite) TestValidate_EmptyToken() {
	_, err := s.service.ValidateToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceSuite) TestValidate_Garbage() {
	_, err := s.service.ValidateToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestValidate_WrongIssuer() {
	other := NewTokenService(&config.JWTConfig{
		PrivateKey: s.config.PrivateKey,
		PublicKey:  s.config.PublicKey,
		Issuer:     "someone-else",
	})

	token, err := other.GenerateAccessToken(uuid.New(), models.RoleUser)
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceSuite) TestValidate_WrongKey() {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)

	other := NewTokenService(&config.JWTConfig{
		PrivateKey: otherKey,
		PublicKey:  &otherKey.PublicKey,
		Issuer:     "perkline-test",
	})

	token, err := other.GenerateAccessToken(uuid.New(), models.RoleUser)
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}
