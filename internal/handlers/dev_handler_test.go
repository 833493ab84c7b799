package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"perkline/internal/database"
	"perkline/internal/models"
	"perkline/internal/repositories"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// DevHandlerSuite defines the test suite for DevHandler
type DevHandlerSuite struct {
	suite.Suite
	db          *database.DB
	accountRepo repositories.LinkedAccountRepositoryInterface
	handler     *DevHandler
	echo        *echo.Echo
	userID      uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *DevHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	catalogRepo := repositories.NewCatalogRepository(s.db.DB)
	s.accountRepo = repositories.NewLinkedAccountRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)

	generator := services.NewSeedGenerator(catalogRepo, s.accountRepo, transactionRepo)
	s.handler = NewDevHandler(generator)

	s.echo = echo.New()
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *DevHandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestDevHandlerSuite runs the test suite
func TestDevHandlerSuite(t *testing.T) {
	suite.Run(t, new(DevHandlerSuite))
}

func (s *DevHandlerSuite) createContext(path string, userID *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", *userID)
		c.Set("user_role", models.RoleUser)
	}
	return c, rec
}

func (s *DevHandlerSuite) TestSeedData_Unauthorized() {
	c, rec := s.createContext("/api/v1/dev/seed", nil)

	err := s.handler.SeedData(c)
	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *DevHandlerSuite) TestSeedData_CreatesCatalogAndAccounts() {
	c, rec := s.createContext("/api/v1/dev/seed?products=3&accounts=2&transactions=10", &s.userID)

	err := s.handler.SeedData(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var resp map[string]interface{}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(float64(3), resp["products_seeded"])
	s.Equal(float64(2), resp["accounts_created"])

	accounts, err := s.accountRepo.GetByUserID(s.userID)
	s.NoError(err)
	s.Len(accounts, 2)
}

func (s *DevHandlerSuite) TestSeedData_ClampsParameters() {
	c, rec := s.createContext("/api/v1/dev/seed?products=999&accounts=999&transactions=1", &s.userID)

	err := s.handler.SeedData(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	accounts, err := s.accountRepo.GetByUserID(s.userID)
	s.NoError(err)
	s.Len(accounts, 10)
}
