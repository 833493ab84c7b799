package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"perkline/internal/database"
	"perkline/internal/dto"
	"perkline/internal/models"
	"perkline/internal/repositories"
	"perkline/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ResolverHandlerSuite defines the test suite for ResolverHandler
type ResolverHandlerSuite struct {
	suite.Suite
	db          *database.DB
	accountRepo repositories.LinkedAccountRepositoryInterface
	catalogRepo repositories.CatalogRepositoryInterface
	handler     *ResolverHandler
	echo        *echo.Echo
	userID      uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *ResolverHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.accountRepo = repositories.NewLinkedAccountRepository(s.db.DB)
	s.catalogRepo = repositories.NewCatalogRepository(s.db.DB)

	resolverService := services.NewProductResolverService(s.catalogRepo, services.DefaultIssuerAliases(), nil)
	s.handler = NewResolverHandler(s.accountRepo, s.catalogRepo, resolverService)

	s.echo = echo.New()
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *ResolverHandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestResolverHandlerSuite runs the test suite
func TestResolverHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResolverHandlerSuite))
}

func (s *ResolverHandlerSuite) createContext(method, path string, body interface{}, accountID string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.Set("user_role", models.RoleUser)
	c.SetParamNames("accountId")
	c.SetParamValues(accountID)
	return c, rec
}

func (s *ResolverHandlerSuite) TestResolve_InvalidAccountID() {
	c, rec := s.createContext(http.MethodPost, "/api/v1/accounts/bad/resolve", nil, "not-a-uuid")

	err := s.handler.Resolve(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ResolverHandlerSuite) TestResolve_AccountNotFound() {
	c, rec := s.createContext(http.MethodPost, "/api/v1/accounts/x/resolve", nil, uuid.New().String())

	err := s.handler.Resolve(c)
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "ACCOUNT_001")
}

func (s *ResolverHandlerSuite) TestResolve_AccountOwnedByAnotherUser() {
	otherAccount := database.CreateTestAccount(s.T(), s.db, uuid.New(), nil)

	c, rec := s.createContext(http.MethodPost, "/api/v1/accounts/x/resolve", nil, otherAccount.ID.String())

	err := s.handler.Resolve(c)
	s.NoError(err)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "ACCOUNT_005")
}

func (s *ResolverHandlerSuite) TestResolve_ReturnsRankedCandidates() {
	reserve := database.CreateTestProduct(s.T(), s.db, "Chase", "Sapphire Reserve")
	database.CreateTestProduct(s.T(), s.db, "Citi", "Prestige")

	account := &models.LinkedAccount{
		UserID:          s.userID,
		InstitutionName: "Chase",
		DisplayName:     "Chase Sapphire Reserve",
		Status:          models.LinkedAccountStatusActive,
	}
	s.Require().NoError(s.accountRepo.Create(account))

	c, rec := s.createContext(http.MethodPost, "/api/v1/accounts/x/resolve", nil, account.ID.String())

	err := s.handler.Resolve(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ResolveResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(account.ID, resp.AccountID)
	s.Require().Len(resp.Candidates, 2)
	s.Equal(reserve.ID, resp.Candidates[0].ProductID)
	s.Greater(resp.Candidates[0].Score, resp.Candidates[1].Score)
	s.NotEmpty(resp.Candidates[0].Reasons)
}

func (s *ResolverHandlerSuite) TestResolve_EmptyCatalog() {
	account := database.CreateTestAccount(s.T(), s.db, s.userID, nil)

	c, rec := s.createContext(http.MethodPost, "/api/v1/accounts/x/resolve", nil, account.ID.String())

	err := s.handler.Resolve(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ResolveResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Empty(resp.Candidates)
}

func (s *ResolverHandlerSuite) TestLinkProduct_SetsAssociation() {
	product := database.CreateTestProduct(s.T(), s.db, "Chase", "Sapphire Reserve")
	account := database.CreateTestAccount(s.T(), s.db, s.userID, nil)

	body := dto.LinkProductRequest{ProductID: &product.ID}
	c, rec := s.createContext(http.MethodPut, "/api/v1/accounts/x/product", body, account.ID.String())

	err := s.handler.LinkProduct(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	stored, err := s.accountRepo.GetByID(account.ID)
	s.NoError(err)
	s.Require().NotNil(stored.ProductID)
	s.Equal(product.ID, *stored.ProductID)
}

func (s *ResolverHandlerSuite) TestLinkProduct_ClearsAssociation() {
	product := database.CreateTestProduct(s.T(), s.db, "Chase", "Sapphire Reserve")
	account := database.CreateTestAccount(s.T(), s.db, s.userID, &product.ID)

	body := dto.LinkProductRequest{ProductID: nil}
	c, rec := s.createContext(http.MethodPut, "/api/v1/accounts/x/product", body, account.ID.String())

	err := s.handler.LinkProduct(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	stored, err := s.accountRepo.GetByID(account.ID)
	s.NoError(err)
	s.Nil(stored.ProductID)
}

func (s *ResolverHandlerSuite) TestLinkProduct_UnknownProduct() {
	account := database.CreateTestAccount(s.T(), s.db, s.userID, nil)

	missing := uuid.New()
	body := dto.LinkProductRequest{ProductID: &missing}
	c, rec := s.createContext(http.MethodPut, "/api/v1/accounts/x/product", body, account.ID.String())

	err := s.handler.LinkProduct(c)
	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "CATALOG_001")
}
