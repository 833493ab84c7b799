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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// CatalogHandlerSuite defines the test suite for CatalogHandler
type CatalogHandlerSuite struct {
	suite.Suite
	db          *database.DB
	catalogRepo repositories.CatalogRepositoryInterface
	handler     *CatalogHandler
	echo        *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *CatalogHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.catalogRepo = repositories.NewCatalogRepository(s.db.DB)
	s.handler = NewCatalogHandler(services.NewCatalogService(s.catalogRepo))

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

// TearDownTest runs after each test in the suite
func (s *CatalogHandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCatalogHandlerSuite runs the test suite
func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerSuite))
}

func (s *CatalogHandlerSuite) createContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
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
	return c, rec
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		IssuerName:  "Chase",
		ProductName: "Sapphire Reserve",
		Benefits: []dto.CreateBenefitRequest{
			{
				Name:      "DoorDash Credit",
				Timing:    models.BenefitTimingMonthly,
				MaxAmount: "25.00",
				Keywords:  []string{"doordash", "caviar"},
			},
		},
	}
}

func (s *CatalogHandlerSuite) TestListProducts_Empty() {
	c, rec := s.createContext(http.MethodGet, "/api/v1/catalog/products", nil)

	err := s.handler.ListProducts(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *CatalogHandlerSuite) TestListProducts_ActiveOnly() {
	active := database.CreateTestProduct(s.T(), s.db, "Chase", "Sapphire Reserve")
	inactive := database.CreateTestProduct(s.T(), s.db, "Citi", "Prestige")
	s.Require().NoError(s.catalogRepo.Deactivate(inactive.ID))

	c, rec := s.createContext(http.MethodGet, "/api/v1/catalog/products", nil)

	err := s.handler.ListProducts(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), active.ID.String())
	s.NotContains(rec.Body.String(), inactive.ID.String())
}

func (s *CatalogHandlerSuite) TestCreateProduct_Created() {
	c, rec := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", validCreateRequest())

	err := s.handler.CreateProduct(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.ProductResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Chase", resp.IssuerName)
	s.Require().Len(resp.Benefits, 1)
	s.Equal("25.00", resp.Benefits[0].MaxAmount)

	stored, err := s.catalogRepo.GetByID(resp.ID)
	s.NoError(err)
	s.Equal("Sapphire Reserve", stored.ProductName)
}

func (s *CatalogHandlerSuite) TestCreateProduct_DuplicateConflict() {
	c, _ := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", validCreateRequest())
	s.Require().NoError(s.handler.CreateProduct(c))

	// Same issuer and name, differently cased
	req := validCreateRequest()
	req.IssuerName = "CHASE"
	c, rec := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", req)

	err := s.handler.CreateProduct(c)
	s.NoError(err)
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), "CATALOG_002")
}

func (s *CatalogHandlerSuite) TestCreateProduct_MissingIssuer() {
	req := validCreateRequest()
	req.IssuerName = ""
	c, _ := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", req)

	err := s.handler.CreateProduct(c)
	// Validation errors propagate to the central error handler
	s.Error(err)
	var validationErrs validator.ValidationErrors
	s.ErrorAs(err, &validationErrs)
}

func (s *CatalogHandlerSuite) TestCreateProduct_BadTiming() {
	req := validCreateRequest()
	req.Benefits[0].Timing = "weekly"
	c, _ := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", req)

	err := s.handler.CreateProduct(c)
	s.Error(err)
}

func (s *CatalogHandlerSuite) TestCreateProduct_BadAmount() {
	req := validCreateRequest()
	req.Benefits[0].MaxAmount = "-10.00"
	c, _ := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", req)

	err := s.handler.CreateProduct(c)
	s.Error(err)
}

func (s *CatalogHandlerSuite) TestCreateProduct_NoBenefits() {
	req := validCreateRequest()
	req.Benefits = nil
	c, _ := s.createContext(http.MethodPost, "/api/v1/admin/catalog/products", req)

	err := s.handler.CreateProduct(c)
	s.Error(err)
}
