package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"perkline/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// HealthHandlerSuite defines the test suite for HealthCheckHandler
type HealthHandlerSuite struct {
	suite.Suite
	db      *database.DB
	handler *HealthCheckHandler
	echo    *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *HealthHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.handler = NewHealthCheckHandler(s.db.DB)
	s.echo = echo.New()
}

// TestHealthHandlerSuite runs the test suite
func TestHealthHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerSuite))
}

func (s *HealthHandlerSuite) TestHealthCheck_Healthy() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.HealthCheck(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("healthy", resp["status"])
	s.NotEmpty(resp["time"])
}

func (s *HealthHandlerSuite) TestHealthCheck_DatabaseDown() {
	sqlDB, err := s.db.DB.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err = s.handler.HealthCheck(c)
	s.NoError(err)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_003")
}
