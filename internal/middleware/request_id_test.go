package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDSuite defines the test suite for the trace ID middleware
type RequestIDSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDSuite(t *testing.T) {
	suite.Run(t, new(RequestIDSuite))
}

// run sends a request through the middleware, optionally with an inbound
// X-Trace-ID header, and returns the trace ID the handler observed plus the
// recorder
func (s *RequestIDSuite) run(inbound string) (string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	if inbound != "" {
		req.Header.Set(TraceIDHeader, inbound)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var observed string
	handler := RequestID()(func(c echo.Context) error {
		observed = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})
	s.NoError(handler(c))
	return observed, rec
}

func (s *RequestIDSuite) TestMintsTraceIDWhenHeaderAbsent() {
	observed, rec := s.run("")

	s.NotEmpty(observed)
	_, err := uuid.Parse(observed)
	s.NoError(err)
	s.Equal(observed, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDSuite) TestKeepsWellFormedInboundTraceID() {
	inbound := uuid.New().String()

	observed, rec := s.run(inbound)

	s.Equal(inbound, observed)
	s.Equal(inbound, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDSuite) TestReplacesMalformedInboundTraceID() {
	observed, rec := s.run("not-a-uuid'; DROP TABLE scans")

	s.NotEqual("not-a-uuid'; DROP TABLE scans", observed)
	_, err := uuid.Parse(observed)
	s.NoError(err)
	s.Equal(observed, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDSuite) TestContextAndHeaderAgree() {
	observed, rec := s.run("")
	s.Equal(observed, rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDSuite) TestGetTraceIDWithoutMiddleware() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Empty(GetTraceID(c))
}
