package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_Defaults() {
	response := NewErrorResponse(AccountNotFound, "trace-123")

	s.Equal(string(AccountNotFound), response.Error.Code)
	s.Equal("Linked account not found", response.Error.Message)
	s.Equal("trace-123", response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	response := NewErrorResponse(ScanFailed, "trace-456",
		WithMessage("scan aborted"),
		WithDetails("persistence failure", "cursor unchanged"),
	)

	s.Equal("scan aborted", response.Error.Message)
	s.Equal([]string{"persistence failure", "cursor unchanged"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError() {
	response := NewValidationError(map[string]string{"max_amount": "must be a positive decimal"}, "trace-789")

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.Len(response.Error.Details, 1)
	s.Contains(response.Error.Details[0], "max_amount")
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesInternalDetail() {
	internal := json.Unmarshal([]byte("{"), &struct{}{})
	response, err := WrapSystemError(internal, "trace-1")

	s.Equal(internal, err)
	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "unexpected end")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ScanInvalidUser, http.StatusBadRequest},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthInvalidAPIKey, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{AccountNotOwned, http.StatusForbidden},
		{AccountNotFound, http.StatusNotFound},
		{CatalogProductNotFound, http.StatusNotFound},
		{ScanInProgress, http.StatusConflict},
		{AccountNoProduct, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{ScanFailed, http.StatusInternalServerError},
		{SystemInternalError, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN_999"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, GetHTTPStatus(tc.code), string(tc.code))
	}
}

func (s *ResponseTestSuite) TestClientAndServerErrorClassification() {
	s.True(NewErrorResponse(AccountNotFound, "t").IsClientError())
	s.False(NewErrorResponse(AccountNotFound, "t").IsServerError())
	s.True(NewErrorResponse(SystemDatabaseError, "t").IsServerError())
}

func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(ScanInProgress, "trace-9")
	data, err := response.ToJSON()

	s.NoError(err)
	s.Contains(string(data), "SCAN_001")
	s.Contains(string(data), "trace-9")
}

func (s *ResponseTestSuite) TestGetErrorMessage_UnknownCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("NOPE_000")))
	s.False(IsValidErrorCode(ErrorCode("NOPE_000")))
	s.True(IsValidErrorCode(ScanInProgress))
}
