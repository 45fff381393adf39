package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	portssvc "github.com/SscSPs/currency_converter/internal/core/ports/services"
	"github.com/SscSPs/currency_converter/internal/dto"
	"github.com/SscSPs/currency_converter/internal/handlers"
	"github.com/SscSPs/currency_converter/internal/middleware"
	"github.com/SscSPs/currency_converter/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CurrencyExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyService) GetExchangeRate(ctx context.Context, code string) (float64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCurrencyService) InsertCurrency(ctx context.Context, code, name string, rateToUSD float64) (*domain.Currency, error) {
	args := m.Called(ctx, code, name, rateToUSD)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) UpdateRate(ctx context.Context, code string, rateToUSD float64) error {
	args := m.Called(ctx, code, rateToUSD)
	return args.Error(0)
}

func (m *MockCurrencyService) Convert(ctx context.Context, amount float64, fromCode, toCode string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockCurrencyService) Close() {
	m.Called()
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockCurrencyService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockCurrencyService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Currency: suite.mockService,
	})
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestListCurrencies() {
	suite.mockService.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{Abbreviation: "EUR", Name: "Euro", RateToUSD: 1.10},
		{Abbreviation: "USD", Name: "US Dollar", RateToUSD: 1},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("EUR", resp[0].Abbreviation)
	suite.Equal("EUR - Euro", resp[0].Display)
}

func (suite *HandlersTestSuite) TestListCurrencies_StoreUnavailableHidesCause() {
	suite.mockService.On("ListCurrencies", mock.Anything).
		Return(nil, apperrors.NewStoreUnavailableError("failed to query currencies", errors.New("dial tcp 10.0.0.1:5432"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("failed to query currencies", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestGetExchangeRate() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "gbp").Return(1.27, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/gbp", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("GBP", resp.Abbreviation)
	suite.Equal(1.27, resp.RateToUSD)
}

func (suite *HandlersTestSuite) TestGetExchangeRate_NotFound() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "XYZ").
		Return(0.0, apperrors.NewNotFoundError("currency XYZ not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/XYZ", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("currency XYZ not found", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestCurrencyExists() {
	suite.mockService.On("CurrencyExists", mock.Anything, "EUR").Return(true, nil).Once()
	suite.mockService.On("CurrencyExists", mock.Anything, "XYZ").Return(false, nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodHead, "/api/v1/currencies/EUR", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodHead, "/api/v1/currencies/XYZ", nil).Code)
}

func (suite *HandlersTestSuite) TestCreateCurrency() {
	suite.mockService.On("InsertCurrency", mock.Anything, "CHF", "Swiss Franc", 1.13).
		Return(&domain.Currency{Abbreviation: "CHF", Name: "Swiss Franc", RateToUSD: 1.13}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{
		Abbreviation: "CHF", Name: "Swiss Franc", RateToUSD: 1.13,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CHF", resp.Abbreviation)
}

func (suite *HandlersTestSuite) TestCreateCurrency_InvalidBody() {
	testCases := []struct {
		name string
		body any
	}{
		{"missing name", map[string]any{"abbreviation": "CHF", "rateToUSD": 1.13}},
		{"long code", map[string]any{"abbreviation": "CHFX", "name": "Swiss Franc", "rateToUSD": 1.13}},
		{"negative rate", map[string]any{"abbreviation": "CHF", "name": "Swiss Franc", "rateToUSD": -1}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/currencies", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockService.AssertNotCalled(suite.T(), "InsertCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestCreateCurrency_Duplicate() {
	suite.mockService.On("InsertCurrency", mock.Anything, "EUR", "Euro", 2.0).
		Return(nil, apperrors.NewDuplicateError("currency EUR already exists")).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{
		Abbreviation: "EUR", Name: "Euro", RateToUSD: 2.0,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("currency EUR already exists", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestUpdateRate() {
	suite.mockService.On("UpdateRate", mock.Anything, "EUR", 1.2).Return(nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/currencies/EUR/rate", dto.UpdateRateRequest{RateToUSD: 1.2})

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateRate_InvalidRate() {
	suite.mockService.On("UpdateRate", mock.Anything, "EUR", -1.0).Return(apperrors.ErrInvalidRate).Once()

	w := suite.do(http.MethodPut, "/api/v1/currencies/EUR/rate", dto.UpdateRateRequest{RateToUSD: -1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("exchange rate must be positive", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestUpdateRate_NotFound() {
	suite.mockService.On("UpdateRate", mock.Anything, "XYZ", 2.0).
		Return(apperrors.NewNotFoundError("currency XYZ not found")).Once()

	w := suite.do(http.MethodPut, "/api/v1/currencies/XYZ/rate", dto.UpdateRateRequest{RateToUSD: 2})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestConvert() {
	suite.mockService.On("Convert", mock.Anything, 100.0, "EUR", "USD").
		Return(&domain.ConversionResult{From: "EUR", To: "USD", SourceAmount: 100, TargetAmount: 110.00000000000001, Rate: 1.1}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", map[string]any{"amount": 100, "from": "EUR", "to": "USD"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("110.00 USD", resp.FormattedAmount)
	suite.InDelta(110.0, resp.TargetAmount, 1e-9)
}

func (suite *HandlersTestSuite) TestConvert_ZeroAmountAccepted() {
	suite.mockService.On("Convert", mock.Anything, 0.0, "EUR", "USD").
		Return(&domain.ConversionResult{From: "EUR", To: "USD", Rate: 1.1}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", map[string]any{"amount": 0, "from": "EUR", "to": "USD"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestConvert_MissingAmount() {
	w := suite.do(http.MethodPost, "/api/v1/conversions", map[string]any{"from": "EUR", "to": "USD"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestConvert_UnknownCurrency() {
	suite.mockService.On("Convert", mock.Anything, 5.0, "EUR", "XYZ").
		Return(nil, apperrors.NewNotFoundError("currency XYZ not found")).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", map[string]any{"amount": 5, "from": "EUR", "to": "XYZ"})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("currency XYZ not found", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestConvert_ClosedStore() {
	suite.mockService.On("Convert", mock.Anything, 5.0, "EUR", "USD").
		Return(nil, apperrors.ErrResourceClosed).Once()

	w := suite.do(http.MethodPost, "/api/v1/conversions", map[string]any{"amount": 5, "from": "EUR", "to": "USD"})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlersTestSuite) TestConvert_LogsWithRequestLogger() {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))))
	handlers.RegisterRoutes(router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Currency: suite.mockService,
	})
	suite.mockService.On("Convert", mock.Anything, 5.0, "EUR", "XYZ").
		Return(nil, apperrors.NewNotFoundError("currency XYZ not found")).Once()

	raw, err := json.Marshal(map[string]any{"amount": 5, "from": "EUR", "to": "XYZ"})
	suite.Require().NoError(err)
	req, err := http.NewRequest(http.MethodPost, "/api/v1/conversions", bytes.NewReader(raw))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	requestID := w.Header().Get(middleware.RequestIDHeader)
	suite.NotEmpty(requestID)
	suite.Contains(buf.String(), "Failed to convert")
	suite.Contains(buf.String(), `"request_id":"`+requestID+`"`)
}

// --- Run Test Suite ---
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
