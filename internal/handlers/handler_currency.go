package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	portssvc "github.com/SscSPs/currency_converter/internal/core/ports/services"
	"github.com/SscSPs/currency_converter/internal/dto"
	"github.com/SscSPs/currency_converter/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getExchangeRate)
		currencies.HEAD("/:code", h.currencyExists)
		currencies.PUT("/:code/rate", h.updateRate)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a new currency with its rate against USD
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("currency_code", req.Abbreviation))
	logger.Info("Received request to create currency")

	created, err := h.currencyService.InsertCurrency(c.Request.Context(), req.Abbreviation, req.Name, req.RateToUSD)
	if err != nil {
		respondError(c, logger, "Failed to create currency", err)
		return
	}

	logger.Info("Currency created successfully")
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(created))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves all currencies ordered by code. Served from the rate cache.
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	logger.Info("Received request to list currencies")

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, logger, "Failed to list currencies", err)
		return
	}

	logger.Info("Currencies listed successfully", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getExchangeRate godoc
// @Summary Get the rate of a currency
// @Description Retrieves the stored rate to USD for a 3-letter code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /currencies/{code} [get]
func (h *currencyHandler) getExchangeRate(c *gin.Context) {
	code := c.Param("code")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("currency_code", code))

	rate, err := h.currencyService.GetExchangeRate(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, "Failed to get exchange rate", err)
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeRateResponse{Abbreviation: domain.NormalizeCode(code), RateToUSD: rate})
}

// currencyExists godoc
// @Summary Check whether a currency exists
// @Tags currencies
// @Param   code path string true "Currency Code (3 letters)"
// @Success 200 "Currency exists"
// @Failure 404 "Currency not found"
// @Router /currencies/{code} [head]
func (h *currencyHandler) currencyExists(c *gin.Context) {
	code := c.Param("code")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("currency_code", code))

	exists, err := h.currencyService.CurrencyExists(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to check currency", slog.String("error", err.Error()))
		c.Status(apperrors.StatusCode(err))
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// updateRate godoc
// @Summary Update the rate of a currency
// @Tags currencies
// @Accept  json
// @Param   code path string true "Currency Code (3 letters)"
// @Param   rate body dto.UpdateRateRequest true "New rate"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid rate"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /currencies/{code}/rate [put]
func (h *currencyHandler) updateRate(c *gin.Context) {
	code := c.Param("code")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("currency_code", code))

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.currencyService.UpdateRate(c.Request.Context(), code, req.RateToUSD); err != nil {
		respondError(c, logger, "Failed to update rate", err)
		return
	}

	logger.Info("Rate updated successfully", slog.Float64("rate_to_usd", req.RateToUSD))
	c.Status(http.StatusNoContent)
}
