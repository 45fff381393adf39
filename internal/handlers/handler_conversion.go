package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/currency_converter/internal/core/ports/services"
	"github.com/SscSPs/currency_converter/internal/dto"
	"github.com/SscSPs/currency_converter/internal/middleware"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := &conversionHandler{conversionService: conversionService}
	rg.POST("/conversions", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts amount from one currency into another using the cached rates
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("from", req.From), slog.String("to", req.To))

	result, err := h.conversionService.Convert(c.Request.Context(), *req.Amount, req.From, req.To)
	if err != nil {
		respondError(c, logger, "Failed to convert", err)
		return
	}

	logger.Info("Conversion completed", slog.Float64("target_amount", result.TargetAmount))
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}
