package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microfin/accounting_core/internal/apperrors"
	"github.com/microfin/accounting_core/internal/core/domain"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/dto"
	"github.com/microfin/accounting_core/internal/middleware"
)

// interestHandler handles HTTP requests for interest calculation and posting.
type interestHandler struct {
	interestEngine portssvc.InterestEngine
}

// newInterestHandler creates a new interestHandler.
func newInterestHandler(interestEngine portssvc.InterestEngine) *interestHandler {
	return &interestHandler{
		interestEngine: interestEngine,
	}
}

// calculateInterest computes interest for a period without recording it.
func (h *interestHandler) calculateInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CalculateInterestRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CalculateInterest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	amount, err := h.interestEngine.CalculateInterest(c.Request.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Interest calculation rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to calculate interest", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate interest"})
		return
	}

	c.JSON(http.StatusOK, dto.InterestAmountResponse{
		AccountID:    req.AccountID,
		Amount:       amount.Amount,
		CurrencyCode: amount.Currency.CurrencyCode,
	})
}

// getAccruedInterest returns interest accrued but not yet posted.
func (h *interestHandler) getAccruedInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	accountType := domain.EntityType(c.DefaultQuery("accountType", string(domain.EntitySavings)))
	currencyCode := c.Query("currencyCode")
	if currencyCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currencyCode is required"})
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	currency := domain.Currency{CurrencyCode: currencyCode, DecimalPlaces: 2}
	amount, err := h.interestEngine.GetAccruedInterest(c.Request.Context(), accountID, accountType, currency, asOf)
	if err != nil {
		logger.Error("Failed to get accrued interest", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accrued interest"})
		return
	}

	c.JSON(http.StatusOK, dto.InterestAmountResponse{
		AccountID:    accountID,
		Amount:       amount.Amount,
		CurrencyCode: amount.Currency.CurrencyCode,
	})
}

// isPostingDue reports whether the account's posting period has elapsed.
func (h *interestHandler) isPostingDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	accountType := domain.EntityType(c.DefaultQuery("accountType", string(domain.EntitySavings)))

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	due, err := h.interestEngine.IsInterestPostingDue(c.Request.Context(), accountID, accountType, asOf)
	if err != nil {
		logger.Error("Failed to check posting due", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check posting status"})
		return
	}

	c.JSON(http.StatusOK, dto.PostingDueResponse{AccountID: accountID, Due: due})
}

// recordPosting records a completed interest posting and emits the GL pair.
func (h *interestHandler) recordPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RecordInterestPostingRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for RecordPosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.interestEngine.RecordInterestPosting(c.Request.Context(), req.ToServiceRequest()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConfiguration):
			logger.Error("GL mapping configuration error", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBranchClosed):
			logger.Warn("Posting rejected, accounting period closed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record interest posting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record interest posting"})
		}
		return
	}

	logger.Info("Interest posting recorded", slog.String("account_id", req.AccountID))
	c.JSON(http.StatusOK, gin.H{"accountID": req.AccountID})
}

// registerInterestRoutes registers interest engine specific routes
func registerInterestRoutes(group *gin.RouterGroup, interestEngine portssvc.InterestEngine) {
	handler := newInterestHandler(interestEngine)

	interest := group.Group("/interest")
	{
		interest.POST("/calculate", handler.calculateInterest)
		interest.GET("/accounts/:accountID/accrued", handler.getAccruedInterest)
		interest.GET("/accounts/:accountID/posting-due", handler.isPostingDue)
		interest.POST("/postings", handler.recordPosting)
	}
}
