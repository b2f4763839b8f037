package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/microfin/accounting_core/internal/apperrors"
	portssvc "github.com/microfin/accounting_core/internal/core/ports/services"
	"github.com/microfin/accounting_core/internal/core/services"
	"github.com/microfin/accounting_core/internal/dto"
	"github.com/microfin/accounting_core/internal/middleware"
)

// accountingHandler handles HTTP requests for posting and querying journal
// entries.
type accountingHandler struct {
	accountingService portssvc.AccountingSvcFacade
}

// newAccountingHandler creates a new accountingHandler.
func newAccountingHandler(accountingService portssvc.AccountingSvcFacade) *accountingHandler {
	return &accountingHandler{
		accountingService: accountingService,
	}
}

// processTransaction posts one loan transaction to the general ledger and
// returns the created entries.
func (h *accountingHandler) processTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ProcessTransactionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for ProcessTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	loan := req.Loan.ToLoan()
	txn := req.Transaction.ToLoanTransaction(loan.OfficeID)

	entries, err := h.accountingService.ProcessLoanTransaction(c.Request.Context(), loan, txn)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrUnbalancedEntries):
			logger.Warn("Validation error processing transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBranchClosed):
			logger.Warn("Posting rejected, accounting period closed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate transaction", slog.String("transaction_id", txn.TransactionID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConfiguration):
			logger.Error("GL mapping configuration error", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		}
		return
	}

	logger.Info("Transaction processed", slog.String("transaction_id", txn.TransactionID), slog.Int("entry_count", len(entries)))
	c.JSON(http.StatusOK, dto.FromJournalEntries(entries))
}

// reverseTransaction posts the mirror image of a prior transaction's entries.
func (h *accountingHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entries, err := h.accountingService.ReverseTransaction(c.Request.Context(), transactionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction not found for reversal", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Transaction already reversed", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBranchClosed):
			logger.Warn("Reversal rejected, accounting period closed", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse transaction"})
		}
		return
	}

	logger.Info("Transaction reversed", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.FromJournalEntries(entries))
}

// getEntries returns all journal entries posted for a transaction.
func (h *accountingHandler) getEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entries, err := h.accountingService.FindEntries(c.Request.Context(), transactionID)
	if err != nil {
		logger.Error("Failed to get journal entries", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entries"})
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No journal entries for transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.FromJournalEntries(entries))
}

// registerAccountingRoutes registers journal entry specific routes
func registerAccountingRoutes(group *gin.RouterGroup, accountingService portssvc.AccountingSvcFacade) {
	handler := newAccountingHandler(accountingService)

	transactions := group.Group("/transactions")
	{
		transactions.POST("/", handler.processTransaction)
		transactions.POST("/:transactionID/reverse", handler.reverseTransaction)
		transactions.GET("/:transactionID/entries", handler.getEntries)
	}
}
