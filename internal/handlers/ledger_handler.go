package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// LedgerHandler handles ledger aggregation requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// SummaryRequest represents the query parameters for a ledger summary.
type SummaryRequest struct {
	To *string `form:"to" binding:"omitempty,period"`
}

// GetSummary handles the retrieval of income/expense totals for one period,
// or for an inclusive range when the to query parameter is given.
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	period := c.Param("period")
	if !models.ValidPeriod(period) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be in YYYY-MM format"))
		return
	}

	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.ledgerService.Summary(period, req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTransactions handles the retrieval of every transaction associated with
// one ledger period.
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	period := c.Param("period")
	if !models.ValidPeriod(period) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be in YYYY-MM format"))
		return
	}

	transactions, err := h.ledgerService.Transactions(period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
