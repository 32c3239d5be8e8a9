package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
	"kakeibo/internal/store"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating an
// income or expense transaction.
type CreateTransactionRequest struct {
	Date       string                 `json:"date" binding:"required,txn_date"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID uint                   `json:"category_id" binding:"required"`
	AccountID  uint                   `json:"account_id" binding:"required"`
	Type       models.TransactionType `json:"type" binding:"required,transaction_type"`
	Note       string                 `json:"note" binding:"max=500"`
}

// CreateTransferRequest represents the request payload for creating a
// transfer between two accounts. The category field is accepted for
// compatibility; the transfer category is always resolved from the registry.
type CreateTransferRequest struct {
	Date          string          `json:"date" binding:"required,txn_date"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	FromAccountID uint            `json:"from_account_id" binding:"required"`
	ToAccountID   uint            `json:"to_account_id" binding:"required"`
	CategoryID    *uint           `json:"category_id"`
	Note          string          `json:"note" binding:"max=500"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Absent fields keep their current values.
type UpdateTransactionRequest struct {
	Date       *string                 `json:"date" binding:"omitempty,txn_date"`
	Amount     *decimal.Decimal        `json:"amount"`
	CategoryID *uint                   `json:"category_id"`
	AccountID  *uint                   `json:"account_id"`
	Type       *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Note       *string                 `json:"note" binding:"omitempty,max=500"`
}

// ListTransactionsRequest represents the query parameters for the filtered
// transaction listing.
type ListTransactionsRequest struct {
	CategoryID      *uint                   `form:"category_id"`
	AccountID       *uint                   `form:"account_id"`
	Period          *string                 `form:"period" binding:"omitempty,period"`
	Type            *models.TransactionType `form:"type" binding:"omitempty,transaction_type"`
	TransferGroupID *uint                   `form:"transfer_group_id"`
	MinAmount       *decimal.Decimal        `form:"min_amount"`
	MaxAmount       *decimal.Decimal        `form:"max_amount"`
	pagination.PageRequest
}

// CreateTransaction handles the creation of a new income or expense
// transaction. Transfers go through CreateTransfer.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _ := models.ParseDate(req.Date)
	id, err := h.transactionService.Register(date, req.Amount, req.CategoryID, req.AccountID, req.Type, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateTransfer handles the creation of a transfer between two accounts.
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _ := models.ParseDate(req.Date)
	fromTxID, toTxID, err := h.transactionService.RegisterTransfer(
		date, req.Amount, req.FromAccountID, req.ToAccountID, req.CategoryID, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"from_transaction_id": fromTxID,
		"to_transaction_id":   toTxID,
	})
}

// GetTransactions handles the filtered, paginated transaction listing.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := store.TransactionFilter{
		CategoryID:      req.CategoryID,
		AccountID:       req.AccountID,
		Period:          req.Period,
		Type:            req.Type,
		TransferGroupID: req.TransferGroupID,
		MinAmount:       req.MinAmount,
		MaxAmount:       req.MaxAmount,
	}

	result, err := h.transactionService.Filter(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a specific transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.Get(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction. Updating one leg of a
// transfer keeps its pair in lockstep.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, _ := models.ParseDate(*req.Date)
		date = &parsed
	}

	err = h.transactionService.UpdateFields(transactionID, services.TransactionUpdateFields{
		Date:       date,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Type:       req.Type,
		Note:       req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.Get(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction. Deleting one leg of a
// transfer removes both legs.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
