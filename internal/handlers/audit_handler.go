package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
	"kakeibo/internal/store"
)

// AuditHandler handles audit trail requests.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditsRequest represents the query parameters for the audit listing.
type ListAuditsRequest struct {
	TxID    *uint   `form:"tx_id"`
	Operate *string `form:"operate" binding:"omitempty,oneof=insert update delete"`
	pagination.PageRequest
}

// GetAudits handles the filtered, paginated audit trail listing.
func (h *AuditHandler) GetAudits(c *gin.Context) {
	var req ListAuditsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.Find(store.AuditFilter{TxID: req.TxID, Operate: req.Operate}, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionAudits handles the retrieval of the full audit history of one
// transaction, including history that outlives the transaction row itself.
func (h *AuditHandler) GetTransactionAudits(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	audits, err := h.auditService.FindByTxID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": audits})
}
