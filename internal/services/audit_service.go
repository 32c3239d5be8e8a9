package services

import (
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/store"
)

// auditService exposes the append-only transaction audit trail. Audit rows
// are written by the store as part of each mutation; this service only reads.
type auditService struct {
	store *store.Store
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(st *store.Store) AuditServicer {
	return &auditService{store: st}
}

// Find fetches a filtered, paginated audit listing, newest first.
func (s *auditService) Find(filter store.AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionAudit], error) {
	return s.store.Audits(filter, page)
}

// FindByTxID fetches the full history of one transaction in write order.
func (s *auditService) FindByTxID(txID uint) ([]models.TransactionAudit, error) {
	return s.store.AuditsByTxID(txID)
}
