package store

import (
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// AuditFilter holds optional filter parameters for fetching audit records.
type AuditFilter struct {
	TxID    *uint
	Operate *string
}

// Audits fetches a paginated audit trail listing, newest first. The trail is
// append-only; nothing in the gateway updates or deletes these rows.
func (s *Store) Audits(filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionAudit], error) {
	page.Defaults()

	base := applyAuditFilter(s.db.Model(&models.TransactionAudit{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var audits []models.TransactionAudit
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&audits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(audits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AuditsByTxID fetches every audit record for one transaction in write order.
func (s *Store) AuditsByTxID(txID uint) ([]models.TransactionAudit, error) {
	var audits []models.TransactionAudit
	if err := s.db.Where("tx_id = ?", txID).Order("id").Find(&audits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return audits, nil
}

func applyAuditFilter(q *gorm.DB, f AuditFilter) *gorm.DB {
	if f.TxID != nil {
		q = q.Where("tx_id = ?", *f.TxID)
	}
	if f.Operate != nil {
		q = q.Where("operate = ?", *f.Operate)
	}
	return q
}
