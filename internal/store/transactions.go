package store

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// TransactionFilter holds optional filter parameters for fetching
// transactions. Each field is independently present-or-absent.
type TransactionFilter struct {
	CategoryID      *uint
	AccountID       *uint
	Period          *string
	Type            *models.TransactionType
	TransferGroupID *uint
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
}

// snapshot serializes the transaction fields for the audit trail. The result
// is opaque structured data; the core never reinterprets it.
func snapshot(t models.Transaction) string {
	fields := map[string]any{
		"date":              t.Date.Format(models.DateLayout),
		"amount":            t.Amount.String(),
		"category_id":       t.CategoryID,
		"account_id":        t.AccountID,
		"type":              t.Type,
		"note":              t.Note,
		"transfer_group_id": t.TransferGroupID,
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// appendAudit writes one audit row. Failures abort the caller's atomic unit:
// a transaction mutation without its audit record must never commit.
func (s *Store) appendAudit(txID *uint, operate, info string) error {
	entry := models.TransactionAudit{TxID: txID, Operate: operate, Info: info}
	if err := s.db.Create(&entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// InsertTransaction persists a new transaction row and appends its "insert"
// audit record with a full field snapshot.
func (s *Store) InsertTransaction(t *models.Transaction) error {
	if err := s.db.Create(t).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.appendAudit(&t.ID, models.AuditOperateInsert, snapshot(*t))
}

// UpdateTransaction persists a transaction value over the row with the same
// id and appends its "update" audit record.
func (s *Store) UpdateTransaction(t models.Transaction) error {
	if t.ID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction ID is required for update")
	}
	if err := s.db.Save(&t).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.appendAudit(&t.ID, models.AuditOperateUpdate, snapshot(t))
}

// DeleteTransaction removes a transaction row. The "delete" audit record is
// written before the row goes away, and the row's ledger associations are
// removed as part of the deletion.
func (s *Store) DeleteTransaction(t models.Transaction) error {
	if t.ID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction ID is required for delete")
	}
	if err := s.appendAudit(&t.ID, models.AuditOperateDelete, snapshot(t)); err != nil {
		return err
	}
	if err := s.db.Where("transaction_id = ?", t.ID).Delete(&models.LedgerTransaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&models.Transaction{}, t.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TransactionByID fetches one transaction.
func (s *Store) TransactionByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &t, nil
}

// Transactions fetches all transactions matching the filter, in id order.
func (s *Store) Transactions(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	q := applyTransactionFilter(s.db.Model(&models.Transaction{}), filter)
	if err := q.Order("id").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// TransactionPage fetches a paginated, filtered transaction listing ordered
// by date descending.
func (s *Store) TransactionPage(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilter(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AllocateTransferGroup creates a fresh transfer group and returns its id.
func (s *Store) AllocateTransferGroup() (uint, error) {
	group := models.TransferGroup{}
	if err := s.db.Create(&group).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group.ID, nil
}

func applyTransactionFilter(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.Period != nil {
		if start, err := models.ParsePeriod(*f.Period); err == nil {
			q = q.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
		}
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.TransferGroupID != nil {
		q = q.Where("transfer_group_id = ?", *f.TransferGroupID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}
