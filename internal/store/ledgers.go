package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// LedgerByPeriod fetches the ledger for one period.
func (s *Store) LedgerByPeriod(period string) (*models.Ledger, error) {
	var ledger models.Ledger
	if err := s.db.Where("period = ?", period).First(&ledger).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ledger, nil
}

// EnsureLedger fetches the ledger for the period, lazily creating it on first
// reference. Must run inside an atomic unit so the lazy insert rolls back
// with the rest of the mutation.
func (s *Store) EnsureLedger(period string) (*models.Ledger, error) {
	if !s.inTx {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "EnsureLedger requires an open atomic unit")
	}

	ledger, err := s.LedgerByPeriod(period)
	if err == nil {
		return ledger, nil
	}
	if !errors.Is(err, apperrors.ErrLedgerNotFound) {
		return nil, err
	}

	created := models.Ledger{Period: period}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &created, nil
}

// AssociateLedgerTransaction links a transaction to a ledger period. The
// insert is idempotent: re-associating an existing pair is a no-op.
func (s *Store) AssociateLedgerTransaction(ledgerID, transactionID uint) error {
	assoc := models.LedgerTransaction{LedgerID: ledgerID, TransactionID: transactionID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&assoc).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DissociateTransaction removes every ledger association of a transaction.
// Used when a transaction moves to a different period.
func (s *Store) DissociateTransaction(transactionID uint) error {
	if err := s.db.Where("transaction_id = ?", transactionID).Delete(&models.LedgerTransaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// LedgerTransactions fetches the transactions associated with a ledger, in
// id order.
func (s *Store) LedgerTransactions(ledgerID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.
		Joins("INNER JOIN ledger_transactions lt ON lt.transaction_id = transactions.id").
		Where("lt.ledger_id = ?", ledgerID).
		Order("transactions.id").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// LedgerForTransaction fetches the ledger a transaction is associated with.
func (s *Store) LedgerForTransaction(transactionID uint) (*models.Ledger, error) {
	var ledger models.Ledger
	err := s.db.
		Joins("INNER JOIN ledger_transactions lt ON lt.ledger_id = ledgers.id").
		Where("lt.transaction_id = ?", transactionID).
		First(&ledger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ledger, nil
}
