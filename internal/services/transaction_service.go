package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/store"
)

// transactionService is the transaction consistency engine. Every mutating
// operation runs inside one atomic unit of the store: the transaction
// row(s), the affected account balance(s), the ledger-period association,
// and the audit trail either all change together or not at all.
type transactionService struct {
	store *store.Store
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st *store.Store) TransactionServicer {
	return &transactionService{store: st}
}

// validateEntry re-validates a full transaction record, including its
// category and account references.
func (s *transactionService) validateEntry(t models.Transaction) error {
	if t.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}
	if !t.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !t.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction type")
	}
	if _, err := s.store.CategoryByID(t.CategoryID); err != nil {
		return err
	}
	if _, err := s.store.AccountByID(t.AccountID); err != nil {
		return err
	}
	return nil
}

// Register records a new income or expense transaction. Within one atomic
// unit it inserts the row (the store appends the "insert" audit record),
// associates it with the lazily created ledger for the date's period, and
// reconciles the account balance. Transfers go through RegisterTransfer.
func (s *transactionService) Register(date time.Time, amount decimal.Decimal, categoryID, accountID uint, txType models.TransactionType, note string) (uint, error) {
	if txType == models.TransactionTypeTransfer {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfers must be registered through the transfer operation")
	}

	entry := models.Transaction{
		Date:       date,
		Amount:     amount,
		CategoryID: categoryID,
		AccountID:  accountID,
		Type:       txType,
		Note:       note,
	}
	if err := s.validateEntry(entry); err != nil {
		return 0, err
	}

	err := s.store.Atomic(func(st *store.Store) error {
		if err := st.InsertTransaction(&entry); err != nil {
			return err
		}

		ledger, err := st.EnsureLedger(entry.Period())
		if err != nil {
			return err
		}
		if err := st.AssociateLedgerTransaction(ledger.ID, entry.ID); err != nil {
			return err
		}

		account, err := st.AccountByID(entry.AccountID)
		if err != nil {
			return err
		}
		if entry.IsIncome() {
			*account = account.Deposit(entry.Amount)
		}
		if entry.IsExpense() {
			*account = account.Withdraw(entry.Amount)
		}
		return st.UpdateAccount(*account)
	})
	if err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// RegisterTransfer records a transfer as two linked transactions sharing one
// freshly allocated transfer group: a source leg and a destination leg with
// identical date, amount, category, and note. The category argument is part
// of the public surface but the implementation always re-derives the
// category by scanning for the first transfer-type one in the registry.
func (s *transactionService) RegisterTransfer(date time.Time, amount decimal.Decimal, fromAccountID, toAccountID uint, categoryID *uint, note string) (uint, uint, error) {
	if date.IsZero() {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer date is required")
	}
	if !amount.IsPositive() {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return 0, 0, apperrors.ErrSameAccountTransfer
	}
	if _, err := s.store.AccountByID(fromAccountID); err != nil {
		return 0, 0, err
	}
	if _, err := s.store.AccountByID(toAccountID); err != nil {
		return 0, 0, err
	}

	transferCategoryID, err := s.resolveTransferCategory()
	if err != nil {
		return 0, 0, err
	}

	var fromTx, toTx models.Transaction
	err = s.store.Atomic(func(st *store.Store) error {
		groupID, err := st.AllocateTransferGroup()
		if err != nil {
			return err
		}

		fromTx = models.Transaction{
			Date:            date,
			Amount:          amount,
			CategoryID:      transferCategoryID,
			AccountID:       fromAccountID,
			Type:            models.TransactionTypeTransfer,
			Note:            note,
			TransferGroupID: &groupID,
		}
		if err := st.InsertTransaction(&fromTx); err != nil {
			return err
		}

		toTx = models.Transaction{
			Date:            date,
			Amount:          amount,
			CategoryID:      transferCategoryID,
			AccountID:       toAccountID,
			Type:            models.TransactionTypeTransfer,
			Note:            note,
			TransferGroupID: &groupID,
		}
		if err := st.InsertTransaction(&toTx); err != nil {
			return err
		}

		ledger, err := st.EnsureLedger(models.PeriodOf(date))
		if err != nil {
			return err
		}
		if err := st.AssociateLedgerTransaction(ledger.ID, fromTx.ID); err != nil {
			return err
		}
		if err := st.AssociateLedgerTransaction(ledger.ID, toTx.ID); err != nil {
			return err
		}

		fromAccount, err := st.AccountByID(fromAccountID)
		if err != nil {
			return err
		}
		toAccount, err := st.AccountByID(toAccountID)
		if err != nil {
			return err
		}
		if err := st.UpdateAccount(fromAccount.Withdraw(amount)); err != nil {
			return err
		}
		return st.UpdateAccount(toAccount.Deposit(amount))
	})
	if err != nil {
		return 0, 0, err
	}
	return fromTx.ID, toTx.ID, nil
}

// resolveTransferCategory scans registered categories for the first
// transfer-type one.
func (s *transactionService) resolveTransferCategory() (uint, error) {
	categories, err := s.store.Categories()
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if c.IsTransfer() {
			return c.ID, nil
		}
	}
	return 0, apperrors.ErrNoTransferCategory
}

// Get fetches one transaction.
func (s *transactionService) Get(id uint) (*models.Transaction, error) {
	return s.store.TransactionByID(id)
}

// Filter fetches a paginated, typed-filter transaction listing.
func (s *transactionService) Filter(filter store.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	return s.store.TransactionPage(filter, page)
}

// UpdateFields merges the supplied fields over the existing transaction,
// re-validates the result, and applies it in one atomic unit. Changing a
// transaction between transfer and non-transfer is structurally disallowed;
// callers must delete and recreate instead. Update audit records come from
// the store's own write contract.
func (s *transactionService) UpdateFields(id uint, fields TransactionUpdateFields) error {
	entry, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}

	merged := *entry
	if fields.Date != nil {
		merged = merged.WithDate(*fields.Date)
	}
	if fields.Amount != nil {
		merged = merged.WithAmount(*fields.Amount)
	}
	if fields.CategoryID != nil {
		merged = merged.WithCategory(*fields.CategoryID)
	}
	if fields.AccountID != nil {
		merged = merged.WithAccount(*fields.AccountID)
	}
	if fields.Type != nil {
		merged.Type = *fields.Type
	}
	if fields.Note != nil {
		merged = merged.WithNote(*fields.Note)
	}

	if err := s.validateEntry(merged); err != nil {
		return err
	}
	if entry.IsTransfer() != merged.IsTransfer() {
		return apperrors.ErrTransferTypeChange
	}

	return s.store.Atomic(func(st *store.Store) error {
		if entry.IsTransfer() {
			return s.updateTransferPair(st, *entry, merged, fields.AccountID)
		}
		return s.updateSingle(st, *entry, merged)
	})
}

// updateTransferPair updates both legs of a transfer in lockstep: the amount
// delta is mirrored onto the two accounts, both legs end up with identical
// date/amount/category/note, and both ledger associations move together when
// the period changes. Account id, type, and group id stay fixed per leg.
func (s *transactionService) updateTransferPair(st *store.Store, entry, merged models.Transaction, requestedAccountID *uint) error {
	if entry.TransferGroupID == nil {
		return apperrors.WithMessage(apperrors.ErrTransferPairBroken, "transfer transaction has no transfer group")
	}

	legs, err := st.Transactions(store.TransactionFilter{TransferGroupID: entry.TransferGroupID})
	if err != nil {
		return err
	}
	if len(legs) != 2 {
		return apperrors.ErrTransferPairBroken
	}
	// Legs come back in ascending id order; the first insert was the source.
	fromTx, toTx := legs[0], legs[1]

	if requestedAccountID != nil && *requestedAccountID != fromTx.AccountID && *requestedAccountID != toTx.AccountID {
		return apperrors.ErrTransferAccountChange
	}
	if fromTx.AccountID == toTx.AccountID {
		return apperrors.WithMessage(apperrors.ErrTransferPairBroken, "both transfer legs reference the same account")
	}

	delta := merged.Amount.Sub(fromTx.Amount)
	if !delta.IsZero() {
		fromAccount, err := st.AccountByID(fromTx.AccountID)
		if err != nil {
			return err
		}
		toAccount, err := st.AccountByID(toTx.AccountID)
		if err != nil {
			return err
		}
		if err := st.UpdateAccount(fromAccount.Withdraw(delta)); err != nil {
			return err
		}
		if err := st.UpdateAccount(toAccount.Deposit(delta)); err != nil {
			return err
		}
	}

	for _, leg := range []models.Transaction{fromTx, toTx} {
		updated := leg.
			WithDate(merged.Date).
			WithAmount(merged.Amount).
			WithCategory(merged.CategoryID).
			WithNote(merged.Note)
		if err := st.UpdateTransaction(updated); err != nil {
			return err
		}
	}

	oldPeriod := fromTx.Period()
	newPeriod := merged.Period()
	if oldPeriod == newPeriod {
		return nil
	}

	ledger, err := st.EnsureLedger(newPeriod)
	if err != nil {
		return err
	}
	for _, leg := range []models.Transaction{fromTx, toTx} {
		if err := st.DissociateTransaction(leg.ID); err != nil {
			return err
		}
		if err := st.AssociateLedgerTransaction(ledger.ID, leg.ID); err != nil {
			return err
		}
	}
	return nil
}

// updateSingle updates a non-transfer transaction: the original balance
// effect is reversed on the original account, the new effect applied on the
// (possibly different) target account, and the ledger association moved when
// the date's period changed.
func (s *transactionService) updateSingle(st *store.Store, entry, merged models.Transaction) error {
	original, err := st.AccountByID(entry.AccountID)
	if err != nil {
		return err
	}
	if entry.IsIncome() {
		*original = original.Withdraw(entry.Amount)
	}
	if entry.IsExpense() {
		*original = original.Deposit(entry.Amount)
	}
	if err := st.UpdateAccount(*original); err != nil {
		return err
	}

	// Re-fetch so a same-account update sees the reversed balance.
	target, err := st.AccountByID(merged.AccountID)
	if err != nil {
		return err
	}
	if merged.IsIncome() {
		*target = target.Deposit(merged.Amount)
	}
	if merged.IsExpense() {
		*target = target.Withdraw(merged.Amount)
	}
	if err := st.UpdateAccount(*target); err != nil {
		return err
	}

	if err := st.UpdateTransaction(merged); err != nil {
		return err
	}

	oldPeriod := entry.Period()
	newPeriod := merged.Period()
	if oldPeriod == newPeriod {
		return nil
	}

	if err := st.DissociateTransaction(entry.ID); err != nil {
		return err
	}
	ledger, err := st.EnsureLedger(newPeriod)
	if err != nil {
		return err
	}
	return st.AssociateLedgerTransaction(ledger.ID, entry.ID)
}

// Delete removes a transaction and reverses its balance effect. Deleting one
// leg of a transfer deletes its pair as well. Delete audit records come from
// the store's pre-delete write.
func (s *transactionService) Delete(id uint) error {
	entry, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}

	return s.store.Atomic(func(st *store.Store) error {
		if entry.IsTransfer() {
			return s.deleteTransferPair(st, *entry)
		}

		account, err := st.AccountByID(entry.AccountID)
		if err != nil {
			return err
		}
		if entry.IsIncome() {
			*account = account.Withdraw(entry.Amount)
		}
		if entry.IsExpense() {
			*account = account.Deposit(entry.Amount)
		}
		if err := st.UpdateAccount(*account); err != nil {
			return err
		}
		return st.DeleteTransaction(*entry)
	})
}

// deleteTransferPair reverses both legs of a transfer and deletes both rows.
// Registration withdrew from the source and deposited into the destination,
// so deletion deposits back into the source and withdraws from the
// destination.
func (s *transactionService) deleteTransferPair(st *store.Store, entry models.Transaction) error {
	if entry.TransferGroupID == nil {
		return apperrors.WithMessage(apperrors.ErrTransferPairBroken, "transfer transaction has no transfer group")
	}

	legs, err := st.Transactions(store.TransactionFilter{TransferGroupID: entry.TransferGroupID})
	if err != nil {
		return err
	}
	if len(legs) != 2 {
		return apperrors.ErrTransferPairBroken
	}
	fromTx, toTx := legs[0], legs[1]

	fromAccount, err := st.AccountByID(fromTx.AccountID)
	if err != nil {
		return err
	}
	toAccount, err := st.AccountByID(toTx.AccountID)
	if err != nil {
		return err
	}
	if err := st.UpdateAccount(fromAccount.Deposit(fromTx.Amount)); err != nil {
		return err
	}
	if err := st.UpdateAccount(toAccount.Withdraw(toTx.Amount)); err != nil {
		return err
	}

	if err := st.DeleteTransaction(fromTx); err != nil {
		return err
	}
	return st.DeleteTransaction(toTx)
}
