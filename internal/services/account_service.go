package services

import (
	"errors"

	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/store"
)

// accountService handles account-related business logic.
type accountService struct {
	store *store.Store
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(st *store.Store) AccountServicer {
	return &accountService{store: st}
}

// Register creates a new account after validating name uniqueness, type, and
// a non-negative opening balance.
func (s *accountService) Register(name string, accountType models.AccountType, balance decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !accountType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown account type")
	}
	if balance.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account balance cannot be negative")
	}

	if _, err := s.store.AccountByName(name); err == nil {
		return nil, apperrors.ErrDuplicateAccountName
	} else if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}

	account := &models.Account{Name: name, Type: accountType, Balance: balance}
	if err := s.store.InsertAccount(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get fetches one account.
func (s *accountService) Get(id uint) (*models.Account, error) {
	return s.store.AccountByID(id)
}

// List fetches all accounts.
func (s *accountService) List() ([]models.Account, error) {
	return s.store.Accounts()
}

// NameMap returns account names keyed by id, for collaborators that render
// transactions.
func (s *accountService) NameMap() (map[uint]string, error) {
	accounts, err := s.store.Accounts()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	return names, nil
}

// UpdateFields merges the supplied fields over the existing account and
// persists the result.
func (s *accountService) UpdateFields(id uint, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.store.AccountByID(id)
	if err != nil {
		return nil, err
	}

	updated := *account
	if fields.Name != nil {
		if *fields.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		if existing, err := s.store.AccountByName(*fields.Name); err == nil && existing.ID != id {
			return nil, apperrors.ErrDuplicateAccountName
		} else if err != nil && !errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, err
		}
		updated.Name = *fields.Name
	}
	if fields.Type != nil {
		if !fields.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown account type")
		}
		updated.Type = *fields.Type
	}
	if fields.Balance != nil {
		if fields.Balance.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account balance cannot be negative")
		}
		updated.Balance = *fields.Balance
	}

	if err := s.store.UpdateAccount(updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an account. When transactions still reference it, a
// reassignment target is mandatory: every referencing transaction is
// persisted with its account swapped to the target before the account row is
// deleted, all inside one atomic unit. The force flag never overrides the
// reassignment requirement; a destructive force-delete path does not exist.
func (s *accountService) Delete(id uint, reassignTo *uint, force bool) error {
	account, err := s.store.AccountByID(id)
	if err != nil {
		return err
	}

	referencing, err := s.store.Transactions(store.TransactionFilter{AccountID: &id})
	if err != nil {
		return err
	}

	if len(referencing) == 0 {
		return s.store.Atomic(func(st *store.Store) error {
			return st.DeleteAccount(account.ID)
		})
	}

	if reassignTo == nil {
		return apperrors.WithMessage(apperrors.ErrReassignmentRequired,
			"This account is referenced by transactions; specify a reassignment target to delete it")
	}
	if *reassignTo == id {
		return apperrors.ErrSameReassignTarget
	}
	if _, err := s.store.AccountByID(*reassignTo); err != nil {
		return err
	}

	return s.store.Atomic(func(st *store.Store) error {
		for _, tx := range referencing {
			if err := st.UpdateTransaction(tx.WithAccount(*reassignTo)); err != nil {
				return err
			}
		}
		return st.DeleteAccount(account.ID)
	})
}
