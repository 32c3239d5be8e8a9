package services

import (
	"errors"

	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/store"
)

// ledgerService aggregates transactions over monthly ledger periods.
type ledgerService struct {
	store *store.Store
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(st *store.Store) LedgerServicer {
	return &ledgerService{store: st}
}

// Transactions fetches the transactions associated with one period, in id
// order. A period that was never referenced has no ledger and yields an
// empty listing rather than an error.
func (s *ledgerService) Transactions(period string) ([]models.Transaction, error) {
	if !models.ValidPeriod(period) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be in YYYY-MM format")
	}

	ledger, err := s.store.LedgerByPeriod(period)
	if err != nil {
		if errors.Is(err, apperrors.ErrLedgerNotFound) {
			return []models.Transaction{}, nil
		}
		return nil, err
	}
	return s.store.LedgerTransactions(ledger.ID)
}

// Summary aggregates income and expense totals over a period, or over an
// inclusive period range when toPeriod is given. Transfers move money between
// accounts without changing net worth, so they are excluded from every total.
func (s *ledgerService) Summary(period string, toPeriod *string) (*LedgerSummary, error) {
	if !models.ValidPeriod(period) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be in YYYY-MM format")
	}
	last := period
	if toPeriod != nil {
		if !models.ValidPeriod(*toPeriod) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be in YYYY-MM format")
		}
		if *toPeriod < period {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end period precedes start period")
		}
		last = *toPeriod
	}

	summary := &LedgerSummary{
		Income:            decimal.Zero,
		Expense:           decimal.Zero,
		Balance:           decimal.Zero,
		IncomeByCategory:  map[uint]decimal.Decimal{},
		ExpenseByCategory: map[uint]decimal.Decimal{},
	}

	for p := period; p <= last; p = models.NextPeriod(p) {
		transactions, err := s.Transactions(p)
		if err != nil {
			return nil, err
		}
		for _, t := range transactions {
			switch {
			case t.IsIncome():
				summary.Income = summary.Income.Add(t.Amount)
				summary.IncomeByCategory[t.CategoryID] = summary.IncomeByCategory[t.CategoryID].Add(t.Amount)
			case t.IsExpense():
				summary.Expense = summary.Expense.Add(t.Amount)
				summary.ExpenseByCategory[t.CategoryID] = summary.ExpenseByCategory[t.CategoryID].Add(t.Amount)
			}
		}
	}

	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}
