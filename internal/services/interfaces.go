package services

import (
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/store"
)

// AccountUpdateFields holds optional account fields for a merge update. Each
// field is independently present-or-absent.
type AccountUpdateFields struct {
	Name    *string
	Type    *models.AccountType
	Balance *decimal.Decimal
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	Register(name string, accountType models.AccountType, balance decimal.Decimal) (*models.Account, error)
	Get(id uint) (*models.Account, error)
	List() ([]models.Account, error)
	NameMap() (map[uint]string, error)
	UpdateFields(id uint, fields AccountUpdateFields) (*models.Account, error)
	Delete(id uint, reassignTo *uint, force bool) error
}

// CategoryUpdateFields holds optional category fields for a merge update.
type CategoryUpdateFields struct {
	Name *string
	Type *models.CategoryType
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	Register(name string, categoryType models.CategoryType) (*models.Category, error)
	Get(id uint) (*models.Category, error)
	List() ([]models.Category, error)
	NameMap() (map[uint]string, error)
	UpdateFields(id uint, fields CategoryUpdateFields) (*models.Category, error)
	Delete(id uint, reassignTo *uint, force bool) error
}

// TransactionUpdateFields holds optional transaction fields for a merge
// update. Supplied fields are merged over the existing record and the result
// re-validated before anything is written.
type TransactionUpdateFields struct {
	Date       *time.Time
	Amount     *decimal.Decimal
	CategoryID *uint
	AccountID  *uint
	Type       *models.TransactionType
	Note       *string
}

// TransactionServicer defines the contract for the transaction consistency
// engine.
type TransactionServicer interface {
	Register(date time.Time, amount decimal.Decimal, categoryID, accountID uint, txType models.TransactionType, note string) (uint, error)
	RegisterTransfer(date time.Time, amount decimal.Decimal, fromAccountID, toAccountID uint, categoryID *uint, note string) (fromTxID, toTxID uint, err error)
	Get(id uint) (*models.Transaction, error)
	UpdateFields(id uint, fields TransactionUpdateFields) error
	Delete(id uint) error
	Filter(filter store.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// LedgerSummary aggregates income, expense, and per-category breakdowns over
// one or more ledger periods. Category breakdowns are keyed by category id.
type LedgerSummary struct {
	Income            decimal.Decimal          `json:"income"`
	Expense           decimal.Decimal          `json:"expense"`
	Balance           decimal.Decimal          `json:"balance"`
	IncomeByCategory  map[uint]decimal.Decimal `json:"income_by_category"`
	ExpenseByCategory map[uint]decimal.Decimal `json:"expense_by_category"`
}

// LedgerServicer defines the contract for ledger aggregation.
type LedgerServicer interface {
	Summary(period string, toPeriod *string) (*LedgerSummary, error)
	Transactions(period string) ([]models.Transaction, error)
}

// AuditServicer defines the contract for querying the append-only audit trail.
type AuditServicer interface {
	Find(filter store.AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionAudit], error)
	FindByTxID(txID uint) ([]models.TransactionAudit, error)
}
