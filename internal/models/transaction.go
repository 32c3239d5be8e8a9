package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical layout for transaction dates.
const DateLayout = "2006-01-02"

// ParseDate parses a strict "YYYY-MM-DD" date token.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether the transaction type is one of the known enum values.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction represents a financial transaction in the system.
//
// Invariant: Type == transfer exactly when TransferGroupID is set, and every
// transfer group resolves to two transactions on two distinct accounts with
// identical date, amount, category, and note.
type Transaction struct {
	Base
	Date            time.Time       `gorm:"type:date;not null" json:"date"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	CategoryID      uint            `gorm:"not null" json:"category_id"`
	AccountID       uint            `gorm:"not null" json:"account_id"`
	Type            TransactionType `gorm:"not null" json:"type"`
	Note            string          `json:"note"`
	TransferGroupID *uint           `gorm:"index" json:"transfer_group_id,omitempty"`
}

// TransferGroup pairs the two legs of one transfer operation. A fresh row is
// allocated per transfer and its id is shared by both legs.
type TransferGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Transaction) IsIncome() bool   { return t.Type == TransactionTypeIncome }
func (t Transaction) IsExpense() bool  { return t.Type == TransactionTypeExpense }
func (t Transaction) IsTransfer() bool { return t.Type == TransactionTypeTransfer }

// Period returns the ledger period ("YYYY-MM") derived from the transaction date.
func (t Transaction) Period() string { return PeriodOf(t.Date) }

// WithDate returns a copy of the transaction with a new date.
func (t Transaction) WithDate(date time.Time) Transaction {
	t.Date = date
	return t
}

// WithAmount returns a copy of the transaction with a new amount.
func (t Transaction) WithAmount(amount decimal.Decimal) Transaction {
	t.Amount = amount
	return t
}

// WithCategory returns a copy of the transaction with a new category.
func (t Transaction) WithCategory(categoryID uint) Transaction {
	t.CategoryID = categoryID
	return t
}

// WithAccount returns a copy of the transaction with a new account.
func (t Transaction) WithAccount(accountID uint) Transaction {
	t.AccountID = accountID
	return t
}

// WithNote returns a copy of the transaction with a new note.
func (t Transaction) WithNote(note string) Transaction {
	t.Note = note
	return t
}
