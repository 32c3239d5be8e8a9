package models

import "github.com/shopspring/decimal"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeEWallet    AccountType = "e_wallet"
	AccountTypeCrypto     AccountType = "crypto"
)

// Valid reports whether the account type is one of the known enum values.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeCreditCard, AccountTypeEWallet, AccountTypeCrypto:
		return true
	}
	return false
}

// Account represents a financial account in the system. The balance is owned
// by the store and only ever changes through reconciled Deposit/Withdraw
// transforms applied by the transaction manager.
type Account struct {
	Base
	Name    string          `gorm:"uniqueIndex;not null" json:"name"`
	Type    AccountType     `gorm:"not null" json:"type"`
	Balance decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"balance"`
}

// Deposit returns a copy of the account with the amount added to its balance.
func (a Account) Deposit(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Add(amount)
	return a
}

// Withdraw returns a copy of the account with the amount subtracted from its balance.
func (a Account) Withdraw(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Sub(amount)
	return a
}
