package models

import "time"

// PeriodLayout is the canonical layout for ledger periods.
const PeriodLayout = "2006-01"

// Ledger is a calendar-month bucket grouping transactions for reporting.
// Rows are created lazily the first time a period is referenced and are
// never deleted.
type Ledger struct {
	Base
	Period string `gorm:"uniqueIndex;not null" json:"period"`
}

// LedgerTransaction associates a transaction with its ledger period.
// A transaction has exactly one association at any time.
type LedgerTransaction struct {
	LedgerID      uint `gorm:"primaryKey" json:"ledger_id"`
	TransactionID uint `gorm:"primaryKey" json:"transaction_id"`
}

// PeriodOf derives the ledger period ("YYYY-MM") from a date.
func PeriodOf(date time.Time) string { return date.Format(PeriodLayout) }

// ParsePeriod parses a strict "YYYY-MM" period token.
func ParsePeriod(s string) (time.Time, error) {
	return time.Parse(PeriodLayout, s)
}

// ValidPeriod reports whether s is a well-formed "YYYY-MM" token.
func ValidPeriod(s string) bool {
	t, err := ParsePeriod(s)
	return err == nil && PeriodOf(t) == s
}

// NextPeriod returns the period one month after s. s must be valid.
func NextPeriod(s string) string {
	t, _ := ParsePeriod(s)
	return PeriodOf(t.AddDate(0, 1, 0))
}
