package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodOf(t *testing.T) {
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	if got := PeriodOf(date); got != "2025-03" {
		t.Errorf("expected period 2025-03, got %s", got)
	}
}

func TestValidPeriod(t *testing.T) {
	valid := []string{"2025-01", "1999-12", "2025-03"}
	for _, p := range valid {
		if !ValidPeriod(p) {
			t.Errorf("expected %q to be a valid period", p)
		}
	}

	invalid := []string{"2025-13", "2025-00", "2025-1", "202503", "2025-03-01", "march 2025", ""}
	for _, p := range invalid {
		if ValidPeriod(p) {
			t.Errorf("expected %q to be an invalid period", p)
		}
	}
}

func TestNextPeriod(t *testing.T) {
	cases := map[string]string{
		"2025-01": "2025-02",
		"2025-12": "2026-01",
		"2025-11": "2025-12",
	}
	for in, want := range cases {
		if got := NextPeriod(in); got != want {
			t.Errorf("NextPeriod(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.March || date.Day() != 14 {
		t.Errorf("unexpected parsed date: %v", date)
	}

	if _, err := ParseDate("14-03-2025"); err == nil {
		t.Error("expected error for out-of-layout date")
	}
}

func TestAccountDepositWithdraw(t *testing.T) {
	account := Account{Name: "Wallet", Type: AccountTypeCash, Balance: decimal.NewFromInt(100)}

	deposited := account.Deposit(decimal.NewFromInt(40))
	if !deposited.Balance.Equal(decimal.NewFromInt(140)) {
		t.Errorf("expected balance 140, got %s", deposited.Balance)
	}

	withdrawn := account.Withdraw(decimal.NewFromInt(40))
	if !withdrawn.Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected balance 60, got %s", withdrawn.Balance)
	}

	// The receiver must be untouched.
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected original balance 100, got %s", account.Balance)
	}
}

func TestTransactionTransforms(t *testing.T) {
	original := Transaction{
		Date:       time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(50),
		CategoryID: 1,
		AccountID:  2,
		Type:       TransactionTypeExpense,
		Note:       "groceries",
	}

	moved := original.
		WithDate(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)).
		WithAmount(decimal.NewFromInt(75)).
		WithCategory(3).
		WithAccount(4).
		WithNote("rent")

	if moved.Period() != "2025-02" {
		t.Errorf("expected period 2025-02, got %s", moved.Period())
	}
	if !moved.Amount.Equal(decimal.NewFromInt(75)) || moved.CategoryID != 3 || moved.AccountID != 4 || moved.Note != "rent" {
		t.Errorf("unexpected transformed transaction: %+v", moved)
	}

	// The receiver must be untouched.
	if original.Period() != "2025-01" || !original.Amount.Equal(decimal.NewFromInt(50)) || original.Note != "groceries" {
		t.Errorf("original transaction mutated: %+v", original)
	}
}

func TestTypeValidation(t *testing.T) {
	if !AccountTypeBank.Valid() || AccountType("savings").Valid() {
		t.Error("unexpected account type validity")
	}
	if !CategoryTypeTransfer.Valid() || CategoryType("refund").Valid() {
		t.Error("unexpected category type validity")
	}
	if !TransactionTypeIncome.Valid() || TransactionType("adjustment").Valid() {
		t.Error("unexpected transaction type validity")
	}
}
