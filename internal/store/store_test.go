package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return New(db)
}

func insertTestTransaction(t *testing.T, st *Store, categoryID, accountID uint, date string) *models.Transaction {
	t.Helper()

	entry := models.Transaction{
		Date:       testutil.MustDate(t, date),
		Amount:     testutil.Amount("25.00"),
		CategoryID: categoryID,
		AccountID:  accountID,
		Type:       models.TransactionTypeExpense,
	}
	err := st.Atomic(func(s *Store) error {
		return s.InsertTransaction(&entry)
	})
	testutil.AssertNoError(t, err)
	return &entry
}

func TestAtomicRollsBackOnError(t *testing.T) {
	st := setupStore(t)

	boom := errors.New("boom")
	err := st.Atomic(func(s *Store) error {
		if err := s.InsertAccount(&models.Account{Name: "Wallet", Type: models.AccountTypeCash, Balance: decimal.Zero}); err != nil {
			return err
		}
		return boom
	})
	if err == nil {
		t.Fatal("expected error from atomic unit")
	}

	if _, err := st.AccountByName("Wallet"); !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("expected rolled-back account to be absent, got %v", err)
	}
}

func TestAtomicWrapsUnexpectedErrors(t *testing.T) {
	st := setupStore(t)

	err := st.Atomic(func(s *Store) error {
		return errors.New("driver hiccup")
	})

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Kind != apperrors.KindIntegrity {
		t.Errorf("expected integrity kind, got %q", appErr.Kind)
	}
}

func TestAtomicNestedReusesUnit(t *testing.T) {
	st := setupStore(t)

	boom := errors.New("boom")
	err := st.Atomic(func(s *Store) error {
		if err := s.InsertAccount(&models.Account{Name: "Outer", Type: models.AccountTypeCash, Balance: decimal.Zero}); err != nil {
			return err
		}
		// A nested call must join the open unit, so the outer failure takes
		// the inner insert down with it.
		if err := s.Atomic(func(inner *Store) error {
			return inner.InsertAccount(&models.Account{Name: "Inner", Type: models.AccountTypeCash, Balance: decimal.Zero})
		}); err != nil {
			return err
		}
		return boom
	})
	if err == nil {
		t.Fatal("expected error from atomic unit")
	}

	if _, err := st.AccountByName("Inner"); !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("expected nested insert to roll back, got %v", err)
	}
}

func TestInsertTransactionWritesAudit(t *testing.T) {
	st := setupStore(t)
	account := testutil.CreateTestAccount(t, st.db, testutil.Amount("100"))
	category := testutil.CreateTestCategory(t, st.db, models.CategoryTypeExpense)

	entry := insertTestTransaction(t, st, category.ID, account.ID, "2025-03-14")

	audits, err := st.AuditsByTxID(entry.ID)
	testutil.AssertNoError(t, err)
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audits))
	}
	if audits[0].Operate != models.AuditOperateInsert {
		t.Errorf("expected insert operate, got %q", audits[0].Operate)
	}
	if audits[0].Info == "" || audits[0].Info == "{}" {
		t.Errorf("expected a field snapshot, got %q", audits[0].Info)
	}
}

func TestDeleteTransactionKeepsHistoryAndDropsAssociations(t *testing.T) {
	st := setupStore(t)
	account := testutil.CreateTestAccount(t, st.db, testutil.Amount("100"))
	category := testutil.CreateTestCategory(t, st.db, models.CategoryTypeExpense)

	var entry models.Transaction
	err := st.Atomic(func(s *Store) error {
		entry = models.Transaction{
			Date:       testutil.MustDate(t, "2025-03-14"),
			Amount:     testutil.Amount("25.00"),
			CategoryID: category.ID,
			AccountID:  account.ID,
			Type:       models.TransactionTypeExpense,
		}
		if err := s.InsertTransaction(&entry); err != nil {
			return err
		}
		ledger, err := s.EnsureLedger(entry.Period())
		if err != nil {
			return err
		}
		return s.AssociateLedgerTransaction(ledger.ID, entry.ID)
	})
	testutil.AssertNoError(t, err)

	err = st.Atomic(func(s *Store) error {
		return s.DeleteTransaction(entry)
	})
	testutil.AssertNoError(t, err)

	if _, err := st.TransactionByID(entry.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("expected transaction to be gone, got %v", err)
	}

	if _, err := st.LedgerForTransaction(entry.ID); !errors.Is(err, apperrors.ErrLedgerNotFound) {
		t.Errorf("expected ledger association to be gone, got %v", err)
	}

	// History outlives the row.
	audits, err := st.AuditsByTxID(entry.ID)
	testutil.AssertNoError(t, err)
	if len(audits) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(audits))
	}
	if audits[1].Operate != models.AuditOperateDelete {
		t.Errorf("expected delete operate, got %q", audits[1].Operate)
	}
}

func TestEnsureLedgerRequiresAtomicUnit(t *testing.T) {
	st := setupStore(t)

	if _, err := st.EnsureLedger("2025-03"); err == nil {
		t.Fatal("expected error outside an atomic unit")
	}
}

func TestEnsureLedgerIsLazyAndIdempotent(t *testing.T) {
	st := setupStore(t)

	if _, err := st.LedgerByPeriod("2025-03"); !errors.Is(err, apperrors.ErrLedgerNotFound) {
		t.Fatalf("expected ledger to not exist yet, got %v", err)
	}

	var first, second *models.Ledger
	err := st.Atomic(func(s *Store) error {
		var err error
		if first, err = s.EnsureLedger("2025-03"); err != nil {
			return err
		}
		second, err = s.EnsureLedger("2025-03")
		return err
	})
	testutil.AssertNoError(t, err)

	if first.ID != second.ID {
		t.Errorf("expected the same ledger row, got %d and %d", first.ID, second.ID)
	}
}

func TestAssociateLedgerTransactionIsIdempotent(t *testing.T) {
	st := setupStore(t)
	account := testutil.CreateTestAccount(t, st.db, testutil.Amount("100"))
	category := testutil.CreateTestCategory(t, st.db, models.CategoryTypeExpense)
	entry := insertTestTransaction(t, st, category.ID, account.ID, "2025-03-14")

	err := st.Atomic(func(s *Store) error {
		ledger, err := s.EnsureLedger("2025-03")
		if err != nil {
			return err
		}
		if err := s.AssociateLedgerTransaction(ledger.ID, entry.ID); err != nil {
			return err
		}
		return s.AssociateLedgerTransaction(ledger.ID, entry.ID)
	})
	testutil.AssertNoError(t, err)

	ledger, err := st.LedgerByPeriod("2025-03")
	testutil.AssertNoError(t, err)
	transactions, err := st.LedgerTransactions(ledger.ID)
	testutil.AssertNoError(t, err)
	if len(transactions) != 1 {
		t.Errorf("expected 1 associated transaction, got %d", len(transactions))
	}
}

func TestTransactionFilter(t *testing.T) {
	st := setupStore(t)
	account := testutil.CreateTestAccount(t, st.db, testutil.Amount("100"))
	other := testutil.CreateTestAccount(t, st.db, testutil.Amount("100"))
	category := testutil.CreateTestCategory(t, st.db, models.CategoryTypeExpense)

	insertTestTransaction(t, st, category.ID, account.ID, "2025-03-14")
	insertTestTransaction(t, st, category.ID, account.ID, "2025-04-01")
	insertTestTransaction(t, st, category.ID, other.ID, "2025-03-20")

	period := "2025-03"
	matches, err := st.Transactions(TransactionFilter{Period: &period})
	testutil.AssertNoError(t, err)
	if len(matches) != 2 {
		t.Errorf("expected 2 transactions in 2025-03, got %d", len(matches))
	}

	matches, err = st.Transactions(TransactionFilter{AccountID: &other.ID, Period: &period})
	testutil.AssertNoError(t, err)
	if len(matches) != 1 {
		t.Errorf("expected 1 transaction for the other account in 2025-03, got %d", len(matches))
	}

	minAmount := testutil.Amount("30")
	matches, err = st.Transactions(TransactionFilter{MinAmount: &minAmount})
	testutil.AssertNoError(t, err)
	if len(matches) != 0 {
		t.Errorf("expected no transactions above 30, got %d", len(matches))
	}
}

func TestAccountCRUD(t *testing.T) {
	st := setupStore(t)

	account := &models.Account{Name: "Wallet", Type: models.AccountTypeCash, Balance: testutil.Amount("12.34")}
	testutil.AssertNoError(t, st.InsertAccount(account))

	fetched, err := st.AccountByID(account.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, testutil.Amount("12.34"), fetched.Balance)

	testutil.AssertNoError(t, st.UpdateAccount(fetched.Deposit(testutil.Amount("7.66"))))

	fetched, err = st.AccountByName("Wallet")
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, testutil.Amount("20"), fetched.Balance)

	testutil.AssertNoError(t, st.DeleteAccount(account.ID))
	if _, err := st.AccountByID(account.ID); !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("expected account to be gone, got %v", err)
	}
}
