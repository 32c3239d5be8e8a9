package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
	"kakeibo/internal/validator"
)

// --- mock account service ---

type mockAccountService struct {
	registerFn     func(name string, accountType models.AccountType, balance decimal.Decimal) (*models.Account, error)
	getFn          func(id uint) (*models.Account, error)
	listFn         func() ([]models.Account, error)
	nameMapFn      func() (map[uint]string, error)
	updateFieldsFn func(id uint, fields services.AccountUpdateFields) (*models.Account, error)
	deleteFn       func(id uint, reassignTo *uint, force bool) error
}

func (m *mockAccountService) Register(name string, accountType models.AccountType, balance decimal.Decimal) (*models.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(name, accountType, balance)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) Get(id uint) (*models.Account, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) List() ([]models.Account, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.Account{}, nil
}

func (m *mockAccountService) NameMap() (map[uint]string, error) {
	if m.nameMapFn != nil {
		return m.nameMapFn()
	}
	return map[uint]string{}, nil
}

func (m *mockAccountService) UpdateFields(id uint, fields services.AccountUpdateFields) (*models.Account, error) {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(id, fields)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) Delete(id uint, reassignTo *uint, force bool) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, reassignTo, force)
	}
	return nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	r.POST("/accounts", handler.CreateAccount)
	r.GET("/accounts", handler.GetAccounts)
	r.GET("/accounts/:id", handler.GetAccountByID)
	r.PUT("/accounts/:id", handler.UpdateAccount)
	r.DELETE("/accounts/:id", handler.DeleteAccount)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockAccountService{
			registerFn: func(name string, accountType models.AccountType, balance decimal.Decimal) (*models.Account, error) {
				return &models.Account{Base: models.Base{ID: 1}, Name: name, Type: accountType, Balance: balance}, nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "POST", "/accounts", `{"name":"Wallet","type":"cash","balance":"100.50"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on unknown account type", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "POST", "/accounts", `{"name":"Wallet","type":"savings"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockAccountService{
			registerFn: func(string, models.AccountType, decimal.Decimal) (*models.Account, error) {
				return nil, apperrors.ErrDuplicateAccountName
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "POST", "/accounts", `{"name":"Wallet","type":"cash"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestAccountHandler_GetAccountByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockAccountService{
			getFn: func(uint) (*models.Account, error) { return nil, apperrors.ErrAccountNotFound },
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "GET", "/accounts/42", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}))

		rec := doRequest(r, "GET", "/accounts/not-a-number", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	t.Run("passes reassign target through", func(t *testing.T) {
		var gotReassign *uint
		svc := &mockAccountService{
			deleteFn: func(id uint, reassignTo *uint, force bool) error {
				gotReassign = reassignTo
				return nil
			},
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "DELETE", "/accounts/1?reassign_to=7", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotReassign == nil || *gotReassign != 7 {
			t.Errorf("expected reassign target 7, got %v", gotReassign)
		}
	})

	t.Run("returns 409 when reassignment is required", func(t *testing.T) {
		svc := &mockAccountService{
			deleteFn: func(uint, *uint, bool) error { return apperrors.ErrReassignmentRequired },
		}
		r := setupAccountRouter(NewAccountHandler(svc))

		rec := doRequest(r, "DELETE", "/accounts/1", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
