// Package errors provides the structured error taxonomy for the kakeibo core.
// All service- and store-layer errors use AppError so that callers can branch
// on the error kind without relying on message text.
package errors

import "net/http"

// Kind classifies an AppError for programmatic handling.
type Kind string

const (
	// KindValidation marks malformed or out-of-range input, rejected before
	// any store access.
	KindValidation Kind = "validation"
	// KindNotFound marks a missing referenced entity.
	KindNotFound Kind = "not_found"
	// KindConflict marks a duplicate unique field.
	KindConflict Kind = "conflict"
	// KindConsistency marks an invariant violated mid-operation.
	KindConsistency Kind = "consistency"
	// KindUnsupported marks a structurally disallowed change.
	KindUnsupported Kind = "unsupported"
	// KindIntegrity marks an atomic unit that failed to commit.
	KindIntegrity Kind = "integrity"
)

// AppError represents a structured application error with a kind, an error
// code, a human-readable message, an HTTP status code, and an optional
// wrapped internal error.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same kind/code/message/status but
// wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Kind: KindValidation, Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Kind: KindIntegrity, Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account errors.
var (
	ErrAccountNotFound      = &AppError{Kind: KindNotFound, Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccountName = &AppError{Kind: KindConflict, Code: "DUPLICATE_ACCOUNT_NAME", Message: "An account with this name already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound      = &AppError{Kind: KindNotFound, Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategoryName = &AppError{Kind: KindConflict, Code: "DUPLICATE_CATEGORY_NAME", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
)

// Transaction and transfer errors.
var (
	ErrTransactionNotFound   = &AppError{Kind: KindNotFound, Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrSameAccountTransfer   = &AppError{Kind: KindValidation, Code: "SAME_ACCOUNT_TRANSFER", Message: "The transfer origin and destination cannot be the same account", StatusCode: http.StatusBadRequest}
	ErrNoTransferCategory    = &AppError{Kind: KindConsistency, Code: "NO_TRANSFER_CATEGORY", Message: "No transfer-type category is registered", StatusCode: http.StatusNotFound}
	ErrTransferPairBroken    = &AppError{Kind: KindConsistency, Code: "TRANSFER_PAIR_BROKEN", Message: "The transfer group does not resolve to exactly two transactions", StatusCode: http.StatusConflict}
	ErrTransferTypeChange    = &AppError{Kind: KindUnsupported, Code: "TRANSFER_TYPE_CHANGE", Message: "Changing between transfer and non-transfer transactions is not supported; delete and recreate instead", StatusCode: http.StatusBadRequest}
	ErrTransferAccountChange = &AppError{Kind: KindUnsupported, Code: "TRANSFER_ACCOUNT_CHANGE", Message: "Changing the account of a transfer transaction is not supported", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrLedgerNotFound = &AppError{Kind: KindNotFound, Code: "LEDGER_NOT_FOUND", Message: "Ledger not found", StatusCode: http.StatusNotFound}
)

// Safe-delete errors.
var (
	ErrReassignmentRequired = &AppError{Kind: KindUnsupported, Code: "REASSIGNMENT_REQUIRED", Message: "The entity is referenced by transactions; a reassignment target is required to delete it", StatusCode: http.StatusConflict}
	ErrSameReassignTarget   = &AppError{Kind: KindValidation, Code: "SAME_REASSIGN_TARGET", Message: "Reassignment to the entity being deleted is not allowed", StatusCode: http.StatusBadRequest}
)
