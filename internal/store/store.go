// Package store is the persistence gateway for the kakeibo core. It owns all
// SQL, exposes point CRUD per entity, and provides the atomic-unit boundary
// that the managers wrap around every multi-step mutation.
//
// The gateway also carries the audit contract: every insert, update, and
// delete of a transaction row produces exactly one transaction_audit entry as
// part of the mutating call.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
)

// Store wraps a GORM handle. A Store obtained from Atomic is scoped to the
// open transaction; all other methods run on whatever handle the Store holds.
type Store struct {
	db   *gorm.DB
	inTx bool
}

// New creates a Store on top of an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic runs fn inside one all-or-nothing unit: commit when fn returns nil,
// roll everything back otherwise. Nested units are not opened — a Store that
// is already inside an atomic unit reuses it, so intermediate state is never
// externally observable and a single rollback undoes the whole operation.
func (s *Store) Atomic(fn func(*Store) error) error {
	if s.inTx {
		return fn(s)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	// Store-level conflict or I/O failure: the unit did not commit.
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
