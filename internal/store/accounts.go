package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// InsertAccount persists a new account.
func (s *Store) InsertAccount(account *models.Account) error {
	if err := s.db.Create(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateAccount persists an account value over the row with the same id.
func (s *Store) UpdateAccount(account models.Account) error {
	if account.ID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required for update")
	}
	if err := s.db.Save(&account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteAccount removes an account row.
func (s *Store) DeleteAccount(id uint) error {
	if err := s.db.Delete(&models.Account{}, id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AccountByID fetches one account.
func (s *Store) AccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// AccountByName fetches one account by its unique name. Returns
// ErrAccountNotFound when no such account exists.
func (s *Store) AccountByName(name string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// Accounts lists all accounts in id order.
func (s *Store) Accounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("id").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}
