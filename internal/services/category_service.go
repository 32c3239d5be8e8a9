package services

import (
	"errors"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/store"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store *store.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(st *store.Store) CategoryServicer {
	return &categoryService{store: st}
}

// Register creates a new category after validating name uniqueness and type.
func (s *categoryService) Register(name string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category type")
	}

	if _, err := s.store.CategoryByName(name); err == nil {
		return nil, apperrors.ErrDuplicateCategoryName
	} else if !errors.Is(err, apperrors.ErrCategoryNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name, Type: categoryType}
	if err := s.store.InsertCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get fetches one category.
func (s *categoryService) Get(id uint) (*models.Category, error) {
	return s.store.CategoryByID(id)
}

// List fetches all categories.
func (s *categoryService) List() ([]models.Category, error) {
	return s.store.Categories()
}

// NameMap returns category names keyed by id.
func (s *categoryService) NameMap() (map[uint]string, error) {
	categories, err := s.store.Categories()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// UpdateFields merges the supplied fields over the existing category and
// persists the result. Renaming to a name held by a different category is a
// conflict; re-submitting the current name is fine.
func (s *categoryService) UpdateFields(id uint, fields CategoryUpdateFields) (*models.Category, error) {
	category, err := s.store.CategoryByID(id)
	if err != nil {
		return nil, err
	}

	updated := *category
	if fields.Name != nil {
		if *fields.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
		}
		if existing, err := s.store.CategoryByName(*fields.Name); err == nil && existing.ID != id {
			return nil, apperrors.ErrDuplicateCategoryName
		} else if err != nil && !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		updated.Name = *fields.Name
	}
	if fields.Type != nil {
		if !fields.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category type")
		}
		updated.Type = *fields.Type
	}

	if err := s.store.UpdateCategory(updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a category with the same safe-delete contract as accounts:
// referencing transactions must be reassigned to a different, existing
// category first, and reassign-then-delete runs in one atomic unit.
func (s *categoryService) Delete(id uint, reassignTo *uint, force bool) error {
	category, err := s.store.CategoryByID(id)
	if err != nil {
		return err
	}

	referencing, err := s.store.Transactions(store.TransactionFilter{CategoryID: &id})
	if err != nil {
		return err
	}

	if len(referencing) == 0 {
		return s.store.Atomic(func(st *store.Store) error {
			return st.DeleteCategory(category.ID)
		})
	}

	if reassignTo == nil {
		return apperrors.WithMessage(apperrors.ErrReassignmentRequired,
			"This category is referenced by transactions; specify a reassignment target to delete it")
	}
	if *reassignTo == id {
		return apperrors.ErrSameReassignTarget
	}
	if _, err := s.store.CategoryByID(*reassignTo); err != nil {
		return err
	}

	return s.store.Atomic(func(st *store.Store) error {
		for _, tx := range referencing {
			if err := st.UpdateTransaction(tx.WithCategory(*reassignTo)); err != nil {
				return err
			}
		}
		return st.DeleteCategory(category.ID)
	})
}
