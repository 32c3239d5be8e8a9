package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome   CategoryType = "income"
	CategoryTypeExpense  CategoryType = "expense"
	CategoryTypeTransfer CategoryType = "transfer"
)

// Valid reports whether the category type is one of the known enum values.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeTransfer:
		return true
	}
	return false
}

// Category represents a transaction category. Exactly one transfer-type
// category is expected to exist; transfer registration resolves it by
// scanning the registry.
type Category struct {
	Base
	Name string       `gorm:"uniqueIndex;not null" json:"name"`
	Type CategoryType `gorm:"not null" json:"type"`
}

// IsTransfer reports whether this is the transfer category.
func (c Category) IsTransfer() bool { return c.Type == CategoryTypeTransfer }
