package core

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength bounds transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryNameLength bounds category names.
	MaxCategoryNameLength = 100
	// DefaultCategoryColor is assigned to categories created implicitly
	// during a CSV import.
	DefaultCategoryColor = "#818cf8"
)

type (
	// Category groups transactions and optionally carries a monthly budget.
	// A nil MonthlyBudget means "no budget set"; it never produces alerts.
	Category struct {
		ID            int64
		Name          string
		Color         string
		MonthlyBudget *decimal.Decimal
	}

	// Transaction is a single dated expense or refund. Amount sign is
	// meaningful: negative amounts are refunds and subtract from totals.
	// A nil CategoryID marks an uncategorized transaction.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Amount      decimal.Decimal
		CategoryID  *int64
	}

	// Settings is the singleton application configuration record.
	Settings struct {
		GlobalMonthlyBudget *decimal.Decimal
	}
)

var (
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidDate         = errors.New("invalid date")
	ErrFutureDate          = errors.New("date cannot be in the future")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooLong  = errors.New("description too long")
	ErrZeroAmount          = errors.New("amount cannot be zero")
	ErrEmptyCategoryName   = errors.New("empty category name")
	ErrCategoryNameTooLong = errors.New("category name too long")
	ErrInvalidColor        = errors.New("invalid color")
	ErrNegativeBudget      = errors.New("budget cannot be negative")
)

// Validate checks a transaction against the current date. Transactions can
// never be dated in the future relative to validation time.
func (t Transaction) Validate(today Date) error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.Date.Time.After(today.Time) {
		return ErrFutureDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	// Limits count characters, not bytes.
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyCategoryName
	}
	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	if c.Color != "" && !ValidHexColor(c.Color) {
		return ErrInvalidColor
	}
	if c.MonthlyBudget != nil && c.MonthlyBudget.IsNegative() {
		return ErrNegativeBudget
	}
	return nil
}

func (s Settings) Validate() error {
	if s.GlobalMonthlyBudget != nil && s.GlobalMonthlyBudget.IsNegative() {
		return ErrNegativeBudget
	}
	return nil
}

// ValidHexColor reports whether s is a #RRGGBB hex color.
func ValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
