package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionValidate(t *testing.T) {
	today := NewDate(2025, 6, 15)
	valid := Transaction{
		Date:        NewDate(2025, 6, 10),
		Description: "Groceries run",
		Amount:      dec("45.50"),
	}

	assert.NoError(t, valid.Validate(today))

	t.Run("future date", func(t *testing.T) {
		tx := valid
		tx.Date = NewDate(2025, 6, 16)
		assert.ErrorIs(t, tx.Validate(today), ErrFutureDate)
	})

	t.Run("today is allowed", func(t *testing.T) {
		tx := valid
		tx.Date = today
		assert.NoError(t, tx.Validate(today))
	})

	t.Run("zero date", func(t *testing.T) {
		tx := valid
		tx.Date = Date{}
		assert.ErrorIs(t, tx.Validate(today), ErrInvalidDate)
	})

	t.Run("blank description", func(t *testing.T) {
		tx := valid
		tx.Description = "   "
		assert.ErrorIs(t, tx.Validate(today), ErrEmptyDescription)
	})

	t.Run("description too long", func(t *testing.T) {
		tx := valid
		tx.Description = strings.Repeat("x", MaxDescriptionLength+1)
		assert.ErrorIs(t, tx.Validate(today), ErrDescriptionTooLong)
	})

	t.Run("description limit counts characters, not bytes", func(t *testing.T) {
		tx := valid
		tx.Description = strings.Repeat("é", MaxDescriptionLength)
		assert.NoError(t, tx.Validate(today))

		tx.Description = strings.Repeat("é", MaxDescriptionLength+1)
		assert.ErrorIs(t, tx.Validate(today), ErrDescriptionTooLong)
	})

	t.Run("zero amount", func(t *testing.T) {
		tx := valid
		tx.Amount = dec("0")
		assert.ErrorIs(t, tx.Validate(today), ErrZeroAmount)
	})

	t.Run("negative amount is a refund, valid", func(t *testing.T) {
		tx := valid
		tx.Amount = dec("-12.99")
		assert.NoError(t, tx.Validate(today))
	})
}

func TestCategoryValidate(t *testing.T) {
	assert.NoError(t, Category{Name: "Groceries", Color: "#818cf8"}.Validate())
	assert.NoError(t, Category{Name: "Groceries"}.Validate())
	assert.ErrorIs(t, Category{Name: ""}.Validate(), ErrEmptyCategoryName)
	assert.ErrorIs(t, Category{Name: strings.Repeat("a", MaxCategoryNameLength+1)}.Validate(), ErrCategoryNameTooLong)
	assert.ErrorIs(t, Category{Name: "X", Color: "818cf8"}.Validate(), ErrInvalidColor)
	assert.ErrorIs(t, Category{Name: "X", Color: "#zzzzzz"}.Validate(), ErrInvalidColor)

	neg := dec("-1")
	assert.ErrorIs(t, Category{Name: "X", MonthlyBudget: &neg}.Validate(), ErrNegativeBudget)
	zero := dec("0")
	assert.NoError(t, Category{Name: "X", MonthlyBudget: &zero}.Validate())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, Settings{}.Validate())
	b := dec("2000")
	assert.NoError(t, Settings{GlobalMonthlyBudget: &b}.Validate())
	neg := dec("-0.01")
	assert.ErrorIs(t, Settings{GlobalMonthlyBudget: &neg}.Validate(), ErrNegativeBudget)
}

func TestValidHexColor(t *testing.T) {
	assert.True(t, ValidHexColor("#818cf8"))
	assert.True(t, ValidHexColor("#FFFFFF"))
	assert.False(t, ValidHexColor("#fff"))
	assert.False(t, ValidHexColor("818cf8"))
	assert.False(t, ValidHexColor("#818cg8"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 1, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2025-01-15", d.String())

	_, err = ParseDate("15/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("2025-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange(2025, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", from.String())
	assert.Equal(t, "2025-02-28", to.String())

	// Leap year February.
	_, to, err = MonthRange(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", to.String())

	_, _, err = MonthRange(2025, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, _, err = MonthRange(2025, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, _, err = MonthRange(0, 5)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2025, 3)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 2, m)

	y, m = PreviousMonth(2025, 1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 12, m)
}
