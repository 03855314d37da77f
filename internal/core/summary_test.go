package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptrID(id int64) *int64 { return &id }

func tx(day int, amount string, categoryID *int64) Transaction {
	return Transaction{
		Date:        NewDate(2025, 1, day),
		Description: "test",
		Amount:      dec(amount),
		CategoryID:  categoryID,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)

	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.Average.IsZero())
	assert.Empty(t, s.ByCategory)
	require.NotNil(t, s.ByCategory)
}

func TestSummarize_TotalIsSignedSum(t *testing.T) {
	txs := []Transaction{
		tx(5, "45.50", ptrID(1)),
		tx(10, "60.00", ptrID(2)),
		tx(15, "-20.50", ptrID(1)), // refund
	}
	names := map[int64]string{1: "Groceries", 2: "Transport"}

	s := Summarize(txs, names)

	assert.True(t, s.Total.Equal(dec("85")), "total=%s", s.Total)
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Average.Equal(dec("28.33")), "average=%s", s.Average)
}

func TestSummarize_ByCategory(t *testing.T) {
	txs := []Transaction{
		tx(1, "75.00", ptrID(1)),
		tx(2, "25.00", ptrID(2)),
	}
	names := map[int64]string{1: "Groceries", 2: "Transport"}

	s := Summarize(txs, names)

	require.Len(t, s.ByCategory, 2)
	groceries := s.ByCategory["Groceries"]
	assert.True(t, groceries.Total.Equal(dec("75")))
	assert.Equal(t, 1, groceries.Count)
	assert.True(t, groceries.Percentage.Equal(dec("75")), "pct=%s", groceries.Percentage)
	transport := s.ByCategory["Transport"]
	assert.True(t, transport.Percentage.Equal(dec("25")))
}

func TestSummarize_UncategorizedCountsTowardTotalOnly(t *testing.T) {
	txs := []Transaction{
		tx(1, "50.00", ptrID(1)),
		tx(2, "50.00", nil),
	}
	names := map[int64]string{1: "Groceries"}

	s := Summarize(txs, names)

	assert.True(t, s.Total.Equal(dec("100")))
	assert.Equal(t, 2, s.Count)
	require.Len(t, s.ByCategory, 1)
	// Percentage uses the overall total as denominator, not the sum of
	// categorized amounts.
	assert.True(t, s.ByCategory["Groceries"].Percentage.Equal(dec("50")))
}

func TestSummarize_UnknownCategoryIDTreatedAsUncategorized(t *testing.T) {
	txs := []Transaction{tx(1, "10.00", ptrID(99))}

	s := Summarize(txs, map[int64]string{1: "Groceries"})

	assert.True(t, s.Total.Equal(dec("10")))
	assert.Empty(t, s.ByCategory)
}

func TestSummarize_ZeroTotalYieldsZeroPercentages(t *testing.T) {
	txs := []Transaction{
		tx(1, "30.00", ptrID(1)),
		tx(2, "-30.00", ptrID(2)),
	}
	names := map[int64]string{1: "Groceries", 2: "Refunds"}

	s := Summarize(txs, names)

	assert.True(t, s.Total.IsZero())
	for name, bd := range s.ByCategory {
		assert.True(t, bd.Percentage.IsZero(), "category %s pct=%s", name, bd.Percentage)
	}
}

func TestSummarize_PercentagesSumToAtMost100(t *testing.T) {
	txs := []Transaction{
		tx(1, "33.33", ptrID(1)),
		tx(2, "33.33", ptrID(2)),
		tx(3, "33.34", nil),
	}
	names := map[int64]string{1: "A", 2: "B"}

	s := Summarize(txs, names)

	sum := decimal.Zero
	for _, bd := range s.ByCategory {
		sum = sum.Add(bd.Percentage)
	}
	assert.True(t, sum.LessThanOrEqual(dec("100")), "pct sum=%s", sum)
}

func TestPercentOf(t *testing.T) {
	assert.True(t, PercentOf(dec("25"), dec("100")).Equal(dec("25")))
	assert.True(t, PercentOf(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, PercentOf(dec("50"), decimal.Zero).IsZero())
}

func TestMergeBreakdowns(t *testing.T) {
	jan := map[string]CategoryBreakdown{
		"Groceries": {Total: dec("100"), Count: 2},
		"Transport": {Total: dec("50"), Count: 1},
	}
	feb := map[string]CategoryBreakdown{
		"Groceries": {Total: dec("50"), Count: 1},
	}

	merged := MergeBreakdowns(dec("200"), jan, feb)

	require.Len(t, merged, 2)
	assert.True(t, merged["Groceries"].Total.Equal(dec("150")))
	assert.Equal(t, 3, merged["Groceries"].Count)
	// Percentages come from the summed totals, not the monthly ones.
	assert.True(t, merged["Groceries"].Percentage.Equal(dec("75")))
	assert.True(t, merged["Transport"].Percentage.Equal(dec("25")))
}

func TestSumAmounts(t *testing.T) {
	txs := []Transaction{
		tx(1, "10.00", nil),
		tx(2, "-2.50", nil),
	}
	assert.True(t, SumAmounts(txs).Equal(dec("7.5")))
	assert.True(t, SumAmounts(nil).IsZero())
}
