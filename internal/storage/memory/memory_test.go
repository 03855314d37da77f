package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestTransactionCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.InsertTransaction(ctx, core.Transaction{
		Date:        mustDate(t, "2026-03-10"),
		Description: "groceries",
		Amount:      decimal.RequireFromString("-42.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.ID)

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Description)

	got.Description = "weekly groceries"
	require.NoError(t, s.UpdateTransaction(ctx, got))

	got, err = s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekly groceries", got.Description)

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	_, err = s.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	cat, err := s.CreateCategory(ctx, core.Category{Name: "Food"})
	require.NoError(t, err)

	insert := func(date, desc string, catID *int64) {
		t.Helper()
		_, err := s.InsertTransaction(ctx, core.Transaction{
			Date:        mustDate(t, date),
			Description: desc,
			Amount:      decimal.RequireFromString("-10"),
			CategoryID:  catID,
		})
		require.NoError(t, err)
	}

	insert("2026-01-15", "lunch", &cat.ID)
	insert("2026-02-01", "rent", nil)
	insert("2026-02-20", "dinner out", &cat.ID)

	from := mustDate(t, "2026-02-01")
	txs, err := s.ListTransactions(ctx, storage.TransactionFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "dinner out", txs[0].Description)
	assert.Equal(t, "rent", txs[1].Description)

	txs, err = s.ListTransactions(ctx, storage.TransactionFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, err = s.ListTransactions(ctx, storage.TransactionFilter{Search: "DINNER"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "dinner out", txs[0].Description)

	txs, err = s.ListTransactions(ctx, storage.TransactionFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "rent", txs[0].Description)
}

func TestCategoryNameUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.CreateCategory(ctx, core.Category{Name: "Food"})
	require.NoError(t, err)

	_, err = s.CreateCategory(ctx, core.Category{Name: "Food"})
	assert.ErrorIs(t, err, storage.ErrDuplicateName)

	other, err := s.CreateCategory(ctx, core.Category{Name: "Travel"})
	require.NoError(t, err)

	other.Name = "Food"
	assert.ErrorIs(t, s.UpdateCategory(ctx, other), storage.ErrDuplicateName)
}

func TestDeleteCategoryDetachesTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	cat, err := s.CreateCategory(ctx, core.Category{Name: "Food"})
	require.NoError(t, err)

	tx, err := s.InsertTransaction(ctx, core.Transaction{
		Date:        mustDate(t, "2026-03-01"),
		Description: "snacks",
		Amount:      decimal.RequireFromString("-5"),
		CategoryID:  &cat.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings.GlobalMonthlyBudget)

	budget := decimal.RequireFromString("1500")
	require.NoError(t, s.UpdateSettings(ctx, core.Settings{GlobalMonthlyBudget: &budget}))

	settings, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings.GlobalMonthlyBudget)
	assert.True(t, settings.GlobalMonthlyBudget.Equal(budget))
}
