package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
	"github.com/Claipousse/LedgerOne/internal/storage/memory"
)

func TestCreateCategoryDefaultsColor(t *testing.T) {
	svc := NewCategoryService(memory.NewStore(), nil)

	saved, err := svc.Create(context.Background(), core.Category{Name: "Food"})
	require.NoError(t, err)
	assert.Equal(t, core.DefaultCategoryColor, saved.Color)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewCategoryService(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, core.Category{Name: ""})
	assert.ErrorIs(t, err, core.ErrEmptyCategoryName)

	_, err = svc.Create(ctx, core.Category{Name: "Food", Color: "red"})
	assert.ErrorIs(t, err, core.ErrInvalidColor)

	negative := decimal.RequireFromString("-1")
	_, err = svc.Create(ctx, core.Category{Name: "Food", MonthlyBudget: &negative})
	assert.ErrorIs(t, err, core.ErrNegativeBudget)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc := NewCategoryService(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, core.Category{Name: "Food"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, core.Category{Name: "Food"})
	assert.ErrorIs(t, err, storage.ErrDuplicateName)
}

func TestUpdateCategoryNotifiesCurrentMonth(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pub := &stubPublisher{}
	svc := NewCategoryService(store, pub)

	saved, err := svc.Create(ctx, core.Category{Name: "Food"})
	require.NoError(t, err)
	pub.published = nil

	budget := decimal.RequireFromString("200")
	saved.MonthlyBudget = &budget
	_, err = svc.Update(ctx, saved)
	require.NoError(t, err)

	today := core.Today()
	require.Len(t, pub.published, 1)
	assert.Equal(t, [2]int{today.Year(), today.Month()}, pub.published[0])
}

func TestSettingsUpdateValidatesBudget(t *testing.T) {
	svc := NewSettingsService(memory.NewStore(), nil)
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings.GlobalMonthlyBudget)

	negative := decimal.RequireFromString("-5")
	_, err = svc.Update(ctx, core.Settings{GlobalMonthlyBudget: &negative})
	assert.ErrorIs(t, err, core.ErrNegativeBudget)

	budget := decimal.RequireFromString("1200")
	updated, err := svc.Update(ctx, core.Settings{GlobalMonthlyBudget: &budget})
	require.NoError(t, err)
	require.NotNil(t, updated.GlobalMonthlyBudget)

	settings, err = svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings.GlobalMonthlyBudget)
	assert.True(t, settings.GlobalMonthlyBudget.Equal(budget))
}
