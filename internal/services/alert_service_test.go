package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage/memory"
)

func newAlertService(store *memory.Store) *AlertService {
	return NewAlertService(store, NewInsightsService(store))
}

func setGlobalBudget(t *testing.T, store *memory.Store, budget string) {
	t.Helper()
	b := decimal.RequireFromString(budget)
	require.NoError(t, store.UpdateSettings(context.Background(), core.Settings{GlobalMonthlyBudget: &b}))
}

func TestMonthlyAlertsOrderingAndStrictness(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newAlertService(store)

	setGlobalBudget(t, store, "100")
	food := seedCategory(t, store, "Food", "40")
	travel := seedCategory(t, store, "Travel", "30")
	seedCategory(t, store, "Misc", "") // no budget, never alerts

	seedTransaction(t, store, "2026-03-05", "groceries", "60", &food.ID)
	seedTransaction(t, store, "2026-03-10", "train", "30", &travel.ID) // exactly at budget
	seedTransaction(t, store, "2026-03-15", "cash", "50", nil)

	alerts, err := svc.MonthlyAlerts(ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, core.ScopeGlobal, alerts[0].Scope)
	assert.True(t, alerts[0].Actual.Equal(decimal.RequireFromString("140")))
	assert.True(t, alerts[0].Delta.Equal(decimal.RequireFromString("40")))

	assert.Equal(t, core.ScopeCategory, alerts[1].Scope)
	assert.Equal(t, "Food", alerts[1].Category)
	assert.True(t, alerts[1].Delta.Equal(decimal.RequireFromString("20")))
}

func TestMonthlyAlertsNoBudgetsConfigured(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newAlertService(store)

	seedTransaction(t, store, "2026-03-05", "groceries", "9999", nil)

	alerts, err := svc.MonthlyAlerts(ctx, 2026, 3)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestMonthlyAlertsZeroBudgetIsEnforceable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newAlertService(store)

	food := seedCategory(t, store, "Food", "0")
	seedTransaction(t, store, "2026-03-05", "groceries", "0.01", &food.ID)

	alerts, err := svc.MonthlyAlerts(ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Food", alerts[0].Category)
}

func TestPeriodCategoryAlertScalesBudget(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newAlertService(store)

	food := seedCategory(t, store, "Food", "40")
	seedTransaction(t, store, "2026-01-10", "january", "50", &food.ID)
	seedTransaction(t, store, "2026-02-10", "february", "50", &food.ID)
	seedTransaction(t, store, "2026-03-10", "march", "50", &food.ID)

	// 150 spent against 40*3=120.
	alert, err := svc.PeriodCategoryAlert(ctx, 2026, 3, 3, food.ID)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.True(t, alert.Budget.Equal(decimal.RequireFromString("120")))
	assert.True(t, alert.Actual.Equal(decimal.RequireFromString("150")))
	assert.True(t, alert.Delta.Equal(decimal.RequireFromString("30")))

	// The latest month alone also overruns: 50 > 40.
	alert, err = svc.PeriodCategoryAlert(ctx, 2026, 3, 1, food.ID)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.True(t, alert.Budget.Equal(decimal.RequireFromString("40")))
}

func TestPeriodCategoryAlertWithoutBudget(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newAlertService(store)

	misc := seedCategory(t, store, "Misc", "")
	seedTransaction(t, store, "2026-03-10", "anything", "1000", &misc.ID)

	alert, err := svc.PeriodCategoryAlert(ctx, 2026, 3, 1, misc.ID)
	require.NoError(t, err)
	assert.Nil(t, alert)
}
