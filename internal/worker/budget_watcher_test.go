package worker

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Claipousse/LedgerOne/internal/amqp"
	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/services"
	"github.com/Claipousse/LedgerOne/internal/storage/memory"
)

type recordingWriter struct {
	appended []core.Summary
}

func (w *recordingWriter) AppendMonthlySummary(_ context.Context, _, _ int, s core.Summary) error {
	w.appended = append(w.appended, s)
	return nil
}

func newWatcher(store *memory.Store, writer *recordingWriter) *BudgetWatcher {
	insights := services.NewInsightsService(store)
	alerts := services.NewAlertService(store, insights)
	if writer == nil {
		return NewBudgetWatcher(alerts, insights, nil)
	}
	return NewBudgetWatcher(alerts, insights, writer)
}

func TestHandleMonthChanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	budget := decimal.RequireFromString("50")
	require.NoError(t, store.UpdateSettings(ctx, core.Settings{GlobalMonthlyBudget: &budget}))

	date, err := core.ParseDate("2026-03-10")
	require.NoError(t, err)
	_, err = store.InsertTransaction(ctx, core.Transaction{
		Date:        date,
		Description: "big spend",
		Amount:      decimal.RequireFromString("80"),
	})
	require.NoError(t, err)

	w := newWatcher(store, nil)
	msg := amqp.NewMonthChangedMessage(2026, 3)
	assert.NoError(t, w.HandleMonthChanged(ctx, msg))
}

func TestCheckMonthRejectsBadInput(t *testing.T) {
	w := newWatcher(memory.NewStore(), nil)
	assert.Error(t, w.CheckMonth(context.Background(), 2026, 13))
}

func TestCheckMonthExportsSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	writer := &recordingWriter{}

	date, err := core.ParseDate("2026-03-10")
	require.NoError(t, err)
	_, err = store.InsertTransaction(ctx, core.Transaction{
		Date:        date,
		Description: "groceries",
		Amount:      decimal.RequireFromString("42.50"),
	})
	require.NoError(t, err)

	w := newWatcher(store, writer)
	require.NoError(t, w.CheckMonth(ctx, 2026, 3))

	require.Len(t, writer.appended, 1)
	assert.Equal(t, 1, writer.appended[0].Count)
	assert.True(t, writer.appended[0].Total.Equal(decimal.RequireFromString("42.50")))
}
