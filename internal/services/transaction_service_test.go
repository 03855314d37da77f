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

type stubPublisher struct {
	published [][2]int
}

func (p *stubPublisher) PublishMonthChanged(_ context.Context, year, month int) error {
	p.published = append(p.published, [2]int{year, month})
	return nil
}

func validTransaction() core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2026, 3, 10),
		Description: "groceries",
		Amount:      decimal.RequireFromString("42.50"),
	}
}

func TestCreateTransactionPublishesMonthChanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pub := &stubPublisher{}
	svc := NewTransactionService(store, pub)

	saved, err := svc.Create(ctx, validTransaction())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	require.Len(t, pub.published, 1)
	assert.Equal(t, [2]int{2026, 3}, pub.published[0])
}

func TestCreateTransactionWithoutPublisher(t *testing.T) {
	svc := NewTransactionService(memory.NewStore(), nil)

	_, err := svc.Create(context.Background(), validTransaction())
	require.NoError(t, err)
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := NewTransactionService(memory.NewStore(), nil)
	ctx := context.Background()

	tx := validTransaction()
	tx.Amount = decimal.Zero
	_, err := svc.Create(ctx, tx)
	assert.ErrorIs(t, err, core.ErrZeroAmount)

	tx = validTransaction()
	tx.Description = ""
	_, err = svc.Create(ctx, tx)
	assert.ErrorIs(t, err, core.ErrEmptyDescription)

	tx = validTransaction()
	tx.Date = core.NewDate(2099, 1, 1)
	_, err = svc.Create(ctx, tx)
	assert.ErrorIs(t, err, core.ErrFutureDate)
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	svc := NewTransactionService(memory.NewStore(), nil)

	tx := validTransaction()
	missing := int64(999)
	tx.CategoryID = &missing
	_, err := svc.Create(context.Background(), tx)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestUpdateTransactionNotifiesBothMonths(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pub := &stubPublisher{}
	svc := NewTransactionService(store, pub)

	saved, err := svc.Create(ctx, validTransaction())
	require.NoError(t, err)
	pub.published = nil

	saved.Date = core.NewDate(2026, 2, 28)
	_, err = svc.Update(ctx, saved)
	require.NoError(t, err)

	require.Len(t, pub.published, 2)
	assert.Contains(t, pub.published, [2]int{2026, 3})
	assert.Contains(t, pub.published, [2]int{2026, 2})
}

func TestUpdateMissingTransaction(t *testing.T) {
	svc := NewTransactionService(memory.NewStore(), nil)

	tx := validTransaction()
	tx.ID = 42
	_, err := svc.Update(context.Background(), tx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteTransactionNotifies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pub := &stubPublisher{}
	svc := NewTransactionService(store, pub)

	saved, err := svc.Create(ctx, validTransaction())
	require.NoError(t, err)
	pub.published = nil

	require.NoError(t, svc.Delete(ctx, saved.ID))
	require.Len(t, pub.published, 1)
	assert.Equal(t, [2]int{2026, 3}, pub.published[0])

	assert.ErrorIs(t, svc.Delete(ctx, saved.ID), storage.ErrNotFound)
}
