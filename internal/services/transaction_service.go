package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// ErrUnknownCategory is returned when a transaction references a
// category that does not exist.
var ErrUnknownCategory = errors.New("category does not exist")

// TransactionService orchestrates transaction writes: validation,
// persistence and month-changed notification.
type TransactionService struct {
	store     storage.Store
	publisher MonthChangedPublisher
}

func NewTransactionService(store storage.Store, publisher MonthChangedPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(core.Today()); err != nil {
		return core.Transaction{}, err
	}
	if err := s.checkCategory(ctx, tx.CategoryID); err != nil {
		return core.Transaction{}, err
	}

	saved, err := s.store.InsertTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.notifyMonthChanged(ctx, saved.Date.Year(), saved.Date.Month())
	return saved, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, f storage.TransactionFilter) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, f)
}

func (s *TransactionService) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	existing, err := s.store.GetTransaction(ctx, tx.ID)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := tx.Validate(core.Today()); err != nil {
		return core.Transaction{}, err
	}
	if err := s.checkCategory(ctx, tx.CategoryID); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.notifyMonthChanged(ctx, existing.Date.Year(), existing.Date.Month())
	if existing.Date.Year() != tx.Date.Year() || existing.Date.Month() != tx.Date.Month() {
		s.notifyMonthChanged(ctx, tx.Date.Year(), tx.Date.Month())
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	existing, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.notifyMonthChanged(ctx, existing.Date.Year(), existing.Date.Month())
	return nil
}

func (s *TransactionService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.store.GetCategory(ctx, *categoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("check category %d: %w", *categoryID, err)
	}
	return nil
}

// notifyMonthChanged publishes asynchronously relevant state; failures
// are logged, never surfaced, so a broker outage cannot fail a write.
func (s *TransactionService) notifyMonthChanged(ctx context.Context, year, month int) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping month changed message")
		return
	}
	if err := s.publisher.PublishMonthChanged(ctx, year, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish month changed message",
			"year", year, "month", month, "error", err)
	}
}
