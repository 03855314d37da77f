package services

import (
	"context"
	"log/slog"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// CategoryService manages spending categories and their budgets.
type CategoryService struct {
	store     storage.Store
	publisher MonthChangedPublisher
}

func NewCategoryService(store storage.Store, publisher MonthChangedPublisher) *CategoryService {
	return &CategoryService{store: store, publisher: publisher}
}

func (s *CategoryService) Create(ctx context.Context, c core.Category) (core.Category, error) {
	if c.Color == "" {
		c.Color = core.DefaultCategoryColor
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	saved, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, err
	}

	if saved.MonthlyBudget != nil {
		s.notifyCurrentMonth(ctx)
	}
	return saved, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (core.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return core.Category{}, err
	}

	// Budget changes shift what alerts, so re-check the current month.
	s.notifyCurrentMonth(ctx)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.notifyCurrentMonth(ctx)
	return nil
}

func (s *CategoryService) notifyCurrentMonth(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	today := core.Today()
	if err := s.publisher.PublishMonthChanged(ctx, today.Year(), today.Month()); err != nil {
		slog.ErrorContext(ctx, "Failed to publish month changed message", "error", err)
	}
}
