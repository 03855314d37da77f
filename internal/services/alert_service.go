package services

import (
	"context"
	"fmt"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// AlertService evaluates budgets against recorded spending.
type AlertService struct {
	store    storage.Store
	insights *InsightsService
}

func NewAlertService(store storage.Store, insights *InsightsService) *AlertService {
	return &AlertService{store: store, insights: insights}
}

// MonthlyAlerts reports every budget exceeded in the given month: the
// global budget first, then per-category budgets in name order. Unset
// budgets never alert.
func (s *AlertService) MonthlyAlerts(ctx context.Context, year, month int) ([]core.Alert, error) {
	summary, err := s.insights.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, err
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return core.ComputeAlerts(summary, settings.GlobalMonthlyBudget, cats), nil
}

// PeriodCategoryAlert checks one category over a rollup window. The
// monthly budget is scaled by the number of months before comparing.
// It returns nil when the category has no budget or spending stays
// within the scaled budget.
func (s *AlertService) PeriodCategoryAlert(ctx context.Context, year, month, months int, categoryID int64) (*core.Alert, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return nil, err
	}
	if err := checkPeriod(months); err != nil {
		return nil, err
	}

	cat, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", categoryID, err)
	}
	if cat.MonthlyBudget == nil {
		return nil, nil
	}

	total, err := s.insights.PeriodTotal(ctx, year, month, months, &categoryID)
	if err != nil {
		return nil, err
	}

	budget := core.ScaleBudget(*cat.MonthlyBudget, months)
	if !total.GreaterThan(budget) {
		return nil, nil
	}

	return &core.Alert{
		Scope:    core.ScopeCategory,
		Category: cat.Name,
		Budget:   budget.Round(2),
		Actual:   total.Round(2),
		Delta:    total.Sub(budget).Round(2),
	}, nil
}
