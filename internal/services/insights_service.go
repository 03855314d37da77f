package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// ErrInvalidPeriod is returned for rollup windows other than 1, 3 or 12 months.
var ErrInvalidPeriod = errors.New("months must be 1, 3 or 12")

// Trend compares two consecutive periods of equal length.
type Trend struct {
	Current       decimal.Decimal
	Previous      decimal.Decimal
	ChangePercent decimal.Decimal
}

// InsightsService computes aggregated views over recorded transactions.
// Aggregation itself is pure; the service only fetches a snapshot and
// delegates to the core engine.
type InsightsService struct {
	store storage.Store
}

func NewInsightsService(store storage.Store) *InsightsService {
	return &InsightsService{store: store}
}

// MonthlySummary aggregates one calendar month.
func (s *InsightsService) MonthlySummary(ctx context.Context, year, month int) (core.Summary, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return core.Summary{}, err
	}

	txs, err := s.monthTransactions(ctx, year, month, nil)
	if err != nil {
		return core.Summary{}, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return core.Summary{}, err
	}

	return core.Summarize(txs, names), nil
}

// MonthlyTotal returns the signed total for one month, optionally
// narrowed to a single category.
func (s *InsightsService) MonthlyTotal(ctx context.Context, year, month int, categoryID *int64) (decimal.Decimal, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return decimal.Zero, err
	}

	txs, err := s.monthTransactions(ctx, year, month, categoryID)
	if err != nil {
		return decimal.Zero, err
	}
	return core.SumAmounts(txs), nil
}

// PeriodTotal sums the totals of months consecutive months ending at
// (year, month).
func (s *InsightsService) PeriodTotal(ctx context.Context, year, month, months int, categoryID *int64) (decimal.Decimal, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return decimal.Zero, err
	}
	if err := checkPeriod(months); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	y, m := year, month
	for i := 0; i < months; i++ {
		txs, err := s.monthTransactions(ctx, y, m, categoryID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(core.SumAmounts(txs))
		y, m = core.PreviousMonth(y, m)
	}
	return total, nil
}

// PeriodBreakdown aggregates months consecutive months ending at
// (year, month) into a single Summary. Per-category entries are merged
// month by month and percentages recomputed from the combined totals.
func (s *InsightsService) PeriodBreakdown(ctx context.Context, year, month, months int) (core.Summary, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return core.Summary{}, err
	}
	if err := checkPeriod(months); err != nil {
		return core.Summary{}, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return core.Summary{}, err
	}

	merged := core.Summary{
		Total:   decimal.Zero,
		Average: decimal.Zero,
	}
	var monthly []map[string]core.CategoryBreakdown

	y, m := year, month
	for i := 0; i < months; i++ {
		txs, err := s.monthTransactions(ctx, y, m, nil)
		if err != nil {
			return core.Summary{}, err
		}
		summary := core.Summarize(txs, names)
		merged.Total = merged.Total.Add(summary.Total)
		merged.Count += summary.Count
		monthly = append(monthly, summary.ByCategory)
		y, m = core.PreviousMonth(y, m)
	}

	merged.ByCategory = core.MergeBreakdowns(merged.Total, monthly...)
	if merged.Count > 0 {
		merged.Average = merged.Total.Div(decimal.NewFromInt(int64(merged.Count))).Round(2)
	}
	return merged, nil
}

// Trend compares the period of months months ending at (year, month)
// with the immediately preceding period of the same length.
func (s *InsightsService) Trend(ctx context.Context, year, month, months int) (Trend, error) {
	if err := core.CheckYearMonth(year, month); err != nil {
		return Trend{}, err
	}
	if err := checkPeriod(months); err != nil {
		return Trend{}, err
	}

	current, err := s.PeriodTotal(ctx, year, month, months, nil)
	if err != nil {
		return Trend{}, err
	}

	y, m := year, month
	for i := 0; i < months; i++ {
		y, m = core.PreviousMonth(y, m)
	}
	previous, err := s.PeriodTotal(ctx, y, m, months, nil)
	if err != nil {
		return Trend{}, err
	}

	return Trend{
		Current:       current,
		Previous:      previous,
		ChangePercent: core.PercentChange(current, previous),
	}, nil
}

func (s *InsightsService) monthTransactions(ctx context.Context, year, month int, categoryID *int64) ([]core.Transaction, error) {
	from, to, err := core.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, storage.TransactionFilter{
		From:       &from,
		To:         &to,
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions for %d-%02d: %w", year, month, err)
	}
	return txs, nil
}

func (s *InsightsService) categoryNames(ctx context.Context) (map[int64]string, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func checkPeriod(months int) error {
	switch months {
	case 1, 3, 12:
		return nil
	default:
		return ErrInvalidPeriod
	}
}
