package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AlertScope distinguishes whole-budget alerts from per-category ones.
type AlertScope string

const (
	ScopeGlobal   AlertScope = "global"
	ScopeCategory AlertScope = "category"
)

// Alert is a derived budget-overrun notice. It is never persisted: alerts
// are recomputed from current data on every evaluation, so removing the
// offending transactions removes the alert.
type Alert struct {
	Scope    AlertScope
	Category string
	Budget   decimal.Decimal
	Actual   decimal.Decimal
	Delta    decimal.Decimal
}

// ComputeAlerts compares actual spend against configured budgets and returns
// the overruns. The comparison is strictly greater-than: spending exactly at
// budget does not alert. The global alert (if any) comes first, then category
// alerts sorted by category name so the output is deterministic.
//
// A nil budget means "not configured" and can never alert. An explicit zero
// budget is enforceable: any positive spend overruns it.
func ComputeAlerts(s Summary, globalBudget *decimal.Decimal, categories []Category) []Alert {
	alerts := []Alert{}

	if globalBudget != nil && s.Total.GreaterThan(*globalBudget) {
		alerts = append(alerts, Alert{
			Scope:  ScopeGlobal,
			Budget: globalBudget.Round(2),
			Actual: s.Total.Round(2),
			Delta:  s.Total.Sub(*globalBudget).Round(2),
		})
	}

	sorted := make([]Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, cat := range sorted {
		if cat.MonthlyBudget == nil {
			continue
		}
		actual := decimal.Zero
		if bd, ok := s.ByCategory[cat.Name]; ok {
			actual = bd.Total
		}
		if !actual.GreaterThan(*cat.MonthlyBudget) {
			continue
		}
		alerts = append(alerts, Alert{
			Scope:    ScopeCategory,
			Category: cat.Name,
			Budget:   cat.MonthlyBudget.Round(2),
			Actual:   actual.Round(2),
			Delta:    actual.Sub(*cat.MonthlyBudget).Round(2),
		})
	}

	return alerts
}

// ScaleBudget returns the effective budget for a span of months. Budgets
// scale strictly linearly: there is no carryover between months.
func ScaleBudget(monthly decimal.Decimal, months int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(months)))
}
