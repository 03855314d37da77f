// Package core holds the domain types and the pure aggregation rules of the
// budget engine. Everything here is a function of its inputs: storage access,
// transport, and caching live in the outer layers.
package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type (
	// CategoryBreakdown is the per-category slice of a Summary. Percentage
	// is the category total relative to the overall period total.
	CategoryBreakdown struct {
		Total      decimal.Decimal
		Count      int
		Percentage decimal.Decimal
	}

	// Summary is the aggregated financial snapshot of a period. Transactions
	// without a category contribute to Total and Count but never appear in
	// ByCategory, so the per-category totals sum to at most Total.
	Summary struct {
		Total      decimal.Decimal
		Count      int
		Average    decimal.Decimal
		ByCategory map[string]CategoryBreakdown
	}
)

// Summarize aggregates a set of transactions into a Summary. categoryNames
// maps category IDs to display names; transactions referencing an unknown ID
// are treated as uncategorized. An empty input yields a zero-valued Summary
// with an empty ByCategory map.
func Summarize(txs []Transaction, categoryNames map[int64]string) Summary {
	s := Summary{
		Total:      decimal.Zero,
		Average:    decimal.Zero,
		ByCategory: make(map[string]CategoryBreakdown),
	}

	for _, tx := range txs {
		s.Total = s.Total.Add(tx.Amount)
		s.Count++

		if tx.CategoryID == nil {
			continue
		}
		name, ok := categoryNames[*tx.CategoryID]
		if !ok {
			continue
		}
		bd := s.ByCategory[name]
		bd.Total = bd.Total.Add(tx.Amount)
		bd.Count++
		s.ByCategory[name] = bd
	}

	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}

	for name, bd := range s.ByCategory {
		bd.Percentage = PercentOf(bd.Total, s.Total)
		s.ByCategory[name] = bd
	}

	return s
}

// SumAmounts returns the signed sum of the transaction amounts.
func SumAmounts(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// PercentOf computes 100*part/whole rounded to two places. A zero whole is a
// first-class input, not an error: it yields zero.
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}

// MergeBreakdowns sums per-category breakdown maps entry-wise and recomputes
// every percentage against the combined overall total. This is the multi-month
// rollup rule: monthly maps are merged, then percentages are derived from the
// summed totals rather than averaged.
func MergeBreakdowns(overallTotal decimal.Decimal, monthly ...map[string]CategoryBreakdown) map[string]CategoryBreakdown {
	merged := make(map[string]CategoryBreakdown)
	for _, m := range monthly {
		for name, bd := range m {
			acc := merged[name]
			acc.Total = acc.Total.Add(bd.Total)
			acc.Count += bd.Count
			merged[name] = acc
		}
	}
	for name, bd := range merged {
		bd.Percentage = PercentOf(bd.Total, overallTotal)
		merged[name] = bd
	}
	return merged
}
