package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
)

type breakdownEntry struct {
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type summaryResponse struct {
	Total      decimal.Decimal           `json:"total"`
	Count      int                       `json:"count"`
	Average    decimal.Decimal           `json:"average"`
	ByCategory map[string]breakdownEntry `json:"by_category"`
}

func summaryJSON(s core.Summary) summaryResponse {
	out := summaryResponse{
		Total:      s.Total,
		Count:      s.Count,
		Average:    s.Average,
		ByCategory: make(map[string]breakdownEntry, len(s.ByCategory)),
	}
	for name, bd := range s.ByCategory {
		out.ByCategory[name] = breakdownEntry{
			Total:      bd.Total,
			Count:      bd.Count,
			Percentage: bd.Percentage,
		}
	}
	return out
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.cachedSummary(r, year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaryJSON(summary))
}

func (s *Server) cachedSummary(r *http.Request, year, month int) (core.Summary, error) {
	key := fmt.Sprintf("summary:%04d-%02d", year, month)
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, nil
	}

	summary, err := s.insights.MonthlySummary(r.Context(), year, month)
	if err != nil {
		return core.Summary{}, err
	}
	s.summaryCache.Set(key, summary)
	return summary, nil
}

func (s *Server) handleMonthlyTotal(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	categoryID, err := queryOptionalInt(r, "category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := s.insights.MonthlyTotal(r.Context(), year, month, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]decimal.Decimal{"total": total})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	months, err := queryMonths(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var summary core.Summary
	if months == 1 {
		summary, err = s.cachedSummary(r, year, month)
	} else {
		// Rollup windows are rarely repeated; skip the cache.
		summary, err = s.insights.PeriodBreakdown(r.Context(), year, month, months)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaryJSON(summary).ByCategory)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	months, err := queryMonths(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	trend, err := s.insights.Trend(r.Context(), year, month, months)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]decimal.Decimal{
		"current":        trend.Current,
		"previous":       trend.Previous,
		"change_percent": trend.ChangePercent,
	})
}
