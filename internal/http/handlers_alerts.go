package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
)

type alertResponse struct {
	Scope    string          `json:"scope"`
	Category string          `json:"category,omitempty"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	Delta    decimal.Decimal `json:"delta"`
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("alerts:%04d-%02d", year, month)
	alerts, ok := s.alertsCache.Get(key)
	if !ok {
		alerts, err = s.alerts.MonthlyAlerts(r.Context(), year, month)
		if err != nil {
			writeError(w, err)
			return
		}
		s.alertsCache.Set(key, alerts)
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertJSON(a))
	}
	respondJSON(w, http.StatusOK, map[string][]alertResponse{"alerts": out})
}

// handleCategoryAlert reports a single category's budget standing over a
// 1, 3 or 12 month window ending at the given month. The alert is null
// when the category has no budget or stayed within the scaled budget.
func (s *Server) handleCategoryAlert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
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

	alert, err := s.alerts.PeriodCategoryAlert(r.Context(), year, month, months, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if alert == nil {
		respondJSON(w, http.StatusOK, map[string]*alertResponse{"alert": nil})
		return
	}
	out := alertJSON(*alert)
	respondJSON(w, http.StatusOK, map[string]*alertResponse{"alert": &out})
}

func alertJSON(a core.Alert) alertResponse {
	return alertResponse{
		Scope:    string(a.Scope),
		Category: a.Category,
		Budget:   a.Budget,
		Actual:   a.Actual,
		Delta:    a.Delta,
	}
}
