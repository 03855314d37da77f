package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
)

type settingsResponse struct {
	GlobalMonthlyBudget *decimal.Decimal `json:"global_monthly_budget"`
}

type settingsPayload struct {
	GlobalMonthlyBudget optionalDecimal `json:"global_monthly_budget"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsResponse{GlobalMonthlyBudget: settings.GlobalMonthlyBudget})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.settings.Update(r.Context(), core.Settings{
		GlobalMonthlyBudget: payload.GlobalMonthlyBudget.Value,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusOK, settingsResponse{GlobalMonthlyBudget: updated.GlobalMonthlyBudget})
}
