package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
)

type categoryResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Color         string           `json:"color"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget"`
}

type categoryPayload struct {
	Name          *string         `json:"name"`
	Color         *string         `json:"color"`
	MonthlyBudget optionalDecimal `json:"monthly_budget"`
}

func categoryJSON(c core.Category) categoryResponse {
	return categoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Color:         c.Color,
		MonthlyBudget: c.MonthlyBudget,
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var c core.Category
	if payload.Name != nil {
		c.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Color != nil {
		c.Color = strings.TrimSpace(*payload.Color)
	}
	if payload.MonthlyBudget.Set {
		c.MonthlyBudget = payload.MonthlyBudget.Value
	}

	saved, err := s.categories.Create(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusCreated, categoryJSON(saved))
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categoryJSON(c))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload categoryPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.Name != nil {
		existing.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Color != nil {
		existing.Color = strings.TrimSpace(*payload.Color)
	}
	if payload.MonthlyBudget.Set {
		existing.MonthlyBudget = payload.MonthlyBudget.Value
	}

	updated, err := s.categories.Update(r.Context(), existing)
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusOK, categoryJSON(updated))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	w.WriteHeader(http.StatusNoContent)
}
