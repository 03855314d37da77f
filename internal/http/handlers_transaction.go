package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

type transactionResponse struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int64          `json:"category_id"`
}

type transactionPayload struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  optionalID       `json:"category_id"`
}

func transactionJSON(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Description: tx.Description,
		Amount:      tx.Amount,
		CategoryID:  tx.CategoryID,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.transactions.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionJSON(tx))
	}
	respondJSON(w, http.StatusOK, out)
}

func parseTransactionFilter(r *http.Request) (storage.TransactionFilter, error) {
	filter := storage.TransactionFilter{Limit: 100}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.From = &d
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.To = &d
	}

	categoryID, err := queryOptionalInt(r, "category_id")
	if err != nil {
		return filter, err
	}
	filter.CategoryID = categoryID

	filter.Search = strings.TrimSpace(r.URL.Query().Get("q"))

	if skip, err := queryOptionalInt(r, "skip"); err != nil {
		return filter, err
	} else if skip != nil && *skip > 0 {
		filter.Offset = int(*skip)
	}
	if limit, err := queryOptionalInt(r, "limit"); err != nil {
		return filter, err
	} else if limit != nil && *limit > 0 {
		filter.Limit = int(*limit)
	}

	return filter, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := transactionFromPayload(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := s.transactions.Create(r.Context(), tx)
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusCreated, transactionJSON(saved))
}

func transactionFromPayload(p transactionPayload) (core.Transaction, error) {
	var tx core.Transaction

	dateStr := ""
	if p.Date != nil {
		dateStr = *p.Date
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return tx, err
	}
	tx.Date = date

	if p.Description != nil {
		tx.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.CategoryID.Set {
		tx.CategoryID = p.CategoryID.Value
	}
	return tx, nil
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionJSON(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload transactionPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.Date != nil {
		date, err := core.ParseDate(*payload.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		existing.Date = date
	}
	if payload.Description != nil {
		existing.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Amount != nil {
		existing.Amount = *payload.Amount
	}
	if payload.CategoryID.Set {
		existing.CategoryID = payload.CategoryID.Value
	}

	updated, err := s.transactions.Update(r.Context(), existing)
	if err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	respondJSON(w, http.StatusOK, transactionJSON(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	w.WriteHeader(http.StatusNoContent)
}
