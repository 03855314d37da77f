package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/services"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// Amounts and percentages are emitted as bare JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeError maps a service error onto the API's status scheme: 404 for
// missing records, 409 for name collisions, 400 for malformed usage,
// 422 for domain validation failures, 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateName):
		respondError(w, http.StatusConflict, err.Error())
	case isUsageError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isUsageError(err error) bool {
	return errors.Is(err, core.ErrInvalidYear) ||
		errors.Is(err, core.ErrInvalidMonth) ||
		errors.Is(err, services.ErrInvalidPeriod)
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate,
		core.ErrFutureDate,
		core.ErrEmptyDescription,
		core.ErrDescriptionTooLong,
		core.ErrZeroAmount,
		core.ErrEmptyCategoryName,
		core.ErrCategoryNameTooLong,
		core.ErrInvalidColor,
		core.ErrNegativeBudget,
		services.ErrUnknownCategory,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// queryYearMonth reads the required year and month query parameters.
func queryYearMonth(r *http.Request) (int, int, error) {
	year, err := queryInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	month, err := queryInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, fmt.Errorf("missing %q query parameter", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %q query parameter: %q", name, v)
	}
	return n, nil
}

// queryOptionalInt returns (nil, nil) when the parameter is absent.
func queryOptionalInt(r *http.Request, name string) (*int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q query parameter: %q", name, v)
	}
	return &n, nil
}

// queryMonths reads the optional months rollup parameter, defaulting
// to a single month.
func queryMonths(r *http.Request) (int, error) {
	v, err := queryOptionalInt(r, "months")
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 1, nil
	}
	return int(*v), nil
}

// optionalID distinguishes an absent JSON field from an explicit null,
// so PATCH can clear a category without touching absent fields.
type optionalID struct {
	Set   bool
	Value *int64
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// optionalDecimal is the tri-state counterpart for nullable amounts
// such as budgets.
type optionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

func (o *optionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
