package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// RawRow is one CSV data row before validation. Category is optional.
type RawRow struct {
	Date        string
	Description string
	Amount      string
	Category    string
}

// RowError reports why a data row was skipped. Line is 1-based over
// data rows, the header not counted.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Decision is the planned outcome for one data row: either a rejection
// (Err set) or a transaction to insert, possibly preceded by creating
// the named category. Category creation is planned once per new name
// even when several rows share it.
type Decision struct {
	Line           int
	Err            string
	Transaction    core.Transaction
	CategoryName   string
	CreateCategory bool
}

// Report summarizes an import batch.
type Report struct {
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// ImportService loads transactions in bulk from CSV.
type ImportService struct {
	store     storage.Store
	publisher MonthChangedPublisher
}

func NewImportService(store storage.Store, publisher MonthChangedPublisher) *ImportService {
	return &ImportService{store: store, publisher: publisher}
}

// ValidateRows checks every row independently and plans the batch.
// existing maps known category names to their IDs; names outside it are
// planned for creation exactly once. The function is pure: it never
// touches storage.
func ValidateRows(rows []RawRow, today core.Date, existing map[string]int64) []Decision {
	decisions := make([]Decision, 0, len(rows))
	planned := make(map[string]bool)

	for i, row := range rows {
		line := i + 1
		d := Decision{Line: line}

		tx, msg := validateRow(row, today)
		if msg != "" {
			d.Err = msg
			decisions = append(decisions, d)
			continue
		}

		d.Transaction = tx
		name := strings.TrimSpace(row.Category)
		if name != "" {
			d.CategoryName = name
			if _, known := existing[name]; !known && !planned[name] {
				d.CreateCategory = true
				planned[name] = true
			}
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// Row checks short-circuit in a fixed order: date format, future date,
// description presence and length, amount syntax, non-zero amount.
func validateRow(row RawRow, today core.Date) (core.Transaction, string) {
	date, err := core.ParseDate(strings.TrimSpace(row.Date))
	if err != nil {
		return core.Transaction{}, "date must be in YYYY-MM-DD format"
	}
	if date.After(today) {
		return core.Transaction{}, "date cannot be in the future"
	}

	desc := strings.TrimSpace(row.Description)
	if desc == "" {
		return core.Transaction{}, "description is required"
	}
	if utf8.RuneCountInString(desc) > core.MaxDescriptionLength {
		return core.Transaction{}, "description must be 255 characters or fewer"
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return core.Transaction{}, "amount must be a number"
	}
	if amount.IsZero() {
		return core.Transaction{}, "amount cannot be zero"
	}

	return core.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
	}, ""
}

// ImportBatch parses CSV from r and applies it row by row. Bad rows are
// reported and skipped, never aborting the batch. Missing categories
// are created on first use with the default color and no budget.
func (s *ImportService) ImportBatch(ctx context.Context, r io.Reader) (Report, error) {
	rows, err := parseCSV(r)
	if err != nil {
		msg := "csv file is empty or malformed"
		if !errors.Is(err, io.EOF) {
			msg = err.Error()
		}
		return Report{Errors: []RowError{{Line: 0, Message: msg}}}, nil
	}
	if len(rows) == 0 {
		return Report{Errors: []RowError{{Line: 0, Message: "csv file is empty or malformed"}}}, nil
	}

	existing, err := s.knownCategories(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Errors: []RowError{}}
	months := make(map[[2]int]bool)

	for _, d := range ValidateRows(rows, core.Today(), existing) {
		if d.Err != "" {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: d.Line, Message: d.Err})
			continue
		}

		tx := d.Transaction
		if d.CategoryName != "" {
			id, err := s.resolveCategory(ctx, d.CategoryName, existing)
			if err != nil {
				report.Skipped++
				report.Errors = append(report.Errors, RowError{Line: d.Line, Message: err.Error()})
				continue
			}
			tx.CategoryID = &id
		}

		if _, err := s.store.InsertTransaction(ctx, tx); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: d.Line, Message: fmt.Sprintf("import failed: %v", err)})
			continue
		}
		report.Inserted++
		months[[2]int{tx.Date.Year(), tx.Date.Month()}] = true
	}

	s.notifyMonths(ctx, months)
	return report, nil
}

func (s *ImportService) resolveCategory(ctx context.Context, name string, existing map[string]int64) (int64, error) {
	if id, ok := existing[name]; ok {
		return id, nil
	}

	cat, err := s.store.CreateCategory(ctx, core.Category{
		Name:  name,
		Color: core.DefaultCategoryColor,
	})
	if err != nil {
		// Lost a race with another writer: fall back to lookup.
		found, ok, ferr := s.store.FindCategoryByName(ctx, name)
		if ferr == nil && ok {
			existing[name] = found.ID
			return found.ID, nil
		}
		return 0, fmt.Errorf("create category %q: %w", name, err)
	}

	existing[name] = cat.ID
	return cat.ID, nil
}

func (s *ImportService) knownCategories(ctx context.Context) (map[string]int64, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	known := make(map[string]int64, len(cats))
	for _, c := range cats {
		known[c.Name] = c.ID
	}
	return known, nil
}

func (s *ImportService) notifyMonths(ctx context.Context, months map[[2]int]bool) {
	if s.publisher == nil || len(months) == 0 {
		return
	}
	for ym := range months {
		if err := s.publisher.PublishMonthChanged(ctx, ym[0], ym[1]); err != nil {
			slog.ErrorContext(ctx, "Failed to publish month changed message",
				"year", ym[0], "month", ym[1], "error", err)
		}
	}
}

// parseCSV reads header-keyed rows. Column order is free as long as the
// header names the date, description and amount columns; category is
// optional.
func parseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				// Reader failures repeat forever; only csv parse
				// errors are recoverable.
				return nil, fmt.Errorf("read row: %w", err)
			}
			// Keep the row slot so line numbers stay stable; the bad
			// row fails date validation downstream.
			rows = append(rows, RawRow{})
			continue
		}
		rows = append(rows, RawRow{
			Date:        field(record, cols, "date"),
			Description: field(record, cols, "description"),
			Amount:      field(record, cols, "amount"),
			Category:    field(record, cols, "category"),
		})
	}
	return rows, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
