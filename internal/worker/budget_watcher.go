// Package worker runs the background budget watcher that reacts to
// month-changed messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Claipousse/LedgerOne/internal/amqp"
	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/services"
	"github.com/Claipousse/LedgerOne/internal/sheets"
)

// BudgetWatcher re-evaluates budgets whenever a month's data changes
// and logs every overrun. A sheets writer, when configured, receives a
// summary snapshot after each check.
type BudgetWatcher struct {
	alerts   *services.AlertService
	insights *services.InsightsService
	writer   sheets.SummaryWriter
}

func NewBudgetWatcher(alerts *services.AlertService, insights *services.InsightsService, writer sheets.SummaryWriter) *BudgetWatcher {
	return &BudgetWatcher{
		alerts:   alerts,
		insights: insights,
		writer:   writer,
	}
}

// HandleMonthChanged processes a single month-changed message.
func (w *BudgetWatcher) HandleMonthChanged(ctx context.Context, msg *amqp.MonthChangedMessage) error {
	slog.InfoContext(ctx, "Processing month changed message",
		"year", msg.Year,
		"month", msg.Month)
	return w.CheckMonth(ctx, msg.Year, msg.Month)
}

// CheckMonth runs a budget check for one month and logs the overruns.
func (w *BudgetWatcher) CheckMonth(ctx context.Context, year, month int) error {
	alerts, err := w.alerts.MonthlyAlerts(ctx, year, month)
	if err != nil {
		return fmt.Errorf("check budgets for %d-%02d: %w", year, month, err)
	}

	for _, a := range alerts {
		slog.WarnContext(ctx, "Budget exceeded",
			"scope", string(a.Scope),
			"category", a.Category,
			"budget", a.Budget.String(),
			"actual", a.Actual.String(),
			"delta", a.Delta.String(),
			"year", year,
			"month", month)
	}
	if len(alerts) == 0 {
		slog.InfoContext(ctx, "All budgets within limits", "year", year, "month", month)
	}

	w.exportSummary(ctx, year, month)
	return nil
}

// RunPeriodicCheck re-checks the current month on a fixed interval as a
// fallback for lost messages. Blocks until ctx is cancelled.
func (w *BudgetWatcher) RunPeriodicCheck(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			today := core.Today()
			if err := w.CheckMonth(ctx, today.Year(), today.Month()); err != nil {
				slog.ErrorContext(ctx, "Periodic budget check failed", "error", err)
			}
		}
	}
}

func (w *BudgetWatcher) exportSummary(ctx context.Context, year, month int) {
	if w.writer == nil {
		return
	}

	summary, err := w.insights.MonthlySummary(ctx, year, month)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to compute summary for export", "error", err)
		return
	}

	if err := w.writer.AppendMonthlySummary(ctx, year, month, summary); err != nil {
		slog.ErrorContext(ctx, "Failed to export summary to sheets",
			"year", year,
			"month", month,
			"error", err)
	}
}
