package sheets

import (
	"context"

	"github.com/Claipousse/LedgerOne/internal/core"
)

// Ports for outbound adapters.
type (
	// SummaryWriter exports a monthly summary snapshot to an external
	// sheet for reporting.
	SummaryWriter interface {
		AppendMonthlySummary(ctx context.Context, year, month int, s core.Summary) error
	}
)
