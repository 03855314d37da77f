// Package services orchestrates ledger operations across storage,
// messaging and the analytics engines.
package services

import "context"

// MonthChangedPublisher notifies interested consumers that a month's
// recorded data changed. Implemented by amqp.Client.
type (
	MonthChangedPublisher interface {
		PublishMonthChanged(ctx context.Context, year, month int) error
	}
)
