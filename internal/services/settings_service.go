package services

import (
	"context"
	"log/slog"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// SettingsService manages the single application-wide settings record.
type SettingsService struct {
	store     storage.Store
	publisher MonthChangedPublisher
}

func NewSettingsService(store storage.Store, publisher MonthChangedPublisher) *SettingsService {
	return &SettingsService{store: store, publisher: publisher}
}

func (s *SettingsService) Get(ctx context.Context) (core.Settings, error) {
	return s.store.GetSettings(ctx)
}

func (s *SettingsService) Update(ctx context.Context, settings core.Settings) (core.Settings, error) {
	if err := settings.Validate(); err != nil {
		return core.Settings{}, err
	}
	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		return core.Settings{}, err
	}

	if s.publisher != nil {
		today := core.Today()
		if err := s.publisher.PublishMonthChanged(ctx, today.Year(), today.Month()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish month changed message", "error", err)
		}
	}
	return settings, nil
}
