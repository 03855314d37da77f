package storage

import (
	"context"
	"errors"

	"github.com/Claipousse/LedgerOne/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a category name is already taken.
	ErrDuplicateName = errors.New("category name already exists")
)

// TransactionFilter narrows a transaction listing. Zero values mean
// "no constraint"; Limit <= 0 means unbounded.
type TransactionFilter struct {
	From       *core.Date
	To         *core.Date
	CategoryID *int64
	Search     string
	Offset     int
	Limit      int
}

// TransactionStore persists transactions.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error)
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	FindCategoryByName(ctx context.Context, name string) (core.Category, bool, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// SettingsStore persists the single settings record.
type SettingsStore interface {
	GetSettings(ctx context.Context) (core.Settings, error)
	UpdateSettings(ctx context.Context, s core.Settings) error
}

// Store is the full persistence surface the services build on.
type Store interface {
	TransactionStore
	CategoryStore
	SettingsStore
	Close() error
}
