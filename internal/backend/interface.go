package backend

import (
	"context"

	"github.com/Claipousse/LedgerOne/internal/amqp"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

// CleanupFunc releases resources held by a backend
type CleanupFunc func() error

// Result contains the store, the optional AMQP client and a cleanup function.
// AMQP is nil when no broker is configured or the connection failed.
type Result struct {
	Store   storage.Store
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type represents the kind of storage backend
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
