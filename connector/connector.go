package connector

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

// Connection is an open database handle together with the dialect its SQL must be written in.
type Connection interface {
	ID() string
	Conn() database.Conn
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	ConnectWithRetry(ctx context.Context, opts RetryOptions) (Connection, error)
	Close() error
}

type Option func(*standardConnector)

func WithLogger(logger *slog.Logger) Option {
	return func(c *standardConnector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConnectionID returns a time-ordered identifier for a new connection.
func NewConnectionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
