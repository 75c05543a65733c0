package query

import (
	"log/slog"

	"github.com/Konsultn-Engineering/querykit/connector"
	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

type Option func(*Builder)

func WithConn(conn database.Conn) Option {
	return func(b *Builder) { b.conn = conn }
}

// WithConnection uses an open connector connection and its dialect.
func WithConnection(conn connector.Connection) Option {
	return func(b *Builder) {
		b.conn = conn.Conn()
		b.dialect = conn.Dialect()
	}
}

func WithDialect(d dialect.Dialect) Option {
	return func(b *Builder) {
		if d != nil {
			b.dialect = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}
