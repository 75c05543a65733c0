// Package pq registers the "pq" provider: lib/pq through database/sql, with ":name"
// placeholders rebound by sqlx.
package pq

import (
	"context"

	_ "github.com/lib/pq"

	"github.com/Konsultn-Engineering/querykit/connector"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

type Provider struct{}

func init() {
	connector.Register("pq", &Provider{})
}

func BuildDSN(cfg connector.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return connector.NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, cfg.Port).
		Database(cfg.Database).
		WithPostgresDefaults().
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params).
		Build()
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return connector.OpenSQL(ctx, "postgres", BuildDSN(cfg), p.Dialect(), cfg)
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect(dialect.WithPlaceholderPrefix(":"))
}

func (p *Provider) HealthCheck(ctx context.Context, conn connector.Connection) error {
	return conn.Health(ctx)
}
