// Package postgres registers the "postgres" provider: pgx over pgxpool with "@name" placeholders.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Konsultn-Engineering/querykit/connector"
	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

type Provider struct{}

func init() {
	connector.Register("postgres", &Provider{})
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
	pool := cfg.Pool.WithDefaults()

	poolCfg, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolCfg.MaxConns = int32(pool.MaxOpen)
	poolCfg.MinConns = int32(pool.MaxIdle)
	poolCfg.MaxConnLifetime = pool.MaxLifetime
	poolCfg.MaxConnIdleTime = pool.MaxIdleTime
	if pool.HealthCheckFreq > 0 {
		poolCfg.HealthCheckPeriod = pool.HealthCheckFreq
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return &connection{
		id:      connector.NewConnectionID(),
		pool:    pgPool,
		conn:    database.NewPgxConn(pgPool),
		dialect: p.Dialect(),
	}, nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

func (p *Provider) HealthCheck(ctx context.Context, conn connector.Connection) error {
	return conn.Health(ctx)
}

type connection struct {
	id      string
	pool    *pgxpool.Pool
	conn    *database.PgxConn
	dialect dialect.Dialect
}

func (c *connection) ID() string { return c.id }

func (c *connection) Conn() database.Conn { return c.conn }

func (c *connection) Dialect() dialect.Dialect {
	return c.dialect
}

func (c *connection) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *connection) Stats() connector.ConnectionStats {
	s := c.pool.Stat()
	return connector.ConnectionStats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

func (c *connection) Close() error {
	c.pool.Close()
	return nil
}
