// Package sqlite registers the "sqlite" provider on mattn/go-sqlite3.
package sqlite

import (
	"context"
	"net/url"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Konsultn-Engineering/querykit/connector"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

const memory = ":memory:"

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
}

// BuildDSN uses Database as the file path; an empty path opens a private in-memory database.
func BuildDSN(cfg connector.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	path := cfg.Database
	if path == "" {
		path = memory
	}
	if len(cfg.Params) == 0 {
		return path
	}

	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	q := make([]string, len(keys))
	for i, k := range keys {
		q[i] = url.QueryEscape(k) + "=" + url.QueryEscape(cfg.Params[k])
	}
	return "file:" + path + "?" + strings.Join(q, "&")
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	dsn := BuildDSN(cfg)
	// every connection to :memory: is a separate database, so the one connection must live forever
	if strings.Contains(dsn, memory) {
		cfg.Pool.MaxOpen = 1
		cfg.Pool.MaxIdle = 1
		cfg.Pool.MaxLifetime = -1
		cfg.Pool.MaxIdleTime = -1
	}
	return connector.OpenSQL(ctx, "sqlite3", dsn, p.Dialect(), cfg)
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}

func (p *Provider) HealthCheck(ctx context.Context, conn connector.Connection) error {
	return conn.Health(ctx)
}
