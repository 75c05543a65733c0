package connector

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

// SQLConnection is the Connection shared by every database/sql driver provider.
type SQLConnection struct {
	id      string
	db      *sqlx.DB
	conn    *database.SQLXConn
	dialect dialect.Dialect
}

// OpenSQL opens driverName through sqlx, applies pool settings and pings the server.
func OpenSQL(ctx context.Context, driverName, dsn string, d dialect.Dialect, cfg Config) (*SQLConnection, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	pool := cfg.Pool.WithDefaults()
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	return NewSQLConnection(db, d, cfg.StatementCacheSize), nil
}

func NewSQLConnection(db *sqlx.DB, d dialect.Dialect, cacheSize int) *SQLConnection {
	return &SQLConnection{
		id:      NewConnectionID(),
		db:      db,
		conn:    database.NewSQLXConn(db, cacheSize),
		dialect: d,
	}
}

func (c *SQLConnection) ID() string               { return c.id }
func (c *SQLConnection) Conn() database.Conn      { return c.conn }
func (c *SQLConnection) Dialect() dialect.Dialect { return c.dialect }
func (c *SQLConnection) DB() *sqlx.DB             { return c.db }

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	return statsFromDB(c.db.Stats())
}

func (c *SQLConnection) Close() error {
	return c.conn.Close()
}

var _ Connection = (*SQLConnection)(nil)
