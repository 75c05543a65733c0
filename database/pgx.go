package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConn runs statements on a pgx pool. Placeholders are written as "@name" and bound
// through pgx.NamedArgs; pgx prepares and caches statements per connection itself.
type PgxConn struct {
	pool *pgxpool.Pool
}

func NewPgxConn(pool *pgxpool.Pool) *PgxConn {
	return &PgxConn{pool: pool}
}

func (c *PgxConn) Pool() *pgxpool.Pool { return c.pool }

func (c *PgxConn) Prepare(_ context.Context, sql string) (Stmt, error) {
	return &pgxStmt{pool: c.pool, sql: sql, args: pgx.NamedArgs{}}, nil
}

func (c *PgxConn) Close() error {
	c.pool.Close()
	return nil
}

type pgxStmt struct {
	pool *pgxpool.Pool
	sql  string
	args pgx.NamedArgs
}

func (s *pgxStmt) Bind(name string, value any) {
	s.args[name] = value
}

// Execute never fills LastInsertID: PostgreSQL reports generated keys through RETURNING.
func (s *pgxStmt) Execute(ctx context.Context, mode ExecMode) (*Result, error) {
	if mode == ModeExec {
		tag, err := s.pool.Exec(ctx, s.sql, s.args)
		if err != nil {
			return nil, err
		}
		return &Result{Affected: tag.RowsAffected()}, nil
	}

	rows, err := s.pool.Query(ctx, s.sql, s.args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := &Result{Columns: make([]string, len(fields))}
	for i, fd := range fields {
		out.Columns[i] = fd.Name
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	for _, r := range collected {
		out.Rows = append(out.Rows, Row(r))
	}
	return out, nil
}

func (s *pgxStmt) Close() error { return nil }

var _ Conn = (*PgxConn)(nil)
