package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Konsultn-Engineering/querykit/cache"
)

// SQLXConn adapts any database/sql driver through sqlx named statements.
// Placeholders are written as ":name" and rebound to the driver's style by sqlx.
type SQLXConn struct {
	db    *sqlx.DB
	stmts *cache.StatementCache
}

func NewSQLXConn(db *sqlx.DB, cacheSize int) *SQLXConn {
	return &SQLXConn{db: db, stmts: cache.NewStatementCache(cacheSize)}
}

func (c *SQLXConn) DB() *sqlx.DB { return c.db }

func (c *SQLXConn) Prepare(ctx context.Context, query string) (Stmt, error) {
	stmt, release, err := c.stmts.GetOrPrepare(ctx, c.db, query)
	if err != nil {
		return nil, err
	}
	return &sqlxStmt{stmt: stmt, release: release, args: make(map[string]any)}, nil
}

// Close releases cached statements and the pool.
func (c *SQLXConn) Close() error {
	_ = c.stmts.Close()
	return c.db.Close()
}

type sqlxStmt struct {
	stmt    *sqlx.NamedStmt
	release func()
	args    map[string]any
}

func (s *sqlxStmt) Bind(name string, value any) {
	s.args[name] = value
}

func (s *sqlxStmt) Execute(ctx context.Context, mode ExecMode) (*Result, error) {
	if mode == ModeExec {
		res, err := s.stmt.ExecContext(ctx, s.args)
		if err != nil {
			return nil, err
		}
		return execResult(res)
	}

	rows, err := s.stmt.QueryxContext(ctx, s.args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *sqlxStmt) Close() error {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	return nil
}

func execResult(res sql.Result) (*Result, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	out := &Result{Affected: affected}
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = &id
	}
	return out, nil
}

func scanRows(rows *sqlx.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := &Result{Columns: columns}
	for rows.Next() {
		row := make(map[string]any, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			// drivers hand text back as []byte
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out.Rows = append(out.Rows, Row(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Conn = (*SQLXConn)(nil)
