// Package database defines the connection contract the executor drives and its adapters.
package database

import "context"

// ExecMode selects how a prepared statement is run.
type ExecMode int

const (
	// ModeQuery reads rows.
	ModeQuery ExecMode = iota
	// ModeExec runs a mutation and reports affected rows.
	ModeExec
)

func (m ExecMode) String() string {
	if m == ModeExec {
		return "exec"
	}
	return "query"
}

// Row is one result row keyed by column name.
type Row map[string]any

// Result is the outcome of one execution. Mutations fill Affected and, where the driver
// supports it, LastInsertID; queries fill Columns and Rows.
type Result struct {
	Columns      []string
	Rows         []Row
	Affected     int64
	LastInsertID *int64
}

// Conn prepares parameterized statements that bind by name.
type Conn interface {
	Prepare(ctx context.Context, sql string) (Stmt, error)
}

// Stmt is a prepared statement. Bind may be called once per parameter name before Execute.
type Stmt interface {
	Bind(name string, value any)
	Execute(ctx context.Context, mode ExecMode) (*Result, error)
	Close() error
}
