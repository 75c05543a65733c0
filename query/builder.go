// Package query is the fluent SQL builder. A Builder accumulates clauses in any order and
// compiles them into one parameterized statement with a fixed clause order.
//
// A Builder is owned by one goroutine. It is cleared after Execute, Paginate, First and Count.
package query

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/binding"
	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/dialect"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
	"github.com/Konsultn-Engineering/querykit/visitor"
)

// draft is the clause accumulator. It is frozen into exactly one ast.Statement per compile.
type draft struct {
	kind     ast.StatementKind
	table    *ast.Table
	distinct bool
	columns  []ast.Expr
	joins    []*ast.JoinClause
	where    *ast.Group
	groupBy  []ast.Expr
	having   *ast.Group
	orderBy  []*ast.OrderByClause
	limit    *int
	offset   *int
	unions   []*ast.Union

	payload            *ast.Payload
	upsert             []string
	upsertAll          bool
	conflict           []string
	allowUnconditional bool
}

func newDraft() draft {
	return draft{
		kind:    ast.KindSelect,
		where:   ast.NewGroup(),
		having:  ast.NewGroup(),
		payload: ast.NewPayload(),
	}
}

type Builder struct {
	draft

	dialect dialect.Dialect
	conn    database.Conn
	logger  *slog.Logger
	errors  []error
}

// New returns an empty SELECT builder. Without WithDialect or WithConnection it writes MySQL.
func New(opts ...Option) *Builder {
	b := &Builder{
		draft:   newDraft(),
		dialect: dialect.Default(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// child returns an empty builder sharing this builder's dialect, connection and logger.
func (b *Builder) child() *Builder {
	return &Builder{
		draft:   newDraft(),
		dialect: b.dialect,
		conn:    b.conn,
		logger:  b.logger,
	}
}

// Reset drops every clause and accumulated error. Dialect, connection and logger are kept.
func (b *Builder) Reset() *Builder {
	b.draft = newDraft()
	b.errors = nil
	return b
}

func (b *Builder) Dialect() dialect.Dialect { return b.dialect }

// AddError adds an error to the builder
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errors = append(b.errors, err)
	}
}

// HasErrors returns true if there are any errors
func (b *Builder) HasErrors() bool {
	return len(b.errors) > 0
}

// GetErrors returns all accumulated errors
func (b *Builder) GetErrors() []error {
	return b.errors
}

// GetFirstError returns the first error or nil
func (b *Builder) GetFirstError() error {
	if len(b.errors) > 0 {
		return b.errors[0]
	}
	return nil
}

// Compile freezes the accumulated clauses and renders them. Errors recorded while
// composing are returned first, joined.
func (b *Builder) Compile() (*visitor.Compiled, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return visitor.Compile(b.dialect, b.Statement())
}

// ToSQL returns the parameterized SQL text and its bindings.
func (b *Builder) ToSQL() (string, binding.Bindings, error) {
	c, err := b.Compile()
	if err != nil {
		return "", nil, err
	}
	return c.SQL, c.Bindings, nil
}

// Debug returns the SQL with literals in place of placeholders. Never execute it.
func (b *Builder) Debug() (string, error) {
	c, err := b.Compile()
	if err != nil {
		return "", err
	}
	return c.Debug(), nil
}

// Statement freezes the draft into the statement node matching its kind.
func (b *Builder) Statement() ast.Statement {
	switch b.kind {
	case ast.KindInsert:
		return &ast.InsertStmt{
			Table:           b.table,
			Values:          b.payload,
			UpsertColumns:   b.upsertColumns(),
			ConflictColumns: slices.Clone(b.conflict),
		}
	case ast.KindUpdate:
		return &ast.UpdateStmt{
			Table:              b.table,
			Set:                b.payload,
			Where:              b.where,
			AllowUnconditional: b.allowUnconditional,
		}
	case ast.KindDelete:
		return &ast.DeleteStmt{
			Table:              b.table,
			Where:              b.where,
			AllowUnconditional: b.allowUnconditional,
		}
	default:
		return b.selectStmt()
	}
}

func (b *Builder) upsertColumns() []string {
	cols := slices.Clone(b.upsert)
	if b.upsertAll {
		for _, c := range b.payload.Columns() {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// check returns the recorded errors joined, then any payload or upsert settings left on a
// statement kind that cannot carry them.
func (b *Builder) check() error {
	if b.HasErrors() {
		return errors.Join(b.errors...)
	}
	if b.payload.Len() > 0 && (b.kind == ast.KindSelect || b.kind == ast.KindDelete) {
		return sqlerr.Build(sqlerr.PayloadMismatch, "%s statement cannot set columns %v", b.kind, b.payload.Columns())
	}
	if b.kind != ast.KindInsert && (len(b.upsert) > 0 || b.upsertAll || len(b.conflict) > 0) {
		return sqlerr.Build(sqlerr.PayloadMismatch, "upsert on a %s statement", b.kind)
	}
	return nil
}

func (b *Builder) selectStmt() *ast.SelectStmt {
	return &ast.SelectStmt{
		Distinct: b.distinct,
		Columns:  slices.Clone(b.columns),
		From:     b.table,
		Joins:    slices.Clone(b.joins),
		Where:    b.where,
		GroupBy:  slices.Clone(b.groupBy),
		Having:   b.having,
		OrderBy:  slices.Clone(b.orderBy),
		Limit:    b.limit,
		Offset:   b.offset,
		Unions:   slices.Clone(b.unions),
	}
}

func (b *Builder) fail(kind sqlerr.Kind, format string, args ...any) *Builder {
	b.AddError(sqlerr.Build(kind, format, args...))
	return b
}
