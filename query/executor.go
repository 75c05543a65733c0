package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/database"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
	"github.com/Konsultn-Engineering/querykit/visitor"
)

var (
	ErrNoConnection = errors.New("querykit: builder has no connection")
	ErrNotSelect    = errors.New("querykit: statement is not a select")
)

// Result is the classified outcome of Execute.
type Result struct {
	Kind         ast.StatementKind
	Columns      []string
	Rows         []database.Row
	Affected     int64
	LastInsertID *int64
}

// Page is one page of a paginated SELECT.
type Page struct {
	Rows       []database.Row
	Total      int64
	PageSize   int
	PageNumber int
	LastPage   int
}

// Execute compiles, prepares, binds every parameter by name and runs the statement.
// The builder is reset afterwards whether or not execution succeeded.
func (b *Builder) Execute(ctx context.Context) (*Result, error) {
	defer b.Reset()

	compiled, err := b.Compile()
	if err != nil {
		return nil, err
	}
	return b.run(ctx, compiled)
}

// Paginate counts the matching rows, then fetches page pageNumber of pageSize rows.
// Pages are numbered from 1. The builder is reset afterwards.
func (b *Builder) Paginate(ctx context.Context, pageSize, pageNumber int) (*Page, error) {
	defer b.Reset()

	if pageSize < 1 || pageNumber < 1 {
		return nil, sqlerr.Build(sqlerr.InvalidPagination, "page size %d, page %d", pageSize, pageNumber)
	}
	base, err := b.frozenSelect()
	if err != nil {
		return nil, err
	}

	total, err := b.count(ctx, base)
	if err != nil {
		return nil, err
	}

	offset := (pageNumber - 1) * pageSize
	res, err := b.runStatement(ctx, pageStatement(base, pageSize, &offset))
	if err != nil {
		return nil, err
	}

	return &Page{
		Rows:       res.Rows,
		Total:      total,
		PageSize:   pageSize,
		PageNumber: pageNumber,
		LastPage:   lastPage(total, pageSize),
	}, nil
}

// First returns the first matching row, or nil when there is none. The builder is reset afterwards.
func (b *Builder) First(ctx context.Context) (database.Row, error) {
	defer b.Reset()

	base, err := b.frozenSelect()
	if err != nil {
		return nil, err
	}
	offset := base.Offset
	if len(base.Unions) > 0 {
		offset = nil
	}
	res, err := b.runStatement(ctx, pageStatement(base, 1, offset))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return res.Rows[0], nil
}

// Count returns the number of rows the SELECT would produce. The builder is reset afterwards.
func (b *Builder) Count(ctx context.Context) (int64, error) {
	defer b.Reset()

	base, err := b.frozenSelect()
	if err != nil {
		return 0, err
	}
	return b.count(ctx, base)
}

func (b *Builder) frozenSelect() (*ast.SelectStmt, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	if b.kind != ast.KindSelect {
		return nil, fmt.Errorf("%w: %s", ErrNotSelect, b.kind)
	}
	return b.selectStmt(), nil
}

func (b *Builder) count(ctx context.Context, s *ast.SelectStmt) (int64, error) {
	res, err := b.runStatement(ctx, countStatement(s))
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 || len(res.Columns) == 0 {
		return 0, nil
	}
	return toInt64(res.Rows[0][res.Columns[0]])
}

// countStatement replaces the select list with COUNT(*) and drops ordering and paging.
// Statements whose row count depends on their select list are wrapped instead. In a
// compound SELECT the tail belongs to the leading member and is kept.
func countStatement(s *ast.SelectStmt) *ast.SelectStmt {
	inner := s.Clone()
	if len(inner.Unions) == 0 {
		inner.OrderBy = nil
		inner.Limit = nil
		inner.Offset = nil
	}

	if inner.IsAggregate() {
		outer := ast.NewSelectStmt()
		outer.Columns = []ast.Expr{ast.NewRaw("COUNT(*)")}
		outer.From = &ast.Table{Subquery: inner, Alias: "aggregate_count"}
		return outer
	}

	inner.Columns = []ast.Expr{ast.NewRaw("COUNT(*)")}
	return inner
}

// pageStatement limits s to one page. A compound SELECT is paged as a whole through a
// derived table; its tail otherwise belongs to the leading member.
func pageStatement(s *ast.SelectStmt, limit int, offset *int) *ast.SelectStmt {
	if len(s.Unions) == 0 {
		paged := s.Clone()
		paged.Limit = &limit
		paged.Offset = offset
		return paged
	}
	outer := ast.NewSelectStmt()
	outer.From = &ast.Table{Subquery: s, Alias: "page"}
	outer.Limit = &limit
	outer.Offset = offset
	return outer
}

func lastPage(total int64, size int) int {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

func (b *Builder) runStatement(ctx context.Context, stmt ast.Statement) (*Result, error) {
	compiled, err := visitor.Compile(b.dialect, stmt)
	if err != nil {
		return nil, err
	}
	return b.run(ctx, compiled)
}

func (b *Builder) run(ctx context.Context, compiled *visitor.Compiled) (*Result, error) {
	if b.conn == nil {
		return nil, ErrNoConnection
	}

	execID := ulid.Make().String()
	start := time.Now()

	res, err := b.exec(ctx, compiled)
	if err != nil {
		b.logger.Error("query failed",
			"exec_id", execID,
			"kind", compiled.Kind.String(),
			"sql", compiled.SQL,
			"error", err,
		)
		return nil, &sqlerr.ExecutionError{SQL: compiled.SQL, Bindings: compiled.Bindings, Err: err}
	}

	b.logger.Debug("query executed",
		"exec_id", execID,
		"kind", compiled.Kind.String(),
		"sql", compiled.SQL,
		"bindings", len(compiled.Bindings),
		"duration", time.Since(start),
	)

	return &Result{
		Kind:         compiled.Kind,
		Columns:      res.Columns,
		Rows:         res.Rows,
		Affected:     res.Affected,
		LastInsertID: res.LastInsertID,
	}, nil
}

func (b *Builder) exec(ctx context.Context, compiled *visitor.Compiled) (*database.Result, error) {
	stmt, err := b.conn.Prepare(ctx, compiled.SQL)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, binding := range compiled.Bindings {
		stmt.Bind(string(binding.Name), binding.Value)
	}

	mode := database.ModeExec
	if compiled.Kind == ast.KindSelect {
		mode = database.ModeQuery
	}
	return stmt.Execute(ctx, mode)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected count value %T", v)
	}
}
