package query

import (
	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
)

// Select appends columns to the select list. Each accepts "table.column AS alias" forms.
func (b *Builder) Select(columns ...string) *Builder {
	for _, c := range columns {
		b.columns = append(b.columns, ast.ParseColumn(c))
	}
	return b
}

// SelectRaw appends an expression emitted verbatim, such as "COUNT(*) AS total".
// It must not contain caller-supplied values.
func (b *Builder) SelectRaw(expr string) *Builder {
	b.columns = append(b.columns, ast.NewRaw(expr))
	return b
}

// SelectExpr appends a built expression, typically Subquery(...).As(alias).
func (b *Builder) SelectExpr(expr ast.Expr) *Builder {
	if expr != nil {
		b.columns = append(b.columns, expr)
	}
	return b
}

func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// From sets the target table. Accepts "schema.table", "table alias" and "table AS alias".
func (b *Builder) From(table string) *Builder {
	b.table = ast.ParseTable(table)
	return b
}

// Table is an alias of From.
func (b *Builder) Table(table string) *Builder {
	return b.From(table)
}

// FromSub selects from a derived table built by fn.
func (b *Builder) FromSub(fn func(*Builder), alias string) *Builder {
	sub := b.Subquery(fn)
	b.table = &ast.Table{Subquery: sub.Stmt, Alias: alias}
	return b
}

func (b *Builder) Join(table, left, op, right string) *Builder {
	return b.join(ast.InnerJoin, table, left, op, right)
}

func (b *Builder) LeftJoin(table, left, op, right string) *Builder {
	return b.join(ast.LeftJoin, table, left, op, right)
}

func (b *Builder) RightJoin(table, left, op, right string) *Builder {
	return b.join(ast.RightJoin, table, left, op, right)
}

// OuterJoin emits FULL OUTER JOIN.
func (b *Builder) OuterJoin(table, left, op, right string) *Builder {
	return b.join(ast.OuterJoin, table, left, op, right)
}

func (b *Builder) CrossJoin(table string) *Builder {
	b.joins = append(b.joins, &ast.JoinClause{Kind: ast.CrossJoin, Table: ast.ParseTable(table)})
	return b
}

// JoinKind joins with a kind given by name: inner, left, right, outer or cross.
func (b *Builder) JoinKind(kind, table, left, op, right string) *Builder {
	k, err := ast.ParseJoinKind(kind)
	if err != nil {
		return b.fail(sqlerr.InvalidJoinKind, "%v", err)
	}
	if k == ast.CrossJoin {
		return b.CrossJoin(table)
	}
	return b.join(k, table, left, op, right)
}

func (b *Builder) join(kind ast.JoinKind, table, left, op, right string) *Builder {
	op = ast.NormalizeOperator(op)
	if !ast.IsComparisonOperator(op) {
		return b.fail(sqlerr.InvalidOperator, "join operator %q", op)
	}
	b.joins = append(b.joins, &ast.JoinClause{
		Kind:     kind,
		Table:    ast.ParseTable(table),
		Left:     ast.ParseColumn(left),
		Operator: op,
		Right:    ast.ParseColumn(right),
	})
	return b
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	for _, c := range columns {
		b.groupBy = append(b.groupBy, ast.ParseColumn(c))
	}
	return b
}

func (b *Builder) Having(column, op string, value any) *Builder {
	b.havingGroup().Where(column, op, value)
	return b
}

func (b *Builder) OrHaving(column, op string, value any) *Builder {
	b.havingGroup().OrWhere(column, op, value)
	return b
}

// HavingRaw compares a raw aggregate expression such as "COUNT(*)" against a bound value.
func (b *Builder) HavingRaw(expr, op string, value any) *Builder {
	b.havingGroup().compare(ast.And, ast.NewRaw(expr), rawHint(expr), op, value)
	return b
}

func (b *Builder) OrHavingRaw(expr, op string, value any) *Builder {
	b.havingGroup().compare(ast.Or, ast.NewRaw(expr), rawHint(expr), op, value)
	return b
}

// OrderBy appends an ordering. direction is ASC or DESC in any case.
func (b *Builder) OrderBy(column, direction string) *Builder {
	dir, err := ast.ParseDirection(direction)
	if err != nil {
		return b.fail(sqlerr.InvalidOrderDirection, "%v", err)
	}
	b.orderBy = append(b.orderBy, &ast.OrderByClause{Expr: ast.ParseColumn(column), Direction: dir})
	return b
}

func (b *Builder) OrderByAsc(column string) *Builder {
	return b.OrderBy(column, "ASC")
}

func (b *Builder) OrderByDesc(column string) *Builder {
	return b.OrderBy(column, "DESC")
}

func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		return b.fail(sqlerr.InvalidPagination, "negative limit %d", n)
	}
	b.limit = &n
	return b
}

func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		return b.fail(sqlerr.InvalidPagination, "negative offset %d", n)
	}
	b.offset = &n
	return b
}
