package query

import (
	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
)

// Subquery builds a nested SELECT with fn and returns it as an expression owned by b.
// Its parameters are named in their own scope at compile time and merged into b's bindings.
func (b *Builder) Subquery(fn func(*Builder)) *ast.SubqueryExpr {
	sub := b.child()
	if fn != nil {
		fn(sub)
	}
	b.errors = append(b.errors, sub.errors...)
	if sub.kind != ast.KindSelect {
		b.fail(sqlerr.InvalidUnion, "subquery must be a select, got %s", sub.kind)
	}
	return ast.NewSubqueryExpr(sub.selectStmt())
}

// Union appends other as a UNION member. other is consumed and left empty.
func (b *Builder) Union(other *Builder) *Builder {
	return b.union(false, other)
}

// UnionAll appends other as a UNION ALL member. other is consumed and left empty.
func (b *Builder) UnionAll(other *Builder) *Builder {
	return b.union(true, other)
}

func (b *Builder) union(all bool, other *Builder) *Builder {
	switch {
	case other == nil:
		return b.fail(sqlerr.InvalidUnion, "nil union member")
	case other == b:
		return b.fail(sqlerr.InvalidUnion, "a builder cannot union itself")
	case other.kind != ast.KindSelect:
		kind := other.kind
		other.Reset()
		return b.fail(sqlerr.InvalidUnion, "union member must be a select, got %s", kind)
	}

	b.errors = append(b.errors, other.errors...)
	b.unions = append(b.unions, &ast.Union{All: all, Stmt: other.selectStmt()})
	other.Reset()
	return b
}
