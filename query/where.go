package query

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
)

// Where adds conditions to one group of a where-tree. The Builder's own where methods
// write to the root group; WhereGroup hands a Where for a nested, parenthesized group.
type Where struct {
	group *ast.Group
	owner *Builder
}

func (b *Builder) whereGroup() *Where {
	return &Where{group: b.where, owner: b}
}

func (b *Builder) havingGroup() *Where {
	return &Where{group: b.having, owner: b}
}

// Where adds "column op value". value may be a *ast.SubqueryExpr; IN and NOT IN take a slice;
// a nil value with = or IS becomes IS NULL, with != <> or IS NOT becomes IS NOT NULL.
func (w *Where) Where(column, op string, value any) *Where {
	col := ast.ParseColumn(column)
	return w.compare(ast.And, col, col.Hint(), op, value)
}

func (w *Where) OrWhere(column, op string, value any) *Where {
	col := ast.ParseColumn(column)
	return w.compare(ast.Or, col, col.Hint(), op, value)
}

func (w *Where) compare(conn ast.Connector, left ast.Expr, hint, op string, value any) *Where {
	op = ast.NormalizeOperator(op)
	if !ast.IsComparisonOperator(op) {
		w.owner.fail(sqlerr.InvalidOperator, "%q", op)
		return w
	}

	if sub, ok := value.(*ast.SubqueryExpr); ok {
		w.group.Add(conn, &ast.Comparison{Left: left, Operator: op, Right: sub})
		return w
	}

	switch op {
	case ast.OpIn, ast.OpNotIn:
		w.group.Add(conn, &ast.InList{Left: left, Negated: op == ast.OpNotIn, Values: values(hint, value)})
		return w
	}

	if value == nil {
		switch op {
		case ast.OpEqual, ast.OpIs:
			w.group.Add(conn, isNull(left, false))
			return w
		case ast.OpNotEqual, ast.OpNotEqualAlt, ast.OpIsNot:
			w.group.Add(conn, isNull(left, true))
			return w
		}
	}

	w.group.Add(conn, &ast.Comparison{Left: left, Operator: op, Right: ast.NewValue(hint, value)})
	return w
}

func isNull(left ast.Expr, negated bool) *ast.Comparison {
	op := ast.OpIs
	if negated {
		op = ast.OpIsNot
	}
	return &ast.Comparison{Left: left, Operator: op, Right: ast.NewRaw("NULL")}
}

func (w *Where) WhereIn(column string, values any) *Where {
	return w.in(ast.And, column, false, values)
}

func (w *Where) WhereNotIn(column string, values any) *Where {
	return w.in(ast.And, column, true, values)
}

func (w *Where) OrWhereIn(column string, values any) *Where {
	return w.in(ast.Or, column, false, values)
}

func (w *Where) OrWhereNotIn(column string, values any) *Where {
	return w.in(ast.Or, column, true, values)
}

func (w *Where) in(conn ast.Connector, column string, negated bool, list any) *Where {
	col := ast.ParseColumn(column)
	w.group.Add(conn, &ast.InList{Left: col, Negated: negated, Values: values(col.Hint(), list)})
	return w
}

func (w *Where) WhereBetween(column string, low, high any) *Where {
	return w.between(ast.And, column, false, low, high)
}

func (w *Where) WhereNotBetween(column string, low, high any) *Where {
	return w.between(ast.And, column, true, low, high)
}

func (w *Where) OrWhereBetween(column string, low, high any) *Where {
	return w.between(ast.Or, column, false, low, high)
}

func (w *Where) between(conn ast.Connector, column string, negated bool, low, high any) *Where {
	col := ast.ParseColumn(column)
	w.group.Add(conn, &ast.Between{
		Left:    col,
		Negated: negated,
		Low:     ast.NewValue(col.Hint(), low),
		High:    ast.NewValue(col.Hint(), high),
	})
	return w
}

func (w *Where) WhereNull(column string) *Where {
	w.group.Add(ast.And, isNull(ast.ParseColumn(column), false))
	return w
}

func (w *Where) WhereNotNull(column string) *Where {
	w.group.Add(ast.And, isNull(ast.ParseColumn(column), true))
	return w
}

func (w *Where) OrWhereNull(column string) *Where {
	w.group.Add(ast.Or, isNull(ast.ParseColumn(column), false))
	return w
}

func (w *Where) OrWhereNotNull(column string) *Where {
	w.group.Add(ast.Or, isNull(ast.ParseColumn(column), true))
	return w
}

// WhereColumn compares two columns; nothing is bound.
func (w *Where) WhereColumn(left, op, right string) *Where {
	return w.column(ast.And, left, op, right)
}

func (w *Where) OrWhereColumn(left, op, right string) *Where {
	return w.column(ast.Or, left, op, right)
}

func (w *Where) column(conn ast.Connector, left, op, right string) *Where {
	op = ast.NormalizeOperator(op)
	if !ast.IsComparisonOperator(op) {
		w.owner.fail(sqlerr.InvalidOperator, "%q", op)
		return w
	}
	w.group.Add(conn, &ast.Comparison{Left: ast.ParseColumn(left), Operator: op, Right: ast.ParseColumn(right)})
	return w
}

func (w *Where) WhereExists(fn func(*Builder)) *Where {
	return w.exists(ast.And, false, fn)
}

func (w *Where) WhereNotExists(fn func(*Builder)) *Where {
	return w.exists(ast.And, true, fn)
}

func (w *Where) OrWhereExists(fn func(*Builder)) *Where {
	return w.exists(ast.Or, false, fn)
}

func (w *Where) exists(conn ast.Connector, negated bool, fn func(*Builder)) *Where {
	w.group.Add(conn, &ast.Exists{Negated: negated, Subquery: w.owner.Subquery(fn)})
	return w
}

// WhereGroup adds a parenthesized group filled by fn. A group left empty emits nothing.
func (w *Where) WhereGroup(fn func(*Where)) *Where {
	return w.nest(ast.And, fn)
}

func (w *Where) OrWhereGroup(fn func(*Where)) *Where {
	return w.nest(ast.Or, fn)
}

func (w *Where) nest(conn ast.Connector, fn func(*Where)) *Where {
	g := ast.NewGroup()
	fn(&Where{group: g, owner: w.owner})
	w.group.Add(conn, g)
	return w
}

// values spreads a slice or array into bound values. Any other value, []byte included,
// is a single element.
func values(hint string, list any) []*ast.Value {
	if list == nil {
		return nil
	}
	if _, ok := list.([]byte); ok {
		return []*ast.Value{ast.NewValue(hint, list)}
	}
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []*ast.Value{ast.NewValue(hint, list)}
	}
	out := make([]*ast.Value, rv.Len())
	for i := range out {
		out[i] = ast.NewValue(hint, rv.Index(i).Interface())
	}
	return out
}

// rawHint names parameters compared against a raw expression: "COUNT(*)" gives "count".
func rawHint(expr string) string {
	end := strings.IndexFunc(expr, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if end < 0 {
		end = len(expr)
	}
	return strings.ToLower(expr[:end])
}
