package visitor

import (
	"strings"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/binding"
	"github.com/Konsultn-Engineering/querykit/dialect"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
)

// SQLVisitor renders one statement. Text is collected as chunks separated by parameter
// names so that embedded statements can be spliced in after their bindings are renamed.
type SQLVisitor struct {
	sb      strings.Builder
	chunks  []string
	params  []binding.ParamName
	ns      *binding.Namespace
	dialect dialect.Dialect
}

func NewSQLVisitor(d dialect.Dialect, ns *binding.Namespace) *SQLVisitor {
	if d == nil {
		d = dialect.Default()
	}
	if ns == nil {
		ns = binding.New()
	}
	return &SQLVisitor{dialect: d, ns: ns}
}

// Build visits root and returns the compiled statement.
func (v *SQLVisitor) Build(root ast.Statement) (*Compiled, error) {
	v.Reset()
	if err := root.Accept(v); err != nil {
		return nil, err
	}
	v.flush()

	return &Compiled{
		SQL:      v.render(v.dialect.Placeholder),
		Bindings: v.ns.Bindings(),
		Kind:     root.Kind(),
		chunks:   v.chunks,
		params:   v.params,
		dialect:  v.dialect,
	}, nil
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	v.chunks = nil
	v.params = nil
	v.ns.Reset()
}

func (v *SQLVisitor) param(name binding.ParamName) {
	v.flush()
	v.params = append(v.params, name)
}

func (v *SQLVisitor) flush() {
	v.chunks = append(v.chunks, v.sb.String())
	v.sb.Reset()
}

// render joins the chunks, writing each parameter with placeholder.
// It must run after the final flush.
func (v *SQLVisitor) render(placeholder func(string) string) string {
	var sb strings.Builder
	for i, chunk := range v.chunks {
		sb.WriteString(chunk)
		if i < len(v.params) {
			sb.WriteString(placeholder(string(v.params[i])))
		}
	}
	return sb.String()
}

// embed compiles a nested SELECT in a child scope, merges its bindings and splices its text.
func (v *SQLVisitor) embed(stmt *ast.SelectStmt) error {
	child := &SQLVisitor{dialect: v.dialect, ns: v.ns.Scope()}
	if err := child.VisitSelect(stmt); err != nil {
		return err
	}
	child.flush()

	renamed := v.ns.Merge(child.ns)
	for i, chunk := range child.chunks {
		v.sb.WriteString(chunk)
		if i < len(child.params) {
			name := child.params[i]
			if to, ok := renamed[name]; ok {
				name = to
			}
			v.param(name)
		}
	}
	return nil
}

func (v *SQLVisitor) quote(name string) string {
	return dialect.QuoteReference(v.dialect, name)
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	// Without parentheses a leading member's tail would apply to the whole compound.
	if len(s.Unions) > 0 && !v.dialect.ParenthesizeUnion() && s.HasTail() {
		head := s.Clone()
		head.Unions = nil
		v.sb.WriteString("SELECT * FROM (")
		if err := v.VisitSelect(head); err != nil {
			return err
		}
		v.sb.WriteByte(')')
		return v.unions(s.Unions)
	}

	if s.From.IsZero() {
		return sqlerr.Build(sqlerr.MissingTable, "select has no table")
	}

	v.sb.WriteString("SELECT ")
	if s.Distinct {
		v.sb.WriteString("DISTINCT ")
	}

	if len(s.Columns) == 0 {
		v.sb.WriteByte('*')
	}
	for i, col := range s.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
	}

	v.sb.WriteString(" FROM ")
	if err := s.From.Accept(v); err != nil {
		return err
	}

	for _, join := range s.Joins {
		if err := join.Accept(v); err != nil {
			return err
		}
	}

	if err := v.clause(" WHERE ", s.Where); err != nil {
		return err
	}

	if len(s.GroupBy) > 0 {
		v.sb.WriteString(" GROUP BY ")
		for i, expr := range s.GroupBy {
			if i > 0 {
				v.sb.WriteString(", ")
			}
			if err := expr.Accept(v); err != nil {
				return err
			}
		}
	}

	if err := v.clause(" HAVING ", s.Having); err != nil {
		return err
	}

	if len(s.OrderBy) > 0 {
		v.sb.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				v.sb.WriteString(", ")
			}
			if err := o.Accept(v); err != nil {
				return err
			}
		}
	}

	v.sb.WriteString(v.dialect.Pagination(s.Limit, s.Offset))

	return v.unions(s.Unions)
}

// unions appends each compound member. Members are parenthesized when the dialect allows it;
// otherwise a member with its own tail is read through a derived table.
func (v *SQLVisitor) unions(unions []*ast.Union) error {
	paren := v.dialect.ParenthesizeUnion()
	for _, u := range unions {
		if u == nil || u.Stmt == nil {
			return sqlerr.Build(sqlerr.InvalidUnion, "union member is not a select")
		}
		if u.All {
			v.sb.WriteString(" UNION ALL ")
		} else {
			v.sb.WriteString(" UNION ")
		}

		open, closing := "", ""
		switch {
		case paren:
			open, closing = "(", ")"
		case u.Stmt.HasTail():
			open, closing = "SELECT * FROM (", ")"
		}
		v.sb.WriteString(open)
		if err := v.embed(u.Stmt); err != nil {
			return err
		}
		v.sb.WriteString(closing)
	}
	return nil
}

func (v *SQLVisitor) VisitInsert(s *ast.InsertStmt) error {
	if s.Table == nil || s.Table.Name == "" {
		return sqlerr.Build(sqlerr.MissingTable, "insert has no table")
	}
	if s.Values.Len() == 0 {
		return sqlerr.Build(sqlerr.EmptyPayload, "insert into %s has no values", s.Table.Name)
	}

	assignments := s.Values.Assignments()

	v.sb.WriteString("INSERT INTO ")
	if err := s.Table.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" (")
	for i, a := range assignments {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteString(v.quote(a.Column))
	}
	v.sb.WriteString(") VALUES (")
	for i, a := range assignments {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.param(v.ns.Bind(a.Column, a.Value))
	}
	v.sb.WriteByte(')')

	update := upsertColumns(s)
	if len(update) == 0 {
		return nil
	}
	clause, err := v.dialect.Upsert(v.quoteAll(s.ConflictColumns), v.quoteAll(update))
	if err != nil {
		return sqlerr.Build(sqlerr.UnsupportedUpsert, "%s: %v", v.dialect.Name(), err)
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(clause)
	return nil
}

// upsertColumns falls back to every non-conflict payload column when only a conflict
// target was given.
func upsertColumns(s *ast.InsertStmt) []string {
	if len(s.UpsertColumns) > 0 || len(s.ConflictColumns) == 0 {
		return s.UpsertColumns
	}
	skip := make(map[string]struct{}, len(s.ConflictColumns))
	for _, c := range s.ConflictColumns {
		skip[c] = struct{}{}
	}
	var cols []string
	for _, c := range s.Values.Columns() {
		if _, ok := skip[c]; !ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (v *SQLVisitor) quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = v.quote(c)
	}
	return out
}

func (v *SQLVisitor) VisitUpdate(s *ast.UpdateStmt) error {
	if s.Table == nil || s.Table.Name == "" {
		return sqlerr.Build(sqlerr.MissingTable, "update has no table")
	}
	if s.Set.Len() == 0 {
		return sqlerr.Build(sqlerr.EmptyPayload, "update of %s sets no columns", s.Table.Name)
	}
	if s.Where.IsEmpty() && !s.AllowUnconditional {
		return sqlerr.Build(sqlerr.UnconditionalMutationBlocked, "update of %s has no where clause", s.Table.Name)
	}

	v.sb.WriteString("UPDATE ")
	if err := s.Table.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" SET ")
	for i, a := range s.Set.Assignments() {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteString(v.quote(a.Column))
		v.sb.WriteString(" = ")
		v.param(v.ns.Bind(a.Column, a.Value))
	}

	return v.clause(" WHERE ", s.Where)
}

func (v *SQLVisitor) VisitDelete(s *ast.DeleteStmt) error {
	if s.Table == nil || s.Table.Name == "" {
		return sqlerr.Build(sqlerr.MissingTable, "delete has no table")
	}
	if s.Where.IsEmpty() && !s.AllowUnconditional {
		return sqlerr.Build(sqlerr.UnconditionalMutationBlocked, "delete from %s has no where clause", s.Table.Name)
	}

	v.sb.WriteString("DELETE FROM ")
	if err := s.Table.Accept(v); err != nil {
		return err
	}

	return v.clause(" WHERE ", s.Where)
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		v.sb.WriteString(v.quote(c.Table))
		v.sb.WriteByte('.')
	}
	if c.Name == "*" {
		v.sb.WriteByte('*')
	} else {
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Name))
	}

	if c.Alias != "" && c.Alias != c.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	if t.Subquery != nil {
		v.sb.WriteByte('(')
		if err := v.embed(t.Subquery); err != nil {
			return err
		}
		v.sb.WriteByte(')')
		if t.Alias != "" {
			v.sb.WriteString(" AS ")
			v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
		}
		return nil
	}

	if t.Schema != "" {
		v.sb.WriteString(v.quote(t.Schema))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Name))

	if t.Alias != "" && t.Alias != t.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	v.param(v.ns.Bind(val.Hint, val.Val))
	return nil
}

func (v *SQLVisitor) VisitRaw(r *ast.Raw) error {
	v.sb.WriteString(r.SQL)
	return nil
}

func (v *SQLVisitor) VisitSubqueryExpr(s *ast.SubqueryExpr) error {
	if s.Stmt == nil {
		return sqlerr.Build(sqlerr.MissingTable, "subquery has no statement")
	}
	v.sb.WriteByte('(')
	if err := v.embed(s.Stmt); err != nil {
		return err
	}
	v.sb.WriteByte(')')

	if s.Alias != "" {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(s.Alias))
	}
	return nil
}

func (v *SQLVisitor) VisitComparison(c *ast.Comparison) error {
	if err := c.Left.Accept(v); err != nil {
		return err
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(c.Operator)
	v.sb.WriteByte(' ')

	// a select-list alias has no place on the right-hand side of a predicate
	if sub, ok := c.Right.(*ast.SubqueryExpr); ok && sub.Alias != "" {
		return v.VisitSubqueryExpr(ast.NewSubqueryExpr(sub.Stmt))
	}
	return c.Right.Accept(v)
}

func (v *SQLVisitor) VisitInList(in *ast.InList) error {
	if len(in.Values) == 0 {
		if in.Negated {
			v.sb.WriteString("1=1")
		} else {
			v.sb.WriteString("1=0")
		}
		return nil
	}

	if err := in.Left.Accept(v); err != nil {
		return err
	}
	if in.Negated {
		v.sb.WriteString(" NOT IN (")
	} else {
		v.sb.WriteString(" IN (")
	}
	for i, val := range in.Values {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := val.Accept(v); err != nil {
			return err
		}
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) VisitBetween(b *ast.Between) error {
	if err := b.Left.Accept(v); err != nil {
		return err
	}
	if b.Negated {
		v.sb.WriteString(" NOT BETWEEN ")
	} else {
		v.sb.WriteString(" BETWEEN ")
	}
	if err := b.Low.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" AND ")
	return b.High.Accept(v)
}

func (v *SQLVisitor) VisitExists(e *ast.Exists) error {
	if e.Subquery == nil {
		return sqlerr.Build(sqlerr.MissingTable, "exists has no subquery")
	}
	if e.Negated {
		v.sb.WriteString("NOT ")
	}
	v.sb.WriteString("EXISTS ")
	return v.VisitSubqueryExpr(ast.NewSubqueryExpr(e.Subquery.Stmt))
}

// VisitGroup emits a nested group in parentheses. Root groups go through clause.
func (v *SQLVisitor) VisitGroup(g *ast.Group) error {
	if g.IsEmpty() {
		return nil
	}
	v.sb.WriteByte('(')
	if err := v.conditions(g); err != nil {
		return err
	}
	v.sb.WriteByte(')')
	return nil
}

func (v *SQLVisitor) clause(keyword string, g *ast.Group) error {
	if g.IsEmpty() {
		return nil
	}
	v.sb.WriteString(keyword)
	return v.conditions(g)
}

func (v *SQLVisitor) conditions(g *ast.Group) error {
	first := true
	for _, c := range g.Conditions {
		if sub, ok := c.Node.(*ast.Group); ok && sub.IsEmpty() {
			continue
		}
		if !first {
			conn := c.Connector
			if conn == "" {
				conn = ast.And
			}
			v.sb.WriteByte(' ')
			v.sb.WriteString(string(conn))
			v.sb.WriteByte(' ')
		}
		first = false

		if err := c.Node.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) VisitJoinClause(j *ast.JoinClause) error {
	if j.Table.IsZero() {
		return sqlerr.Build(sqlerr.MissingTable, "join has no table")
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(j.Kind.String())
	v.sb.WriteByte(' ')
	if err := j.Table.Accept(v); err != nil {
		return err
	}

	if j.Kind == ast.CrossJoin || j.Left == nil || j.Right == nil {
		return nil
	}

	v.sb.WriteString(" ON ")
	if err := j.Left.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(j.Operator)
	v.sb.WriteByte(' ')
	return j.Right.Accept(v)
}

func (v *SQLVisitor) VisitOrderByClause(o *ast.OrderByClause) error {
	if err := o.Expr.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(' ')
	v.sb.WriteString(o.Direction.String())
	return nil
}

var _ ast.Visitor = (*SQLVisitor)(nil)
