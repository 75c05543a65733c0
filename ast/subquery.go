package ast

// SubqueryExpr embeds a SELECT as a parenthesized expression. The statement is owned by
// the enclosing statement once attached.
type SubqueryExpr struct {
	Stmt  *SelectStmt
	Alias string
}

func NewSubqueryExpr(stmt *SelectStmt) *SubqueryExpr {
	return &SubqueryExpr{Stmt: stmt}
}

// As returns the subquery with an alias, for use in a select list.
func (s *SubqueryExpr) As(alias string) *SubqueryExpr {
	return &SubqueryExpr{Stmt: s.Stmt, Alias: alias}
}

func (s *SubqueryExpr) Type() NodeType         { return NodeSubqueryExpr }
func (s *SubqueryExpr) Accept(v Visitor) error { return v.VisitSubqueryExpr(s) }
func (s *SubqueryExpr) exprNode()              {}
