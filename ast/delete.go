package ast

type DeleteStmt struct {
	Table              *Table
	Where              *Group
	AllowUnconditional bool
}

func (s *DeleteStmt) Type() NodeType         { return NodeDelete }
func (s *DeleteStmt) Accept(v Visitor) error { return v.VisitDelete(s) }
func (s *DeleteStmt) Kind() StatementKind    { return KindDelete }
func (s *DeleteStmt) statementNode()         {}
