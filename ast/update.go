package ast

type UpdateStmt struct {
	Table              *Table
	Set                *Payload
	Where              *Group
	AllowUnconditional bool
}

func (s *UpdateStmt) Type() NodeType         { return NodeUpdate }
func (s *UpdateStmt) Accept(v Visitor) error { return v.VisitUpdate(s) }
func (s *UpdateStmt) Kind() StatementKind    { return KindUpdate }
func (s *UpdateStmt) statementNode()         {}
