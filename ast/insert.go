package ast

// InsertStmt writes one row. UpsertColumns turns it into an insert-or-update on the
// dialect's conflict clause; ConflictColumns names the conflict target where required.
type InsertStmt struct {
	Table           *Table
	Values          *Payload
	UpsertColumns   []string
	ConflictColumns []string
}

func (s *InsertStmt) Type() NodeType         { return NodeInsert }
func (s *InsertStmt) Accept(v Visitor) error { return v.VisitInsert(s) }
func (s *InsertStmt) Kind() StatementKind    { return KindInsert }
func (s *InsertStmt) statementNode()         {}
