package ast

type SelectStmt struct {
	Distinct bool
	Columns  []Expr
	From     *Table
	Joins    []*JoinClause
	Where    *Group
	GroupBy  []Expr
	Having   *Group
	OrderBy  []*OrderByClause
	Limit    *int
	Offset   *int
	Unions   []*Union
}

// Union is one compound member appended to a SELECT.
type Union struct {
	All  bool
	Stmt *SelectStmt
}

func NewSelectStmt() *SelectStmt {
	return &SelectStmt{Where: NewGroup(), Having: NewGroup()}
}

// Clone returns a shallow copy whose slices can be replaced without touching the original.
func (s *SelectStmt) Clone() *SelectStmt {
	c := *s
	return &c
}

// IsAggregate reports whether counting rows requires wrapping the statement.
func (s *SelectStmt) IsAggregate() bool {
	return s.Distinct || len(s.GroupBy) > 0 || len(s.Unions) > 0 || !s.Having.IsEmpty()
}

// HasTail reports whether the statement carries its own ORDER BY, LIMIT or OFFSET.
func (s *SelectStmt) HasTail() bool {
	return len(s.OrderBy) > 0 || s.Limit != nil || s.Offset != nil
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
func (s *SelectStmt) Kind() StatementKind    { return KindSelect }
func (s *SelectStmt) statementNode()         {}
