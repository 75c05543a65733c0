package ast

type Visitor interface {
	VisitSelect(*SelectStmt) error
	VisitInsert(*InsertStmt) error
	VisitUpdate(*UpdateStmt) error
	VisitDelete(*DeleteStmt) error

	VisitColumn(*Column) error
	VisitTable(*Table) error
	VisitValue(*Value) error
	VisitRaw(*Raw) error
	VisitSubqueryExpr(*SubqueryExpr) error

	VisitComparison(*Comparison) error
	VisitInList(*InList) error
	VisitBetween(*Between) error
	VisitExists(*Exists) error
	VisitGroup(*Group) error

	VisitJoinClause(*JoinClause) error
	VisitOrderByClause(*OrderByClause) error
}
