package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeInsert
	NodeUpdate
	NodeDelete
	NodeColumn
	NodeTable
	NodeValue
	NodeRaw
	NodeSubqueryExpr
	NodeComparison
	NodeInList
	NodeBetween
	NodeExists
	NodeGroup
	NodeJoin
	NodeOrderBy
)

type Node interface {
	Type() NodeType
	Accept(v Visitor) error
}

// Expr is anything that renders as a scalar expression: a column, a bound value,
// a raw fragment or a parenthesized subquery.
type Expr interface {
	Node
	exprNode()
}

// WhereNode is a member of a where-tree.
type WhereNode interface {
	Node
	whereNode()
}

// Statement is the closed set of compilable statements.
type Statement interface {
	Node
	Kind() StatementKind
	statementNode()
}

type StatementKind int

const (
	KindSelect StatementKind = iota
	KindInsert
	KindUpdate
	KindDelete
)

func (k StatementKind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}
