package ast

// Comparison is "left op right". Right is a bound *Value, a *Column, a *SubqueryExpr or a *Raw.
type Comparison struct {
	Left     Expr
	Operator string
	Right    Expr
}

func (c *Comparison) Type() NodeType         { return NodeComparison }
func (c *Comparison) Accept(v Visitor) error { return v.VisitComparison(c) }
func (c *Comparison) whereNode()             {}

// InList is "col [NOT] IN (v1, v2, ...)". An empty list is a constant predicate.
type InList struct {
	Left    Expr
	Negated bool
	Values  []*Value
}

func (in *InList) Type() NodeType         { return NodeInList }
func (in *InList) Accept(v Visitor) error { return v.VisitInList(in) }
func (in *InList) whereNode()             {}

type Between struct {
	Left    Expr
	Negated bool
	Low     *Value
	High    *Value
}

func (b *Between) Type() NodeType         { return NodeBetween }
func (b *Between) Accept(v Visitor) error { return v.VisitBetween(b) }
func (b *Between) whereNode()             {}

type Exists struct {
	Negated  bool
	Subquery *SubqueryExpr
}

func (e *Exists) Type() NodeType         { return NodeExists }
func (e *Exists) Accept(v Visitor) error { return v.VisitExists(e) }
func (e *Exists) whereNode()             {}

// Condition is one member of a Group. Connector joins it to the previous emitted member.
type Condition struct {
	Connector Connector
	Node      WhereNode
}

// Group is a parenthesized sequence of conditions. The root group of a clause is emitted
// without parentheses; an empty group emits nothing.
type Group struct {
	Conditions []Condition
}

func NewGroup() *Group {
	return &Group{}
}

func (g *Group) Add(conn Connector, node WhereNode) {
	g.Conditions = append(g.Conditions, Condition{Connector: conn, Node: node})
}

// IsEmpty reports whether the group would emit nothing, looking through nested empty groups.
func (g *Group) IsEmpty() bool {
	if g == nil {
		return true
	}
	for _, c := range g.Conditions {
		if sub, ok := c.Node.(*Group); ok && sub.IsEmpty() {
			continue
		}
		return false
	}
	return true
}

func (g *Group) Type() NodeType         { return NodeGroup }
func (g *Group) Accept(v Visitor) error { return v.VisitGroup(g) }
func (g *Group) whereNode()             {}
