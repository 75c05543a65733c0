package ast

// Value is a bound parameter. Hint seeds the generated parameter name.
type Value struct {
	Val  any
	Hint string
}

func NewValue(hint string, val any) *Value {
	return &Value{Val: val, Hint: hint}
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }
func (v *Value) exprNode()                {}

// Raw is emitted verbatim. It must never carry caller-supplied values.
type Raw struct {
	SQL string
}

func NewRaw(sql string) *Raw {
	return &Raw{SQL: sql}
}

func (r *Raw) Type() NodeType         { return NodeRaw }
func (r *Raw) Accept(v Visitor) error { return v.VisitRaw(r) }
func (r *Raw) exprNode()              {}
