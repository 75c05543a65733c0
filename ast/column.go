package ast

import "strings"

type Column struct {
	Table string
	Name  string
	Alias string
}

func NewColumn(table, name, alias string) *Column {
	return &Column{Table: table, Name: name, Alias: alias}
}

// ParseColumn reads "table.column AS alias" formats. Any part may be absent.
// The table part keeps every segment before the last dot, so "schema.table.col" works.
func ParseColumn(ref string) *Column {
	var table, alias string
	ref = strings.TrimSpace(ref)
	if asIdx := strings.Index(strings.ToUpper(ref), " AS "); asIdx > 0 {
		alias = strings.TrimSpace(ref[asIdx+4:])
		ref = strings.TrimSpace(ref[:asIdx])
	}
	if dotIdx := strings.LastIndex(ref, "."); dotIdx > 0 {
		table, ref = ref[:dotIdx], ref[dotIdx+1:]
	}
	return NewColumn(table, ref, alias)
}

// Hint is the name the column contributes to generated parameter names.
func (c *Column) Hint() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

func (c *Column) Type() NodeType         { return NodeColumn }
func (c *Column) Accept(v Visitor) error { return v.VisitColumn(c) }
func (c *Column) exprNode()              {}
