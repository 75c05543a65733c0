package ast

import "strings"

// Table is a named table or, when Subquery is set, a derived table that must carry an Alias.
type Table struct {
	Schema   string
	Name     string
	Alias    string
	Subquery *SelectStmt
}

func NewTable(schema, name, alias string) *Table {
	return &Table{Schema: schema, Name: name, Alias: alias}
}

// ParseTable reads "schema.table alias", "table AS alias" and "table" formats.
func ParseTable(ref string) *Table {
	var schema, name, alias string
	fields := strings.Fields(ref)
	switch {
	case len(fields) == 3 && strings.EqualFold(fields[1], "AS"):
		alias = fields[2]
	case len(fields) == 2:
		alias = fields[1]
	}
	if len(fields) > 0 {
		name = fields[0]
	}
	if dotIdx := strings.LastIndex(name, "."); dotIdx > 0 {
		schema, name = name[:dotIdx], name[dotIdx+1:]
	}
	return NewTable(schema, name, alias)
}

// IsZero reports whether the table names nothing to read from or write to.
func (t *Table) IsZero() bool {
	return t == nil || (t.Name == "" && t.Subquery == nil)
}

func (t *Table) Type() NodeType         { return NodeTable }
func (t *Table) Accept(v Visitor) error { return v.VisitTable(t) }
