package ast

// Assignment is one column/value pair of an INSERT or UPDATE payload.
type Assignment struct {
	Column string
	Value  any
}

// Payload keeps assignments in insertion order with unique columns. Setting an existing
// column replaces its value in place.
type Payload struct {
	items []Assignment
	index map[string]int
}

func NewPayload() *Payload {
	return &Payload{index: make(map[string]int)}
}

func (p *Payload) Set(column string, value any) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[column]; ok {
		p.items[i].Value = value
		return
	}
	p.index[column] = len(p.items)
	p.items = append(p.items, Assignment{Column: column, Value: value})
}

func (p *Payload) Get(column string) (any, bool) {
	if p == nil {
		return nil, false
	}
	i, ok := p.index[column]
	if !ok {
		return nil, false
	}
	return p.items[i].Value, true
}

func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

func (p *Payload) Assignments() []Assignment {
	if p == nil {
		return nil
	}
	out := make([]Assignment, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Payload) Columns() []string {
	if p == nil {
		return nil
	}
	cols := make([]string, len(p.items))
	for i, a := range p.items {
		cols[i] = a.Column
	}
	return cols
}
