package query

// Root where-tree shortcuts. Each forwards to the matching Where method on the root group.

func (b *Builder) Where(column, op string, value any) *Builder {
	b.whereGroup().Where(column, op, value)
	return b
}

func (b *Builder) OrWhere(column, op string, value any) *Builder {
	b.whereGroup().OrWhere(column, op, value)
	return b
}

func (b *Builder) WhereIn(column string, values any) *Builder {
	b.whereGroup().WhereIn(column, values)
	return b
}

func (b *Builder) WhereNotIn(column string, values any) *Builder {
	b.whereGroup().WhereNotIn(column, values)
	return b
}

func (b *Builder) OrWhereIn(column string, values any) *Builder {
	b.whereGroup().OrWhereIn(column, values)
	return b
}

func (b *Builder) OrWhereNotIn(column string, values any) *Builder {
	b.whereGroup().OrWhereNotIn(column, values)
	return b
}

func (b *Builder) WhereBetween(column string, low, high any) *Builder {
	b.whereGroup().WhereBetween(column, low, high)
	return b
}

func (b *Builder) WhereNotBetween(column string, low, high any) *Builder {
	b.whereGroup().WhereNotBetween(column, low, high)
	return b
}

func (b *Builder) OrWhereBetween(column string, low, high any) *Builder {
	b.whereGroup().OrWhereBetween(column, low, high)
	return b
}

func (b *Builder) WhereNull(column string) *Builder {
	b.whereGroup().WhereNull(column)
	return b
}

func (b *Builder) WhereNotNull(column string) *Builder {
	b.whereGroup().WhereNotNull(column)
	return b
}

func (b *Builder) OrWhereNull(column string) *Builder {
	b.whereGroup().OrWhereNull(column)
	return b
}

func (b *Builder) OrWhereNotNull(column string) *Builder {
	b.whereGroup().OrWhereNotNull(column)
	return b
}

func (b *Builder) WhereColumn(left, op, right string) *Builder {
	b.whereGroup().WhereColumn(left, op, right)
	return b
}

func (b *Builder) OrWhereColumn(left, op, right string) *Builder {
	b.whereGroup().OrWhereColumn(left, op, right)
	return b
}

func (b *Builder) WhereExists(fn func(*Builder)) *Builder {
	b.whereGroup().WhereExists(fn)
	return b
}

func (b *Builder) WhereNotExists(fn func(*Builder)) *Builder {
	b.whereGroup().WhereNotExists(fn)
	return b
}

func (b *Builder) OrWhereExists(fn func(*Builder)) *Builder {
	b.whereGroup().OrWhereExists(fn)
	return b
}

func (b *Builder) WhereGroup(fn func(*Where)) *Builder {
	b.whereGroup().WhereGroup(fn)
	return b
}

func (b *Builder) OrWhereGroup(fn func(*Where)) *Builder {
	b.whereGroup().OrWhereGroup(fn)
	return b
}
