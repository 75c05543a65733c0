package query

import (
	"sort"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/sqlerr"
)

// Insert makes the statement an INSERT of row. Columns are written in sorted order.
func (b *Builder) Insert(table string, row map[string]any) *Builder {
	b.declare(ast.KindInsert, table)
	b.setAll(row)
	return b
}

// InsertColumns makes the statement an INSERT with columns in the given order.
func (b *Builder) InsertColumns(table string, columns []string, values []any) *Builder {
	b.declare(ast.KindInsert, table)
	if len(columns) != len(values) {
		return b.fail(sqlerr.PayloadMismatch, "%d columns, %d values", len(columns), len(values))
	}
	for i, c := range columns {
		b.payload.Set(c, values[i])
	}
	return b
}

// Update makes the statement an UPDATE setting every entry of set, in sorted column order.
func (b *Builder) Update(table string, set map[string]any) *Builder {
	b.declare(ast.KindUpdate, table)
	b.setAll(set)
	return b
}

// Set adds one column to the INSERT or UPDATE payload. Setting a column twice keeps its
// first position and the last value. A payload left on a SELECT or DELETE fails to compile.
func (b *Builder) Set(column string, value any) *Builder {
	b.payload.Set(column, value)
	return b
}

func (b *Builder) Delete(table string) *Builder {
	b.declare(ast.KindDelete, table)
	return b
}

// OnDuplicateKeyUpdate turns an INSERT into an upsert updating columns on conflict.
// With no columns every inserted column is updated, resolved when the statement is frozen.
func (b *Builder) OnDuplicateKeyUpdate(columns ...string) *Builder {
	if len(columns) == 0 {
		b.upsertAll = true
	}
	b.upsert = append(b.upsert, columns...)
	return b
}

// OnConflict names the conflict target for dialects that need one. Without
// OnDuplicateKeyUpdate every other inserted column is updated.
func (b *Builder) OnConflict(columns ...string) *Builder {
	b.conflict = append(b.conflict, columns...)
	return b
}

// AllowUnconditional permits UPDATE and DELETE without a where clause.
func (b *Builder) AllowUnconditional() *Builder {
	b.allowUnconditional = true
	return b
}

// declare sets the statement kind and target table. Moving from one mutation kind to
// another drops the payload and upsert settings gathered for the previous one.
func (b *Builder) declare(kind ast.StatementKind, table string) {
	if b.kind != kind && b.kind != ast.KindSelect {
		b.payload = ast.NewPayload()
		b.upsert = nil
		b.upsertAll = false
		b.conflict = nil
	}
	b.kind = kind
	b.table = ast.ParseTable(table)
}

func (b *Builder) setAll(row map[string]any) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.payload.Set(k, row[k])
	}
}
