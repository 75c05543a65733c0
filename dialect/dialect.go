// Package dialect holds the per-database rules the compiler defers to: identifier quoting,
// placeholder syntax, upsert clauses, pagination quirks and literal rendering for debug output.
package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Dialect interface {
	Name() string
	// QuoteIdentifier wraps a single identifier part, doubling embedded quote characters.
	QuoteIdentifier(name string) string
	// Placeholder renders the named parameter marker, e.g. ":age_0".
	Placeholder(name string) string
	// Upsert renders the conflict clause appended to an INSERT. update holds quoted columns.
	Upsert(conflict, update []string) (string, error)
	// Pagination renders the LIMIT/OFFSET tail, leading space included. nil means unset.
	Pagination(limit, offset *int) string
	// ParenthesizeUnion reports whether compound SELECT members are wrapped in parentheses.
	ParenthesizeUnion() bool
	// RenderValue renders v as a SQL literal. Only used for debug output.
	RenderValue(v any) string
}

// Default is the dialect used when none is configured.
func Default() Dialect {
	return NewMySQLDialect()
}

// ByName resolves a dialect from its configuration name.
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", "mysql":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "pq":
		return NewPostgresDialect(WithPlaceholderPrefix(":")), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
}

// QuoteReference quotes a possibly dotted reference part by part. "*" is left bare and
// "ref AS alias" (any case) quotes both sides.
func QuoteReference(d Dialect, ref string) string {
	ref = strings.TrimSpace(ref)
	if idx := strings.Index(strings.ToUpper(ref), " AS "); idx > 0 {
		return QuoteReference(d, ref[:idx]) + " AS " + d.QuoteIdentifier(strings.TrimSpace(ref[idx+4:]))
	}
	if ref == "*" {
		return ref
	}
	parts := strings.Split(ref, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func quoteWith(q string, name string) string {
	return q + strings.ReplaceAll(name, q, q+q) + q
}

func renderValue(v any, bytesLiteral func([]byte) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05.000000") + "'"
	case []byte:
		return bytesLiteral(val)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}

func itoaPtr(n *int) string { return strconv.Itoa(*n) }
