package dialect

import (
	"fmt"
	"strings"
)

type Postgres struct {
	prefix string
}

type PostgresOption func(*Postgres)

// WithPlaceholderPrefix switches the named parameter marker. pgx expects "@", sqlx-based
// drivers such as lib/pq expect ":".
func WithPlaceholderPrefix(prefix string) PostgresOption {
	return func(p *Postgres) { p.prefix = prefix }
}

func NewPostgresDialect(opts ...PostgresOption) Dialect {
	p := &Postgres{prefix: "@"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p Postgres) Name() string { return "postgres" }

func (p Postgres) QuoteIdentifier(name string) string {
	return quoteWith(`"`, name)
}

func (p Postgres) Placeholder(name string) string {
	return p.prefix + name
}

func (p Postgres) Upsert(conflict, update []string) (string, error) {
	return onConflict("postgres", "EXCLUDED", conflict, update)
}

func (p Postgres) Pagination(limit, offset *int) string {
	var sb strings.Builder
	if limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(itoaPtr(limit))
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(itoaPtr(offset))
	}
	return sb.String()
}

func (p Postgres) ParenthesizeUnion() bool { return true }

func (Postgres) RenderValue(v any) string {
	return renderValue(v, func(b []byte) string {
		return fmt.Sprintf("'\\x%x'::bytea", b)
	})
}

func onConflict(dialect, excluded string, conflict, update []string) (string, error) {
	if len(conflict) == 0 {
		return "", fmt.Errorf("%s upsert requires conflict columns", dialect)
	}
	parts := make([]string, len(update))
	for i, col := range update {
		parts[i] = col + " = " + excluded + "." + col
	}
	return "ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(parts, ", "), nil
}
