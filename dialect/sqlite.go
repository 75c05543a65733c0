package dialect

import (
	"fmt"
	"strings"
)

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s SQLite) Name() string { return "sqlite" }

func (s SQLite) QuoteIdentifier(name string) string {
	return quoteWith(`"`, name)
}

func (s SQLite) Placeholder(name string) string {
	return ":" + name
}

func (s SQLite) Upsert(conflict, update []string) (string, error) {
	return onConflict("sqlite", "excluded", conflict, update)
}

// Pagination emits LIMIT -1 for an offset without a limit; SQLite requires a LIMIT before OFFSET.
func (s SQLite) Pagination(limit, offset *int) string {
	var sb strings.Builder
	switch {
	case limit != nil:
		sb.WriteString(" LIMIT ")
		sb.WriteString(itoaPtr(limit))
	case offset != nil:
		sb.WriteString(" LIMIT -1")
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(itoaPtr(offset))
	}
	return sb.String()
}

// ParenthesizeUnion is false: SQLite rejects parenthesized compound members.
func (s SQLite) ParenthesizeUnion() bool { return false }

func (SQLite) RenderValue(v any) string {
	return renderValue(v, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}
