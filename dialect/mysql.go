package dialect

import (
	"fmt"
	"strings"
)

// maxUint64 stands in for "no limit" when only an offset is set, as the MySQL manual suggests.
const maxUint64 = "18446744073709551615"

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m MySQL) Name() string { return "mysql" }

func (m MySQL) QuoteIdentifier(name string) string {
	return quoteWith("`", name)
}

func (m MySQL) Placeholder(name string) string {
	return ":" + name
}

// Upsert ignores conflict: MySQL resolves conflicts against every unique key.
func (m MySQL) Upsert(conflict, update []string) (string, error) {
	parts := make([]string, len(update))
	for i, col := range update {
		parts[i] = col + " = VALUES(" + col + ")"
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(parts, ", "), nil
}

func (m MySQL) Pagination(limit, offset *int) string {
	var sb strings.Builder
	switch {
	case limit != nil:
		sb.WriteString(" LIMIT ")
		sb.WriteString(itoaPtr(limit))
	case offset != nil:
		sb.WriteString(" LIMIT " + maxUint64)
	}
	if offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(itoaPtr(offset))
	}
	return sb.String()
}

func (m MySQL) ParenthesizeUnion() bool { return true }

func (m MySQL) RenderValue(v any) string {
	return renderValue(v, func(b []byte) string {
		return fmt.Sprintf("X'%x'", b)
	})
}
