package visitor

import (
	"strings"

	"github.com/Konsultn-Engineering/querykit/ast"
	"github.com/Konsultn-Engineering/querykit/binding"
	"github.com/Konsultn-Engineering/querykit/dialect"
)

// Compiled is the output of one compilation: the parameterized SQL and its binding table.
type Compiled struct {
	SQL      string
	Bindings binding.Bindings
	Kind     ast.StatementKind

	chunks  []string
	params  []binding.ParamName
	dialect dialect.Dialect
}

// Compile renders stmt for d. It performs no I/O and has no side effects on stmt.
func Compile(d dialect.Dialect, stmt ast.Statement) (*Compiled, error) {
	return NewSQLVisitor(d, binding.New()).Build(stmt)
}

// Debug renders the statement with every placeholder replaced by a literal.
// The result is for logs and humans only; it is never sent to a driver.
func (c *Compiled) Debug() string {
	if c == nil {
		return ""
	}
	values := c.Bindings.Map()
	var sb strings.Builder
	for i, chunk := range c.chunks {
		sb.WriteString(chunk)
		if i < len(c.params) {
			sb.WriteString(c.dialect.RenderValue(values[string(c.params[i])]))
		}
	}
	return sb.String()
}
