package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/querykit/query"
)

// QueryFlags describes the SELECT shared by explain, count and page.
type QueryFlags struct {
	Columns []string
	Where   []string
	Order   []string
	Dialect string
}

func (f *QueryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.Columns, "columns", nil, "columns to select (default *)")
	cmd.Flags().StringArrayVarP(&f.Where, "where", "w", nil, "condition as col:op:value, repeatable")
	cmd.Flags().StringArrayVarP(&f.Order, "order", "o", nil, "ordering as col[:asc|desc], repeatable")
}

// Condition is one parsed --where flag.
type Condition struct {
	Column   string
	Operator string
	Value    any
}

// ParseCondition splits "col:op:value". IN and NOT IN take a comma separated
// list and the literal null maps to nil.
func ParseCondition(s string) (Condition, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Condition{}, fmt.Errorf("invalid condition %q: want col:op:value", s)
	}
	c := Condition{Column: parts[0], Operator: strings.ToUpper(strings.TrimSpace(parts[1]))}
	switch c.Operator {
	case "IN", "NOT IN":
		items := strings.Split(parts[2], ",")
		values := make([]any, len(items))
		for i, item := range items {
			values[i] = parseLiteral(strings.TrimSpace(item))
		}
		c.Value = values
	default:
		c.Value = parseLiteral(parts[2])
	}
	return c, nil
}

func parseLiteral(s string) any {
	if strings.EqualFold(s, "null") {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// ParseOrder splits "col" or "col:dir".
func ParseOrder(s string) (column, direction string) {
	column, direction, found := strings.Cut(s, ":")
	if !found || direction == "" {
		direction = "asc"
	}
	return column, direction
}

// apply adds the flag clauses to b. Invalid operators and directions are
// recorded on the builder like any other construction error.
func (f *QueryFlags) apply(b *query.Builder, table string) error {
	b.From(table)
	if len(f.Columns) > 0 {
		b.Select(f.Columns...)
	}
	for _, w := range f.Where {
		c, err := ParseCondition(w)
		if err != nil {
			return err
		}
		b.Where(c.Column, c.Operator, c.Value)
	}
	for _, o := range f.Order {
		b.OrderBy(ParseOrder(o))
	}
	return nil
}
