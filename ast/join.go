package ast

import (
	"fmt"
	"strings"
)

type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	OuterJoin
	CrossJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case OuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// ParseJoinKind accepts "inner", "left", "right", "outer", "full", "cross" and the same
// names with a trailing "join", in any case.
func ParseJoinKind(s string) (JoinKind, error) {
	k := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	k = strings.TrimSuffix(k, " JOIN")
	switch k {
	case "INNER", "":
		return InnerJoin, nil
	case "LEFT", "LEFT OUTER":
		return LeftJoin, nil
	case "RIGHT", "RIGHT OUTER":
		return RightJoin, nil
	case "OUTER", "FULL", "FULL OUTER":
		return OuterJoin, nil
	case "CROSS":
		return CrossJoin, nil
	default:
		return 0, fmt.Errorf("unknown join kind %q", s)
	}
}

// JoinClause joins Table on "Left Operator Right". Cross joins carry no condition.
type JoinClause struct {
	Kind     JoinKind
	Table    *Table
	Left     *Column
	Operator string
	Right    *Column
}

func (j *JoinClause) Type() NodeType         { return NodeJoin }
func (j *JoinClause) Accept(v Visitor) error { return v.VisitJoinClause(j) }
