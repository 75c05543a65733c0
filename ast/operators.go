package ast

import "strings"

const (
	OpEqual         = "="
	OpNotEqual      = "!="
	OpNotEqualAlt   = "<>"
	OpLessThan      = "<"
	OpLessOrEqual   = "<="
	OpGreaterThan   = ">"
	OpGreaterOrEq   = ">="
	OpNullSafeEqual = "<=>"
	OpLike          = "LIKE"
	OpNotLike       = "NOT LIKE"
	OpILike         = "ILIKE"
	OpIn            = "IN"
	OpNotIn         = "NOT IN"
	OpIs            = "IS"
	OpIsNot         = "IS NOT"
	OpRegexp        = "REGEXP"
)

var comparisonOperators = map[string]struct{}{
	OpEqual:         {},
	OpNotEqual:      {},
	OpNotEqualAlt:   {},
	OpLessThan:      {},
	OpLessOrEqual:   {},
	OpGreaterThan:   {},
	OpGreaterOrEq:   {},
	OpNullSafeEqual: {},
	OpLike:          {},
	OpNotLike:       {},
	OpILike:         {},
	OpIn:            {},
	OpNotIn:         {},
	OpIs:            {},
	OpIsNot:         {},
	OpRegexp:        {},
}

// NormalizeOperator upper-cases and collapses whitespace so "not  like" matches NOT LIKE.
func NormalizeOperator(op string) string {
	return strings.ToUpper(strings.Join(strings.Fields(op), " "))
}

// IsComparisonOperator reports whether op is allowed in a comparison. op must be normalized.
func IsComparisonOperator(op string) bool {
	_, ok := comparisonOperators[op]
	return ok
}

type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)
