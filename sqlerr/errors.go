// Package sqlerr holds the error taxonomy shared by the compiler, the builder and the executor.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/querykit/binding"
)

// Kind classifies a BuildError.
type Kind int

const (
	MissingTable Kind = iota + 1
	EmptyPayload
	UnconditionalMutationBlocked
	InvalidOrderDirection
	InvalidJoinKind
	InvalidOperator
	InvalidPagination
	PayloadMismatch
	InvalidUnion
	UnsupportedUpsert
)

var kindNames = map[Kind]string{
	MissingTable:                 "missing table",
	EmptyPayload:                 "empty payload",
	UnconditionalMutationBlocked: "unconditional mutation blocked",
	InvalidOrderDirection:        "invalid order direction",
	InvalidJoinKind:              "invalid join kind",
	InvalidOperator:              "invalid operator",
	InvalidPagination:            "invalid pagination",
	PayloadMismatch:              "payload mismatch",
	InvalidUnion:                 "invalid union",
	UnsupportedUpsert:            "unsupported upsert",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrMissingTable                 = &BuildError{Kind: MissingTable}
	ErrEmptyPayload                 = &BuildError{Kind: EmptyPayload}
	ErrUnconditionalMutationBlocked = &BuildError{Kind: UnconditionalMutationBlocked}
	ErrInvalidOrderDirection        = &BuildError{Kind: InvalidOrderDirection}
	ErrInvalidJoinKind              = &BuildError{Kind: InvalidJoinKind}
	ErrInvalidOperator              = &BuildError{Kind: InvalidOperator}
	ErrInvalidPagination            = &BuildError{Kind: InvalidPagination}
	ErrPayloadMismatch              = &BuildError{Kind: PayloadMismatch}
	ErrInvalidUnion                 = &BuildError{Kind: InvalidUnion}
	ErrUnsupportedUpsert            = &BuildError{Kind: UnsupportedUpsert}
)

// BuildError is a programmer error detected while composing or compiling a statement.
// It is always raised before any SQL reaches the connection.
type BuildError struct {
	Kind   Kind
	Detail string
}

// Build returns a BuildError of the given kind with a formatted detail.
func Build(kind Kind, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *BuildError) Error() string {
	if e.Detail == "" {
		return "querykit: " + e.Kind.String()
	}
	return "querykit: " + e.Kind.String() + ": " + e.Detail
}

func (e *BuildError) Is(target error) bool {
	var t *BuildError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// ExecutionError wraps a driver failure together with the statement that caused it.
type ExecutionError struct {
	SQL      string
	Bindings binding.Bindings
	Err      error
}

func (e *ExecutionError) Error() string {
	var sb strings.Builder
	sb.WriteString("querykit: execute ")
	sb.WriteString(e.SQL)
	if len(e.Bindings) > 0 {
		sb.WriteString(" [")
		for i, b := range e.Bindings {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(string(b.Name))
		}
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ExecutionError) Unwrap() error { return e.Err }
