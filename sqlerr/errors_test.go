package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/querykit/binding"
)

func TestBuildErrorMatchesByKind(t *testing.T) {
	err := Build(MissingTable, "select without FROM")

	assert.True(t, errors.Is(err, ErrMissingTable))
	assert.False(t, errors.Is(err, ErrEmptyPayload))
	assert.Equal(t, "querykit: missing table: select without FROM", err.Error())

	wrapped := fmt.Errorf("compile: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingTable))

	var be *BuildError
	require.True(t, errors.As(wrapped, &be))
	assert.Equal(t, MissingTable, be.Kind)
}

func TestBuildErrorJoined(t *testing.T) {
	err := errors.Join(Build(InvalidJoinKind, "SIDEWAYS"), Build(InvalidOrderDirection, "UP"))

	assert.True(t, errors.Is(err, ErrInvalidJoinKind))
	assert.True(t, errors.Is(err, ErrInvalidOrderDirection))
	assert.False(t, errors.Is(err, ErrMissingTable))
}

func TestExecutionError(t *testing.T) {
	driverErr := errors.New("no such table: users")
	err := &ExecutionError{
		SQL:      "SELECT * FROM users WHERE id = :id_0",
		Bindings: binding.Bindings{{Name: "id_0", Value: 1}},
		Err:      driverErr,
	}

	assert.ErrorIs(t, err, driverErr)
	assert.Equal(t, "querykit: execute SELECT * FROM users WHERE id = :id_0 [id_0]: no such table: users", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unconditional mutation blocked", UnconditionalMutationBlocked.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
