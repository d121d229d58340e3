package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrOccupied    = errors.New("cell already occupied")
	ErrAgentExists = errors.New("board already has an agent")
	ErrNotOnBoard  = errors.New("entity is not on the board")
)

// ContractError reports a broken board invariant. It is raised with panic,
// never returned: game outcomes are MoveResults, not errors.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("board contract violated in %s: %s", e.Op, e.Msg)
}

func contractViolation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
