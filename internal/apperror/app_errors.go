package apperror

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is the root of every rejected move; callers treat it as "no-op, re-prompt".
var ErrIllegalMove = errors.New("illegal move")

var (
	ErrGameOver         = fmt.Errorf("%w: game is already finished", ErrIllegalMove)
	ErrGameIsNotStarted = fmt.Errorf("%w: game is not started", ErrIllegalMove)
	ErrCellOccupied     = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrInvalidCell      = fmt.Errorf("%w: invalid cell index", ErrIllegalMove)

	ErrUnknownMode     = errors.New("unknown game mode")
	ErrModeNotSelected = errors.New("game mode is not selected")

	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidPlayer    = errors.New("invalid player mark")
)
