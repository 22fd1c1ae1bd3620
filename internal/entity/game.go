package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the symbol a player puts into a cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

type Mode string

const (
	ModePvP  Mode = "pvp"
	ModePvAI Mode = "ai"
)

// ParseMode - converts a presenter-supplied mode name into a Mode.
func ParseMode(value string) (Mode, error) {
	switch mode := Mode(value); mode {
	case ModePvP, ModePvAI:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, value)
	}
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusAwaitingX Status = "awaiting_x"
	StatusAwaitingO Status = "awaiting_o"
	StatusWon       Status = "won"
	StatusDraw      Status = "draw"
)

func (that Status) IsTerminal() bool {
	return that == StatusWon || that == StatusDraw
}

// AwaitingStatus returns the status for a game waiting on the given player.
func AwaitingStatus(player Mark) Status {
	if player == PlayerO {
		return StatusAwaitingO
	}
	return StatusAwaitingX
}

const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

// EmptyCells returns the free cell indices in board order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Count returns the number of marked cells.
func (that *Board) Count() int {
	return BoardSize - len(that.EmptyCells())
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

type Move struct {
	Cell int  `json:"cell"`
	Mark Mark `json:"mark"`
	ByAI bool `json:"by_ai,omitempty"`
}

// Snapshot is an immutable copy of a game handed to presenters.
type Snapshot struct {
	Board       Board  `json:"board"`
	Turn        Mark   `json:"player_turn"`
	Active      bool   `json:"active"`
	Status      Status `json:"status"`
	Mode        Mode   `json:"mode,omitempty"`
	Winner      Mark   `json:"winner,omitempty"`
	WinningLine []int  `json:"winning_line,omitempty"`
	LastMove    *Move  `json:"last_move,omitempty"`
	Message     string `json:"message"`
}

// StatusMessage - builds the text shown next to the board.
func StatusMessage(status Status, turn, winner Mark) string {
	switch status {
	case StatusWon:
		return "Winner: " + string(winner)
	case StatusDraw:
		return "Draw!"
	case StatusAwaitingX, StatusAwaitingO:
		return "Current turn: " + string(turn)
	default:
		return "Select a mode to start"
	}
}
