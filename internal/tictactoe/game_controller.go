package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/engine"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// StateListener receives a snapshot after every reset and every applied move.
type StateListener func(snapshot entity.Snapshot)

// GameController owns the state of a single game. It is not safe for concurrent use.
type GameController struct {
	board       entity.Board
	turn        entity.Mark
	active      bool
	status      entity.Status
	mode        entity.Mode
	winner      entity.Mark
	winningLine []int
	lastMove    *entity.Move

	listener StateListener
}

func NewGameController(listener StateListener) *GameController {
	return &GameController{
		status:   entity.StatusIdle,
		listener: listener,
	}
}

// Reset - starts a fresh game in the given mode.
func (that *GameController) Reset(mode entity.Mode) error {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return err
	}

	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.active = true
	that.status = entity.StatusAwaitingX
	that.mode = mode
	that.winner = entity.EmptyCell
	that.winningLine = nil
	that.lastMove = nil

	that.emit()

	return nil
}

// Restart - resets with the mode chosen last.
func (that *GameController) Restart() error {
	if that.mode == "" {
		return apperror.ErrModeNotSelected
	}

	return that.Reset(that.mode)
}

// ApplyMove - places the current player's mark and, against the AI, plays its reply.
func (that *GameController) ApplyMove(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return err
	}

	that.place(cell, false)

	if that.mode != entity.ModePvAI || !that.active || that.turn != entity.PlayerO {
		return nil
	}

	reply, err := engine.BestMove(that.board, entity.PlayerO)
	if err != nil {
		return fmt.Errorf("ai failed to pick a move: %w", err)
	}

	that.place(reply, true)

	return nil
}

func (that *GameController) Snapshot() entity.Snapshot {
	snapshot := entity.Snapshot{
		Board:   that.board,
		Turn:    that.turn,
		Active:  that.active,
		Status:  that.status,
		Mode:    that.mode,
		Winner:  that.winner,
		Message: entity.StatusMessage(that.status, that.turn, that.winner),
	}

	if that.winningLine != nil {
		snapshot.WinningLine = append([]int(nil), that.winningLine...)
	}

	if that.lastMove != nil {
		lastMove := *that.lastMove
		snapshot.LastMove = &lastMove
	}

	return snapshot
}

func (that *GameController) Status() entity.Status {
	return that.status
}

func (that *GameController) Mode() entity.Mode {
	return that.mode
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell int) error {
	switch {
	case that.status.IsTerminal():
		return apperror.ErrGameOver
	case !that.active:
		return apperror.ErrGameIsNotStarted
	case !entity.IsValidCell(cell):
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	case that.board[cell] != entity.EmptyCell:
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func (that *GameController) place(cell int, byAI bool) {
	player := that.turn

	that.board[cell] = player
	that.lastMove = &entity.Move{Cell: cell, Mark: player, ByAI: byAI}

	that.updateGameStatus(player)
	that.emit()
}

// updateGameStatus - checks the game status after a move.
func (that *GameController) updateGameStatus(player entity.Mark) {
	if line, winner, ok := engine.WinningLine(that.board); ok {
		that.winner = winner
		that.winningLine = line[:]
		that.status = entity.StatusWon
		that.active = false
		return
	}

	if engine.IsDraw(that.board) {
		that.status = entity.StatusDraw
		that.active = false
		return
	}

	that.turn = player.Opponent()
	that.status = entity.AwaitingStatus(that.turn)
}

func (that *GameController) emit() {
	if that.listener != nil {
		that.listener(that.Snapshot())
	}
}
