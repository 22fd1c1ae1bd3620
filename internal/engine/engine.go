package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Terminal scores, always from O's point of view.
const (
	ScoreXWins = -10
	ScoreOWins = 10
	ScoreDraw  = 0
)

// CheckWin - reports whether player holds any complete line.
func CheckWin(board entity.Board, player entity.Mark) bool {
	if !player.IsPlayer() {
		return false
	}

	for _, combo := range entity.WinCombos {
		if board[combo[0]] == player && board[combo[1]] == player && board[combo[2]] == player {
			return true
		}
	}

	return false
}

// WinningLine returns the first completed combo in WinCombos order and its owner.
func WinningLine(board entity.Board) ([3]int, entity.Mark, bool) {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, a, true
		}
	}

	return [3]int{}, entity.EmptyCell, false
}

func IsDraw(board entity.Board) bool {
	return board.IsFull() && !CheckWin(board, entity.PlayerX) && !CheckWin(board, entity.PlayerO)
}

func IsTerminal(board entity.Board) bool {
	return board.IsFull() || CheckWin(board, entity.PlayerX) || CheckWin(board, entity.PlayerO)
}

// BestMove - picks the cell the player to move should take.
//
// The search is exhaustive and scores are not depth-adjusted, so several
// cells can share the best score; the first one in board order wins.
func BestMove(board entity.Board, player entity.Mark) (int, error) {
	cell, _, err := Analyze(board, player)

	return cell, err
}

// Analyze - returns the best cell together with its minimax score in one search.
func Analyze(board entity.Board, player entity.Mark) (int, int, error) {
	if !player.IsPlayer() {
		return 0, 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if IsTerminal(board) {
		return 0, 0, apperror.ErrNoAvailableMoves
	}

	cell, score := minimax(&board, player)

	return cell, score, nil
}

// Score returns the minimax value of the board with player to move.
func Score(board entity.Board, player entity.Mark) (int, error) {
	if !player.IsPlayer() {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	_, score := minimax(&board, player)

	return score, nil
}

// minimax works in place on board and restores every cell it touches.
// The returned cell is -1 on terminal boards.
func minimax(board *entity.Board, player entity.Mark) (int, int) {
	switch {
	case CheckWin(*board, entity.PlayerX):
		return -1, ScoreXWins
	case CheckWin(*board, entity.PlayerO):
		return -1, ScoreOWins
	case board.IsFull():
		return -1, ScoreDraw
	}

	bestCell := -1
	var bestScore int

	for _, cell := range board.EmptyCells() {
		board[cell] = player
		_, score := minimax(board, player.Opponent())
		board[cell] = entity.EmptyCell

		if bestCell == -1 || better(player, score, bestScore) {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, bestScore
}

// better - O maximizes, X minimizes; equal scores keep the earlier cell.
func better(player entity.Mark, score, best int) bool {
	if player == entity.PlayerO {
		return score > best
	}
	return score < best
}
