package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/engine"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrInvalidMark = errors.New("invalid mark")

type BestMoveRequest struct {
	Board  [entity.BoardSize]string `json:"board"`
	Player string                   `json:"player"`
}

type BestMoveResponse struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	BestMove(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
}

func NewHandlers(logger *slog.Logger) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

// BestMove - answers which cell the engine would play on the posted board.
func (that *handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "BestMove")

	var req BestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
		return
	}

	board, player, err := parseBoard(req)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	cell, score, err := engine.Analyze(board, player)
	if errors.Is(err, apperror.ErrNoAvailableMoves) {
		that.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to pick a move", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to pick a move"})
		return
	}

	that.writeJSON(w, http.StatusOK, BestMoveResponse{Cell: cell, Score: score})
}

func parseBoard(req BestMoveRequest) (entity.Board, entity.Mark, error) {
	var board entity.Board

	player := entity.Mark(req.Player)
	if !player.IsPlayer() {
		return board, "", fmt.Errorf("%w: player %q", ErrInvalidMark, req.Player)
	}

	for i, cell := range req.Board {
		mark := entity.Mark(cell)
		if mark != entity.EmptyCell && !mark.IsPlayer() {
			return board, "", fmt.Errorf("%w: cell %d holds %q", ErrInvalidMark, i, cell)
		}
		board[i] = mark
	}

	return board, player, nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
