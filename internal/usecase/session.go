package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// Presenter renders game state. It is called once per emitted snapshot, in order.
type Presenter interface {
	OnStateChanged(ctx context.Context, sessionID string, snapshot entity.Snapshot) error
}

type gameController interface {
	Reset(mode entity.Mode) error
	Restart() error
	ApplyMove(cell int) error
	Snapshot() entity.Snapshot
}

// Session serves the intents of one player (or two players sharing one screen).
type Session struct {
	id     string
	logger *slog.Logger

	mu         sync.Mutex
	controller gameController
	pending    []entity.Snapshot
	presenters []Presenter
}

func NewSession(logger *slog.Logger, presenters ...Presenter) *Session {
	session := &Session{
		id:         uuid.NewString(),
		presenters: presenters,
	}
	session.logger = logger.With("component", "session", "sessionID", session.id)
	session.controller = tictactoe.NewGameController(session.collect)

	return session
}

func (that *Session) ID() string {
	return that.id
}

// AddPresenter - registers one more snapshot consumer.
func (that *Session) AddPresenter(presenter Presenter) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.presenters = append(that.presenters, presenter)
}

func (that *Session) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.Snapshot()
}

// ModeSelected - starts a new game in the chosen mode.
func (that *Session) ModeSelected(ctx context.Context, mode string) error {
	return that.handle(ctx, "ModeSelected", func() error {
		parsed, err := entity.ParseMode(mode)
		if err != nil {
			return err
		}

		return that.controller.Reset(parsed)
	})
}

// CellClicked - plays the current player's mark; against the AI the reply follows.
func (that *Session) CellClicked(ctx context.Context, cell int) error {
	return that.handle(ctx, "CellClicked", func() error {
		return that.controller.ApplyMove(cell)
	})
}

// RestartRequested - restarts the game keeping the mode.
func (that *Session) RestartRequested(ctx context.Context) error {
	return that.handle(ctx, "RestartRequested", func() error {
		return that.controller.Restart()
	})
}

// handle runs one intent to completion and then delivers what it emitted.
func (that *Session) handle(ctx context.Context, method string, intent func() error) error {
	log := that.logger.With("method", method)

	that.mu.Lock()
	defer that.mu.Unlock()

	err := intent()
	that.deliver(ctx, log)

	switch {
	case err == nil:
		return nil
	case IsRejection(err):
		log.Debug("intent rejected", "error", err)
	default:
		log.Error("intent failed", "error", err)
	}

	return fmt.Errorf("failed to handle %s: %w", method, err)
}

func (that *Session) collect(snapshot entity.Snapshot) {
	that.pending = append(that.pending, snapshot)
}

func (that *Session) deliver(ctx context.Context, log *slog.Logger) {
	for _, snapshot := range that.pending {
		for _, presenter := range that.presenters {
			if err := presenter.OnStateChanged(ctx, that.id, snapshot); err != nil {
				log.Error("failed to present state", "status", snapshot.Status, "error", err)
			}
		}
	}

	that.pending = that.pending[:0]
}

// IsRejection reports the errors a presenter answers with a re-prompt.
func IsRejection(err error) bool {
	return errors.Is(err, apperror.ErrIllegalMove) ||
		errors.Is(err, apperror.ErrUnknownMode) ||
		errors.Is(err, apperror.ErrModeNotSelected)
}
