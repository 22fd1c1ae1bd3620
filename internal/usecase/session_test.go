package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errPresenterDown = errors.New("presenter down")

type mockPresenter struct {
	mock.Mock
}

func (that *mockPresenter) OnStateChanged(ctx context.Context, sessionID string, snapshot entity.Snapshot) error {
	args := that.Called(ctx, sessionID, snapshot)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func statusIs(status entity.Status) any {
	return mock.MatchedBy(func(snapshot entity.Snapshot) bool {
		return snapshot.Status == status
	})
}

func TestSession_ModeSelected(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts a game and presents it", func(t *testing.T) {
		// Given: a session with one presenter
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)

		presenter.On("OnStateChanged", ctx, session.ID(), statusIs(entity.StatusAwaitingX)).
			Return(nil).
			Once()

		// When: PvP mode is selected
		err := session.ModeSelected(ctx, "pvp")

		// Then: a fresh game is presented
		require.NoError(t, err)
		presenter.AssertExpectations(t)
		assert.Equal(t, entity.ModePvP, session.Snapshot().Mode)
	})

	t.Run("Unknown mode is rejected without presenting", func(t *testing.T) {
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)

		err := session.ModeSelected(ctx, "network")

		require.ErrorIs(t, err, apperror.ErrUnknownMode)
		assert.True(t, IsRejection(err))
		presenter.AssertNotCalled(t, "OnStateChanged", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSession_CellClicked(t *testing.T) {
	ctx := context.Background()

	t.Run("Presents the human move and the AI reply in order", func(t *testing.T) {
		// Given: a session against the AI
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)

		presenter.On("OnStateChanged", ctx, session.ID(), mock.Anything).Return(nil)
		require.NoError(t, session.ModeSelected(ctx, "ai"))

		// When: X clicks the corner
		err := session.CellClicked(ctx, 0)

		// Then: reset, human move and AI reply are presented in that order
		require.NoError(t, err)
		require.Len(t, presenter.Calls, 3)

		human := presenter.Calls[1].Arguments.Get(2).(entity.Snapshot)
		reply := presenter.Calls[2].Arguments.Get(2).(entity.Snapshot)
		assert.Equal(t, &entity.Move{Cell: 0, Mark: entity.PlayerX}, human.LastMove)
		assert.Equal(t, &entity.Move{Cell: 4, Mark: entity.PlayerO, ByAI: true}, reply.LastMove)
	})

	t.Run("Click before a mode is selected", func(t *testing.T) {
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)

		err := session.CellClicked(ctx, 4)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.True(t, IsRejection(err))
		presenter.AssertNotCalled(t, "OnStateChanged", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		// Given: a PvP game where X holds cell 4
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)

		presenter.On("OnStateChanged", ctx, session.ID(), mock.Anything).Return(nil).Twice()
		require.NoError(t, session.ModeSelected(ctx, "pvp"))
		require.NoError(t, session.CellClicked(ctx, 4))

		// When: O clicks the same cell
		err := session.CellClicked(ctx, 4)

		// Then: the click is rejected and nothing new is presented
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		presenter.AssertNumberOfCalls(t, "OnStateChanged", 2)
	})

	t.Run("Presenter failure does not fail the intent", func(t *testing.T) {
		// Given: one failing and one healthy presenter
		failing := &mockPresenter{}
		healthy := &mockPresenter{}
		session := NewSession(newTestLogger(), failing)
		session.AddPresenter(healthy)

		failing.On("OnStateChanged", ctx, session.ID(), mock.Anything).Return(errPresenterDown)
		healthy.On("OnStateChanged", ctx, session.ID(), mock.Anything).Return(nil)

		// When: a mode is selected and a cell clicked
		require.NoError(t, session.ModeSelected(ctx, "pvp"))
		err := session.CellClicked(ctx, 0)

		// Then: the intent succeeds and both presenters were called
		require.NoError(t, err)
		failing.AssertNumberOfCalls(t, "OnStateChanged", 2)
		healthy.AssertNumberOfCalls(t, "OnStateChanged", 2)
	})
}

func TestSession_RestartRequested(t *testing.T) {
	ctx := context.Background()

	t.Run("Restart without a mode", func(t *testing.T) {
		session := NewSession(newTestLogger())

		err := session.RestartRequested(ctx)

		require.ErrorIs(t, err, apperror.ErrModeNotSelected)
		assert.True(t, IsRejection(err))
	})

	t.Run("Restart after a finished game", func(t *testing.T) {
		// Given: a PvP game won by X
		presenter := &mockPresenter{}
		session := NewSession(newTestLogger(), presenter)
		presenter.On("OnStateChanged", ctx, session.ID(), mock.Anything).Return(nil)

		require.NoError(t, session.ModeSelected(ctx, "pvp"))
		for _, cell := range []int{0, 3, 1, 4, 2} {
			require.NoError(t, session.CellClicked(ctx, cell))
		}
		require.Equal(t, entity.StatusWon, session.Snapshot().Status)

		// When: a restart is requested
		err := session.RestartRequested(ctx)

		// Then: a fresh game in the same mode is presented
		require.NoError(t, err)
		last := presenter.Calls[len(presenter.Calls)-1].Arguments.Get(2).(entity.Snapshot)
		assert.Equal(t, entity.StatusAwaitingX, last.Status)
		assert.Equal(t, entity.ModePvP, last.Mode)
		assert.Equal(t, entity.Board{}, last.Board)
	})
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(apperror.ErrGameOver))
	assert.True(t, IsRejection(apperror.ErrInvalidCell))
	assert.False(t, IsRejection(errPresenterDown))
}
