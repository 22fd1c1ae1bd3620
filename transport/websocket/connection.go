package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const (
	sendBufferSize = 16
	writeWait      = 10 * time.Second
)

var ErrConnectionClosed = errors.New("connection is closed")

type outbound struct {
	message Message
	delay   time.Duration
}

// connection is the presenter of one browser tab. Only writePump writes to conn.
type connection struct {
	logger  *slog.Logger
	conn    *websocket.Conn
	session *usecase.Session
	aiDelay time.Duration

	send    chan outbound
	done    chan struct{}
	stopped chan struct{}
}

func newConnection(logger *slog.Logger, conn *websocket.Conn, aiDelay time.Duration) *connection {
	return &connection{
		logger:  logger,
		conn:    conn,
		aiDelay: aiDelay,
		send:    make(chan outbound, sendBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// OnStateChanged - queues the snapshot; the AI's moves are held back by aiDelay.
func (that *connection) OnStateChanged(ctx context.Context, sessionID string, snapshot entity.Snapshot) error {
	message, err := newMessage(ActionState, ResponsePayload{
		SessionID: sessionID,
		Game:      &snapshot,
	})
	if err != nil {
		return fmt.Errorf("failed to build state message: %w", err)
	}

	var delay time.Duration
	if snapshot.LastMove != nil && snapshot.LastMove.ByAI {
		delay = that.aiDelay
	}

	return that.enqueue(ctx, outbound{message: message, delay: delay})
}

func (that *connection) sendError(ctx context.Context, action string, cause error) error {
	message, err := newMessage(ActionError, ResponsePayload{
		Action: action,
		Error:  cause.Error(),
	})
	if err != nil {
		return fmt.Errorf("failed to build error message: %w", err)
	}

	return that.enqueue(ctx, outbound{message: message})
}

func (that *connection) enqueue(ctx context.Context, out outbound) error {
	select {
	case that.send <- out:
		return nil
	case <-that.done:
		return ErrConnectionClosed
	case <-that.stopped:
		return ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writePump - writes queued messages until the connection is closed.
func (that *connection) writePump() {
	log := that.logger.With("method", "writePump")

	// unblocks the reader when writing fails
	defer func() {
		close(that.stopped)
		_ = that.conn.Close()
	}()

	for {
		select {
		case <-that.done:
			return
		case out := <-that.send:
			if out.delay > 0 && !that.wait(out.delay) {
				return
			}

			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
				return
			}

			if err := that.conn.WriteJSON(out.message); err != nil {
				log.Error("failed to write message", "action", out.message.Action, "error", err)
				return
			}
		}
	}
}

// wait reports false when the connection closed before d elapsed.
func (that *connection) wait(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-that.done:
		return false
	}
}

func (that *connection) close() {
	close(that.done)

	if err := that.conn.Close(); err != nil {
		that.logger.Debug("failed to close connection", "error", err)
	}
}
