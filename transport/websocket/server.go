package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const maxMessageSize = 4096

var ErrUnknownAction = errors.New("unknown action")

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

// Server upgrades HTTP requests and gives every connection its own game session.
type Server struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	aiDelay  time.Duration

	// presenters shared by every session, e.g. the Redis fan-out
	presenters []usecase.Presenter

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, aiDelay time.Duration, presenters ...usecase.Presenter) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		aiDelay:    aiDelay,
		presenters: presenters,
		handlers:   make(map[string]handlerFunc),
	}

	server.handlers[ActionModeSelect] = server.handleModeSelect
	server.handlers[ActionCellClick] = server.handleCellClick
	server.handlers[ActionRestart] = server.handleRestart

	return server
}

// ServeHTTP - upgrades the connection and serves it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx := req.Context()

	conn := newConnection(that.logger, wsConn, that.aiDelay)
	conn.session = usecase.NewSession(that.logger, append([]usecase.Presenter{conn}, that.presenters...)...)
	conn.logger = that.logger.With("sessionID", conn.session.ID())

	go conn.writePump()
	defer conn.close()

	if err = conn.OnStateChanged(ctx, conn.session.ID(), conn.session.Snapshot()); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	conn.logger.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		conn.logger.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := conn.logger.With("method", "handleMessages")

	conn.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			if err = conn.sendError(ctx, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			if err := conn.sendError(ctx, message.Action, fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			if !usecase.IsRejection(err) && !errors.Is(err, ErrInvalidPayload) {
				log.Error("error processing message", "action", message.Action, "error", err)
			}

			if err = conn.sendError(ctx, message.Action, err); err != nil {
				return err
			}
		}
	}
}
