package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("invalid payload")

func (that *Server) handleModeSelect(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Mode == "" {
		return fmt.Errorf("%w: mode is required", ErrInvalidPayload)
	}

	return conn.session.ModeSelected(ctx, payloadReq.Mode)
}

func (that *Server) handleCellClick(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Cell == nil {
		return fmt.Errorf("%w: cell is required", ErrInvalidPayload)
	}

	return conn.session.CellClicked(ctx, *payloadReq.Cell)
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, _ *Message) error {
	return conn.session.RestartRequested(ctx)
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payloadReq RequestPayload

	if len(msg.Payload) == 0 {
		return payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return payloadReq, nil
}
